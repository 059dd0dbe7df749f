// Package services defines the business logic for accounts, videos, comments,
// tweets, playlists, likes, and subscriptions. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the
// handler layer.
package services

import "errors"

// Account-related errors.
var (
	// ErrAccountExists is returned when a registration or profile update
	// collides with an existing handle or email.
	ErrAccountExists = errors.New("handle or email already in use")

	// ErrInvalidCredentials is returned when login or password change is
	// attempted with a wrong identifier/password combination.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound indicates that the requested user or channel does not
	// exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrWeakPassword is returned when a password does not meet the minimum
	// length requirement.
	ErrWeakPassword = errors.New("password must be at least 8 characters")

	// ErrInvalidHandle is returned when a handle contains characters outside
	// the allowed set or violates the length bounds.
	ErrInvalidHandle = errors.New("handle must be 3-32 characters of letters, digits, or underscores")

	// ErrInvalidEmail is returned when an email address fails basic shape
	// validation.
	ErrInvalidEmail = errors.New("invalid email address")
)

// Content-related errors.
var (
	// ErrVideoNotFound indicates that the requested video does not exist, is
	// an unpublished draft invisible to the caller, or is not owned by the
	// caller for a mutation.
	ErrVideoNotFound = errors.New("video not found")

	// ErrCommentNotFound indicates that the requested comment does not exist
	// or is not owned by the caller.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrTweetNotFound indicates that the requested tweet does not exist or
	// is not owned by the caller.
	ErrTweetNotFound = errors.New("tweet not found")

	// ErrPlaylistNotFound indicates that the requested playlist does not
	// exist or is not owned by the caller.
	ErrPlaylistNotFound = errors.New("playlist not found")

	// ErrEmptyContent is returned when a comment, tweet, or title is blank
	// after normalization.
	ErrEmptyContent = errors.New("content is empty")

	// ErrTooLong is returned when content exceeds the maximum configured
	// length limit.
	ErrTooLong = errors.New("content too long")

	// ErrAlreadyInPlaylist is returned when adding a video that is already a
	// member of the playlist.
	ErrAlreadyInPlaylist = errors.New("video already in playlist")

	// ErrNotInPlaylist is returned when removing a video that is not a
	// member of the playlist.
	ErrNotInPlaylist = errors.New("video not in playlist")

	// ErrSelfSubscription is returned when a user attempts to subscribe to
	// their own channel.
	ErrSelfSubscription = errors.New("cannot subscribe to your own channel")

	// ErrMissingUpload is returned when a required media file is absent from
	// the request.
	ErrMissingUpload = errors.New("required file upload is missing")
)
