// Package services – AccountService
//
// This file implements the AccountService, which manages the account
// lifecycle: registration with avatar/cover upload, credential verification,
// password changes, profile updates, and the public channel profile view.
// Handles are case-folded and emails lowercased before storage so uniqueness
// is enforced on the normalized form. Service-level errors (e.g.
// ErrAccountExists, ErrInvalidCredentials) are returned for predictable cases
// so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"gorm.io/gorm"

	"github.com/tbourn/go-video-backend/internal/domain"
	"github.com/tbourn/go-video-backend/internal/media"
	"github.com/tbourn/go-video-backend/internal/repo"
)

// Upload is an inbound file: a stream plus the content type declared by the
// client. Callers own the stream lifecycle; services only read it.
type Upload struct {
	Reader      io.Reader
	ContentType string
}

// RegisterInput carries the fields of a registration request. Avatar is
// required; Cover is optional.
type RegisterInput struct {
	Handle   string
	Email    string
	FullName string
	Password string
	Avatar   *Upload
	Cover    *Upload
}

// ChannelProfile is the public view of a channel: the user plus subscription
// aggregates relative to the viewer.
type ChannelProfile struct {
	User              *domain.User `json:"user"`
	SubscriberCount   int64        `json:"subscriberCount"`
	SubscribedToCount int64        `json:"subscribedToCount"`
	IsSubscribed      bool         `json:"isSubscribed"`
}

// AccountService implements the use-cases around user accounts. It is
// context-aware and safe for concurrent use.
type AccountService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Media stores avatar and cover images.
	Media media.Store
	// BcryptCost tunes password hashing; 0 means bcrypt.DefaultCost.
	BcryptCost int
}

// handleRE constrains handles after case folding.
var handleRE = regexp.MustCompile(`^[a-z0-9_]{3,32}$`)

// emailRE is a deliberately loose shape check; deliverability is not our
// problem.
var emailRE = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// handleFolder case-folds handles so "Alice" and "alice" collide.
var handleFolder = cases.Fold()

// NormalizeHandle trims and case-folds a handle to its canonical stored form.
func NormalizeHandle(handle string) string {
	return handleFolder.String(strings.TrimSpace(handle))
}

// Register creates a new account. The avatar (required) and cover (optional)
// are uploaded before the row insert; if the insert fails the uploads are
// best-effort deleted so no orphaned objects accumulate.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	handle := NormalizeHandle(in.Handle)
	if !handleRE.MatchString(handle) {
		return nil, ErrInvalidHandle
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !emailRE.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		return nil, ErrEmptyContent
	}
	if len(in.Password) < 8 {
		return nil, ErrWeakPassword
	}
	if in.Avatar == nil {
		return nil, ErrMissingUpload
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost())
	if err != nil {
		return nil, err
	}

	avatar, err := s.Media.Upload(ctx, "avatars/"+uuid.NewString(), in.Avatar.Reader, in.Avatar.ContentType)
	if err != nil {
		return nil, err
	}
	var cover media.Asset
	if in.Cover != nil {
		cover, err = s.Media.Upload(ctx, "covers/"+uuid.NewString(), in.Cover.Reader, in.Cover.ContentType)
		if err != nil {
			s.cleanup(ctx, avatar.Key)
			return nil, err
		}
	}

	u, err := repo.CreateUser(ctx, s.DB, &domain.User{
		Handle:       handle,
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hash),
		AvatarURL:    avatar.URL,
		AvatarKey:    avatar.Key,
		CoverURL:     cover.URL,
		CoverKey:     cover.Key,
	})
	if err != nil {
		s.cleanup(ctx, avatar.Key, cover.Key)
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAccountExists
		}
		return nil, err
	}
	return u, nil
}

// Authenticate resolves a handle-or-email identifier and verifies the
// password. Both an unknown identifier and a wrong password yield
// ErrInvalidCredentials, so callers cannot probe which accounts exist.
func (s *AccountService) Authenticate(ctx context.Context, identifier, password string) (*domain.User, error) {
	identifier = strings.TrimSpace(identifier)
	var (
		u   *domain.User
		err error
	)
	if strings.Contains(identifier, "@") {
		u, err = repo.GetUserByEmail(ctx, s.DB, strings.ToLower(identifier))
	} else {
		u, err = repo.GetUserByHandle(ctx, s.DB, NormalizeHandle(identifier))
	}
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Get returns the account for userID, or ErrUserNotFound.
func (s *AccountService) Get(ctx context.Context, userID string) (*domain.User, error) {
	u, err := repo.GetUser(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// ChangePassword verifies the current password and stores a hash of the new
// one. A wrong current password yields ErrInvalidCredentials.
func (s *AccountService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if len(next) < 8 {
		return ErrWeakPassword
	}
	u, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.cost())
	if err != nil {
		return err
	}
	_, err = repo.UpdateUserFields(ctx, s.DB, userID, map[string]any{"password_hash": string(hash)})
	return err
}

// UpdateProfile changes the display name and/or email. Nil fields are left
// untouched. An email collision yields ErrAccountExists.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, fullName, email *string) (*domain.User, error) {
	fields := map[string]any{}
	if fullName != nil {
		v := strings.TrimSpace(*fullName)
		if v == "" {
			return nil, ErrEmptyContent
		}
		fields["full_name"] = v
	}
	if email != nil {
		v := strings.ToLower(strings.TrimSpace(*email))
		if !emailRE.MatchString(v) {
			return nil, ErrInvalidEmail
		}
		fields["email"] = v
	}
	if len(fields) == 0 {
		return s.Get(ctx, userID)
	}
	u, err := repo.UpdateUserFields(ctx, s.DB, userID, fields)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicate):
			return nil, ErrAccountExists
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateAvatar replaces the avatar image: upload the new object, point the
// row at it, then best-effort delete the old object.
func (s *AccountService) UpdateAvatar(ctx context.Context, userID string, up Upload) (*domain.User, error) {
	return s.replaceImage(ctx, userID, up, "avatars/", "avatar_url", "avatar_key", func(u *domain.User) string { return u.AvatarKey })
}

// UpdateCover replaces the cover image with the same discipline as
// UpdateAvatar.
func (s *AccountService) UpdateCover(ctx context.Context, userID string, up Upload) (*domain.User, error) {
	return s.replaceImage(ctx, userID, up, "covers/", "cover_url", "cover_key", func(u *domain.User) string { return u.CoverKey })
}

func (s *AccountService) replaceImage(ctx context.Context, userID string, up Upload, prefix, urlCol, keyCol string, oldKey func(*domain.User) string) (*domain.User, error) {
	if up.Reader == nil {
		return nil, ErrMissingUpload
	}
	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	asset, err := s.Media.Upload(ctx, prefix+uuid.NewString(), up.Reader, up.ContentType)
	if err != nil {
		return nil, err
	}
	u, err := repo.UpdateUserFields(ctx, s.DB, userID, map[string]any{urlCol: asset.URL, keyCol: asset.Key})
	if err != nil {
		s.cleanup(ctx, asset.Key)
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	s.cleanup(ctx, oldKey(current))
	return u, nil
}

// ChannelProfile resolves the public channel page for a handle, including
// subscription aggregates and whether viewerID (may be empty for anonymous
// requests) is subscribed.
func (s *AccountService) ChannelProfile(ctx context.Context, handle, viewerID string) (*ChannelProfile, error) {
	u, err := repo.GetUserByHandle(ctx, s.DB, NormalizeHandle(handle))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	subscribers, err := repo.CountSubscribers(ctx, s.DB, u.ID)
	if err != nil {
		return nil, err
	}
	following, err := repo.CountSubscriptions(ctx, s.DB, u.ID)
	if err != nil {
		return nil, err
	}
	isSubscribed := false
	if viewerID != "" {
		isSubscribed, err = repo.IsSubscribed(ctx, s.DB, viewerID, u.ID)
		if err != nil {
			return nil, err
		}
	}

	return &ChannelProfile{
		User:              u,
		SubscriberCount:   subscribers,
		SubscribedToCount: following,
		IsSubscribed:      isSubscribed,
	}, nil
}

func (s *AccountService) cost() int {
	if s.BcryptCost > 0 {
		return s.BcryptCost
	}
	return bcrypt.DefaultCost
}

// cleanup deletes uploaded objects after a failed or superseding mutation.
// Failures are logged, not propagated: the original outcome stands.
func (s *AccountService) cleanup(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.Media.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("media cleanup failed")
		}
	}
}
