// Account HTTP handlers.
//
// This file exposes REST endpoints for user accounts and sessions:
//   - POST   /users/register         (multipart, avatar required)
//   - POST   /users/login            (handle or email + password)
//   - POST   /users/logout
//   - POST   /users/refresh-token    (refresh rotation)
//   - GET    /users/me
//   - PATCH  /users/me               (fullName / email)
//   - POST   /users/change-password
//   - PATCH  /users/me/avatar
//   - PATCH  /users/me/cover
//   - GET    /users/c/{handle}       (public channel profile)
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-video-backend/internal/auth"
	"github.com/tbourn/go-video-backend/internal/domain"
	"github.com/tbourn/go-video-backend/internal/http/middleware"
	"github.com/tbourn/go-video-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// AccountService defines account lifecycle operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AccountService interface {
	// Register creates an account, storing avatar/cover media first.
	Register(ctx context.Context, in services.RegisterInput) (*domain.User, error)
	// Authenticate verifies a handle-or-email identifier and password.
	Authenticate(ctx context.Context, identifier, password string) (*domain.User, error)
	// Get returns the account by id.
	Get(ctx context.Context, userID string) (*domain.User, error)
	// ChangePassword swaps the password after verifying the current one.
	ChangePassword(ctx context.Context, userID, current, next string) error
	// UpdateProfile patches fullName and/or email; nil fields are untouched.
	UpdateProfile(ctx context.Context, userID string, fullName, email *string) (*domain.User, error)
	// UpdateAvatar replaces the avatar image.
	UpdateAvatar(ctx context.Context, userID string, up services.Upload) (*domain.User, error)
	// UpdateCover replaces the cover image.
	UpdateCover(ctx context.Context, userID string, up services.Upload) (*domain.User, error)
	// ChannelProfile returns the public channel view for a handle.
	ChannelProfile(ctx context.Context, handle, viewerID string) (*services.ChannelProfile, error)
}

// SessionManager defines the token operations handlers need. Verification is
// the auth middleware's job and is deliberately absent here.
type SessionManager interface {
	// Issue creates a fresh access/refresh pair for userID.
	Issue(ctx context.Context, userID string) (auth.Tokens, error)
	// Refresh rotates a session keyed by its refresh token.
	Refresh(ctx context.Context, refreshToken string) (auth.Tokens, error)
	// Revoke ends the session holding accessToken. Idempotent.
	Revoke(ctx context.Context, accessToken string) error
}

//
// DTOs
//

// LoginRequest is the JSON payload for logging in. Identifier takes a handle
// or an email; the dedicated fields are accepted as aliases.
type LoginRequest struct {
	Identifier string `json:"identifier" example:"jane_doe"`
	Handle     string `json:"handle" example:"jane_doe"`
	Email      string `json:"email" example:"jane@example.com"`
	Password   string `json:"password" binding:"required" example:"hunter2hunter2"`
}

// LoginResponse carries the authenticated user and the issued token pair.
type LoginResponse struct {
	User   *domain.User `json:"user"`
	Tokens auth.Tokens  `json:"tokens"`
}

// UpdateProfileRequest patches the caller's profile; omitted fields are left
// untouched.
type UpdateProfileRequest struct {
	FullName *string `json:"fullName" example:"Jane Doe"`
	Email    *string `json:"email" example:"jane@example.com"`
}

// ChangePasswordRequest swaps the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// RefreshRequest carries the refresh token when the client does not use the
// cookie.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

//
// Cookie helpers
//

const (
	cookieAccessToken  = "accessToken"
	cookieRefreshToken = "refreshToken"
)

// setAuthCookies mirrors the token pair into HttpOnly cookies for browser
// clients. API clients keep using the JSON body.
func setAuthCookies(c *gin.Context, tk auth.Tokens) {
	secure := c.Request != nil && c.Request.TLS != nil
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieAccessToken, tk.AccessToken, int(time.Until(tk.AccessExpiresAt).Seconds()), "/", "", secure, true)
	c.SetCookie(cookieRefreshToken, tk.RefreshToken, int(time.Until(tk.RefreshExpiresAt).Seconds()), "/", "", secure, true)
}

// clearAuthCookies expires both auth cookies.
func clearAuthCookies(c *gin.Context) {
	secure := c.Request != nil && c.Request.TLS != nil
	c.SetCookie(cookieAccessToken, "", -1, "/", "", secure, true)
	c.SetCookie(cookieRefreshToken, "", -1, "/", "", secure, true)
}

//
// Handlers
//

// Register godoc
// @ID          registerUser
// @Summary     Register a new account
// @Description Creates an account from a multipart form. The avatar file is required; coverImage is optional.
// @Tags        Accounts
// @Accept      multipart/form-data
// @Produce     json
//
// @Param       handle      formData  string  true   "Handle (3-32 chars, lowercased)"
// @Param       email       formData  string  true   "Email address"
// @Param       fullName    formData  string  true   "Display name"
// @Param       password    formData  string  true   "Password (min 8 chars)"
// @Param       avatar      formData  file    true   "Avatar image"
// @Param       coverImage  formData  file    false  "Cover image"
//
// @Success     201  {object}  handlers.Response{data=domain.User}
// @Failure     400  {object}  handlers.Response  "Bad request"
// @Failure     409  {object}  handlers.Response  "Handle or email already in use"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /users/register [post]
func (h *Handlers) Register(c *gin.Context) {
	avatar, closeAvatar, err := formUpload(c, "avatar")
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unreadable avatar upload")
		return
	}
	defer closeAvatar()
	if avatar == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "avatar file is required",
			FieldError{Field: "avatar", Message: "file is required"})
		return
	}

	cover, closeCover, err := formUpload(c, "coverImage")
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unreadable cover upload")
		return
	}
	defer closeCover()

	in := services.RegisterInput{
		Handle:   c.PostForm("handle"),
		Email:    c.PostForm("email"),
		FullName: strings.TrimSpace(c.PostForm("fullName")),
		Password: c.PostForm("password"),
		Avatar:   avatar,
		Cover:    cover,
	}

	u, err := h.accounts.Register(c.Request.Context(), in)
	if err != nil {
		failService(c, err, ErrCodeCreateFailed)
		return
	}
	ok(c, http.StatusCreated, u, "account created")
}

// Login godoc
// @ID          loginUser
// @Summary     Log in
// @Description Verifies a handle or email plus password and issues an access/refresh token pair. The pair is also set as HttpOnly cookies.
// @Tags        Accounts
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LoginRequest  true  "Credentials"
//
// @Success     200  {object}  handlers.Response{data=handlers.LoginResponse}
// @Failure     400  {object}  handlers.Response  "Bad request"
// @Failure     401  {object}  handlers.Response  "Invalid credentials"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /users/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" {
		identifier = strings.TrimSpace(req.Email)
	}
	if identifier == "" {
		identifier = strings.TrimSpace(req.Handle)
	}
	if identifier == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "handle or email required",
			FieldError{Field: "identifier", Message: "handle or email required"})
		return
	}

	ctx := c.Request.Context()
	u, err := h.accounts.Authenticate(ctx, identifier, req.Password)
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	tk, err := h.sessions.Issue(ctx, u.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	setAuthCookies(c, tk)
	ok(c, http.StatusOK, LoginResponse{User: u, Tokens: tk}, "logged in")
}

// Logout godoc
// @ID          logoutUser
// @Summary     Log out
// @Description Revokes the current session and clears auth cookies. Safe to repeat.
// @Tags        Accounts
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  handlers.Response
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /users/logout [post]
func (h *Handlers) Logout(c *gin.Context) {
	token := middleware.AccessToken(c)
	if token != "" {
		if err := h.sessions.Revoke(c.Request.Context(), token); err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
			return
		}
	}
	clearAuthCookies(c)
	ok(c, http.StatusOK, nil, "logged out")
}

// RefreshToken godoc
// @ID          refreshToken
// @Summary     Refresh the session
// @Description Rotates the refresh token and issues a new access/refresh pair. The old pair stops working immediately.
// @Tags        Accounts
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RefreshRequest  false  "Refresh token (falls back to the refreshToken cookie)"
//
// @Success     200  {object}  handlers.Response{data=auth.Tokens}
// @Failure     401  {object}  handlers.Response  "Invalid or expired refresh token"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /users/refresh-token [post]
func (h *Handlers) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	_ = c.ShouldBindJSON(&req)

	token := strings.TrimSpace(req.RefreshToken)
	if token == "" {
		token, _ = c.Cookie(cookieRefreshToken)
	}
	if token == "" {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "refresh token required")
		return
	}

	tk, err := h.sessions.Refresh(c.Request.Context(), token)
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	setAuthCookies(c, tk)
	ok(c, http.StatusOK, tk, "session refreshed")
}

// Me godoc
// @ID          currentUser
// @Summary     Current account
// @Description Returns the authenticated user's account.
// @Tags        Accounts
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  handlers.Response{data=domain.User}
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /users/me [get]
func (h *Handlers) Me(c *gin.Context) {
	u, err := h.accounts.Get(c.Request.Context(), userID(c))
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, u, "ok")
}

// UpdateMe godoc
// @ID          updateProfile
// @Summary     Update profile
// @Description Patches fullName and/or email. Omitted fields are left untouched.
// @Tags        Accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.UpdateProfileRequest  true  "Fields to update"
//
// @Success     200  {object}  handlers.Response{data=domain.User}
// @Failure     400  {object}  handlers.Response  "Bad request"
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     409  {object}  handlers.Response  "Email already in use"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /users/me [patch]
func (h *Handlers) UpdateMe(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if req.FullName == nil && req.Email == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "nothing to update")
		return
	}

	u, err := h.accounts.UpdateProfile(c.Request.Context(), userID(c), req.FullName, req.Email)
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, u, "profile updated")
}

// ChangePassword godoc
// @ID          changePassword
// @Summary     Change password
// @Description Verifies the current password and replaces it with the new one.
// @Tags        Accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.ChangePasswordRequest  true  "Current and new password"
//
// @Success     200  {object}  handlers.Response
// @Failure     400  {object}  handlers.Response  "Bad request"
// @Failure     401  {object}  handlers.Response  "Wrong current password"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /users/change-password [post]
func (h *Handlers) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "currentPassword and newPassword required")
		return
	}

	err := h.accounts.ChangePassword(c.Request.Context(), userID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, nil, "password changed")
}

// UpdateAvatar godoc
// @ID          updateAvatar
// @Summary     Replace avatar
// @Description Uploads a new avatar and deletes the previous one (best effort).
// @Tags        Accounts
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
//
// @Param       avatar  formData  file  true  "Avatar image"
//
// @Success     200  {object}  handlers.Response{data=domain.User}
// @Failure     400  {object}  handlers.Response  "Bad request"
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /users/me/avatar [patch]
func (h *Handlers) UpdateAvatar(c *gin.Context) {
	h.replaceImage(c, "avatar", h.accounts.UpdateAvatar)
}

// UpdateCover godoc
// @ID          updateCover
// @Summary     Replace cover image
// @Description Uploads a new cover image and deletes the previous one (best effort).
// @Tags        Accounts
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
//
// @Param       coverImage  formData  file  true  "Cover image"
//
// @Success     200  {object}  handlers.Response{data=domain.User}
// @Failure     400  {object}  handlers.Response  "Bad request"
// @Failure     401  {object}  handlers.Response  "Unauthorized"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /users/me/cover [patch]
func (h *Handlers) UpdateCover(c *gin.Context) {
	h.replaceImage(c, "coverImage", h.accounts.UpdateCover)
}

// replaceImage factors the shared shape of the avatar and cover endpoints.
func (h *Handlers) replaceImage(c *gin.Context, field string, apply func(context.Context, string, services.Upload) (*domain.User, error)) {
	up, closeUp, err := formUpload(c, field)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unreadable "+field+" upload")
		return
	}
	defer closeUp()
	if up == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, field+" file is required",
			FieldError{Field: field, Message: "file is required"})
		return
	}

	u, err := apply(c.Request.Context(), userID(c), *up)
	if err != nil {
		failService(c, err, ErrCodeUploadFailed)
		return
	}
	ok(c, http.StatusOK, u, field+" updated")
}

// Channel godoc
// @ID          channelProfile
// @Summary     Public channel profile
// @Description Returns the channel owner plus subscriber aggregates. isSubscribed reflects the caller when authenticated.
// @Tags        Accounts
// @Produce     json
//
// @Param       handle  path  string  true  "Channel handle"  example(jane_doe)
//
// @Success     200  {object}  handlers.Response{data=services.ChannelProfile}
// @Failure     404  {object}  handlers.Response  "Channel not found"
// @Failure     500  {object}  handlers.Response  "Internal error"
// @Router      /users/c/{handle} [get]
func (h *Handlers) Channel(c *gin.Context) {
	profile, err := h.accounts.ChannelProfile(c.Request.Context(), c.Param("handle"), userID(c))
	if err != nil {
		failService(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, profile, "ok")
}
