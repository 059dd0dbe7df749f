// Package auth issues and verifies the opaque access/refresh token pairs
// backing every authenticated request. Tokens are random values persisted in
// the sessions table; there is no signed-token scheme, so revocation is a
// simple row delete and verification is a single indexed lookup.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-video-backend/internal/domain"
	"github.com/tbourn/go-video-backend/internal/repo"
)

var (
	// ErrInvalidToken indicates the presented token is unknown or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Tokens is an issued credential pair with its expiries, returned to the
// client on login and refresh.
type Tokens struct {
	AccessToken      string    `json:"accessToken"`
	RefreshToken     string    `json:"refreshToken"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`

	userID string
}

// Manager issues, verifies, rotates, and revokes sessions. It is safe for
// concurrent use; all state lives in the database.
type Manager struct {
	// DB is the GORM handle used for session persistence.
	DB *gorm.DB

	// AccessTTL bounds how long an access token authenticates requests.
	AccessTTL time.Duration
	// RefreshTTL bounds how long a session can be renewed without login.
	RefreshTTL time.Duration
}

// NewManager constructs a Manager with the given token lifetimes.
func NewManager(db *gorm.DB, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{DB: db, AccessTTL: accessTTL, RefreshTTL: refreshTTL}
}

// Issue creates and persists a fresh token pair for userID.
func (m *Manager) Issue(ctx context.Context, userID string) (Tokens, error) {
	if userID == "" {
		return Tokens{}, errors.New("auth: user id must be provided")
	}
	t, err := m.newTokens()
	if err != nil {
		return Tokens{}, err
	}
	_, err = repo.CreateSession(ctx, m.DB, &domain.Session{
		UserID:           userID,
		AccessToken:      t.AccessToken,
		RefreshToken:     t.RefreshToken,
		AccessExpiresAt:  t.AccessExpiresAt,
		RefreshExpiresAt: t.RefreshExpiresAt,
	})
	if err != nil {
		return Tokens{}, err
	}
	return t, nil
}

// Verify resolves an access token to the owning user id, or ErrInvalidToken.
func (m *Manager) Verify(ctx context.Context, accessToken string) (string, error) {
	if accessToken == "" {
		return "", ErrInvalidToken
	}
	s, err := repo.GetSessionByAccessToken(ctx, m.DB, accessToken, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}
	return s.UserID, nil
}

// Refresh exchanges a valid refresh token for a new pair, rotating both
// tokens in place. Concurrent refreshes with the same token race on the
// rotation update; the loser gets ErrInvalidToken and must log in again.
func (m *Manager) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	if refreshToken == "" {
		return Tokens{}, ErrInvalidToken
	}
	s, err := repo.GetSessionByRefreshToken(ctx, m.DB, refreshToken, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return Tokens{}, ErrInvalidToken
		}
		return Tokens{}, err
	}

	t, err := m.newTokens()
	if err != nil {
		return Tokens{}, err
	}
	err = repo.RotateSession(ctx, m.DB, refreshToken, &domain.Session{
		AccessToken:      t.AccessToken,
		RefreshToken:     t.RefreshToken,
		AccessExpiresAt:  t.AccessExpiresAt,
		RefreshExpiresAt: t.RefreshExpiresAt,
	})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return Tokens{}, ErrInvalidToken
		}
		return Tokens{}, err
	}
	t.userID = s.UserID
	return t, nil
}

// UserID reports the user a refreshed pair belongs to. Only set by Refresh.
func (t Tokens) UserID() string { return t.userID }

// Revoke deletes the session behind an access token (logout). Revoking an
// unknown token is a no-op.
func (m *Manager) Revoke(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	return repo.DeleteSessionByAccessToken(ctx, m.DB, accessToken)
}

func (m *Manager) newTokens() (Tokens, error) {
	access, err := randomToken()
	if err != nil {
		return Tokens{}, err
	}
	refresh, err := randomToken()
	if err != nil {
		return Tokens{}, err
	}
	now := time.Now().UTC()
	return Tokens{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  now.Add(m.AccessTTL),
		RefreshExpiresAt: now.Add(m.RefreshTTL),
	}, nil
}

// randomToken returns 32 bytes of CSPRNG output, base64url-encoded.
func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
