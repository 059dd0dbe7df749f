// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements bearer-token authentication. The access token travels
// either in the Authorization header ("Bearer <token>") or in the accessToken
// cookie set at login. Verification is delegated to a narrow TokenVerifier so
// the middleware stays decoupled from session storage.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUserIDKey is the Gin context key under which the authenticated user
// id is stored. Downstream middleware and handlers read it via c.Get.
const ContextUserIDKey = "userID"

// cookieAccessToken mirrors the cookie name set by the login handler.
const cookieAccessToken = "accessToken"

// TokenVerifier resolves an access token to the owning user id. It returns
// an error for unknown, revoked, or expired tokens.
type TokenVerifier interface {
	Verify(ctx context.Context, accessToken string) (string, error)
}

// AccessToken extracts the raw access token from the request: the
// Authorization bearer header first, then the accessToken cookie. Empty when
// the request carries neither.
func AccessToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if tok, err := c.Cookie(cookieAccessToken); err == nil {
		return strings.TrimSpace(tok)
	}
	return ""
}

// RequireAuth returns a middleware that rejects requests without a valid,
// unexpired access token. On success the user id is stored under
// ContextUserIDKey for downstream consumers.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := AccessToken(c)
		if token == "" {
			abortUnauthorized(c, "authentication required")
			return
		}
		uid, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}
		c.Set(ContextUserIDKey, uid)
		c.Next()
	}
}

// OptionalAuth returns a middleware that resolves the caller's identity when
// a valid token is present but never rejects the request. Public endpoints
// use it to personalize responses (e.g. isSubscribed) for logged-in viewers.
func OptionalAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := AccessToken(c); token != "" {
			if uid, err := verifier.Verify(c.Request.Context(), token); err == nil {
				c.Set(ContextUserIDKey, uid)
			}
		}
		c.Next()
	}
}

// abortUnauthorized writes a 401 envelope. Shaped like the handlers package
// responses; duplicated here to avoid an import cycle.
func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"statusCode": http.StatusUnauthorized,
		"message":    msg,
		"success":    false,
		"code":       "unauthorized",
		"requestId":  c.Writer.Header().Get("X-Request-ID"),
	})
}
