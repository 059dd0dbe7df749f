// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response envelope used across all endpoints.
// Every response, success or failure, is serialized in the same shape so that
// clients can branch on a single contract:
//
//	HTTP/1.1 200 OK
//	{
//	  "statusCode": 200,
//	  "data": { "id": "abc123", "title": "First upload" },
//	  "message": "ok",
//	  "success": true
//	}
//
//	HTTP/1.1 404 Not Found
//	{
//	  "statusCode": 404,
//	  "message": "video not found",
//	  "success": false,
//	  "code": "not_found",
//	  "requestId": "123e4567-e89b-12d3-a456-426614174000"
//	}
//
// Conventions:
//   - `success` is derived: true exactly when statusCode < 400.
//   - All failures carry a stable machine-readable `code` (see errors.go) and
//     echo the correlation id from the X-Request-ID header.
//   - `fail()` centralizes error logging and formatting, ensuring 5xx responses
//     are logged with request context for observability.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-video-backend/internal/http/middleware"
)

// FieldError pinpoints a validation failure to a single input field.
type FieldError struct {
	Field   string `json:"field" example:"email"`
	Message string `json:"message" example:"invalid email address"`
}

// Response is the uniform envelope returned by all endpoints.
//
// Code, RequestID and Errors are only populated on failures; Data only on
// successes. Success mirrors the status code so clients never need to parse
// the HTTP status line.
type Response struct {
	StatusCode int    `json:"statusCode" example:"200"`
	Data       any    `json:"data,omitempty"`
	Message    string `json:"message" example:"ok"`
	Success    bool   `json:"success" example:"true"`

	// Stable, machine-readable code (failures only, see errors.go constants)
	Code string `json:"code,omitempty" example:"not_found"`
	// Correlates server logs and client errors
	RequestID string `json:"requestId,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Per-field validation details, when available
	Errors []FieldError `json:"errors,omitempty"`
}

// fail aborts the request with an error envelope and logs server-side errors.
//
// It writes the envelope as JSON with the given HTTP status and calls
// gin.Context.AbortWithStatusJSON to stop further processing. Server errors
// (>=500) are logged using the request-scoped logger from middleware.
func fail(c *gin.Context, status int, code, msg string, details ...FieldError) {
	resp := Response{
		StatusCode: status,
		Message:    msg,
		Success:    status < http.StatusBadRequest,
		Code:       code,
		RequestID:  c.Writer.Header().Get("X-Request-ID"),
		Errors:     details,
	}

	// Log 5xx (server-side) with request-scoped logger
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail().
//
// External packages (e.g., router setup) should call Fail to return
// consistent error envelopes without directly depending on unexported helpers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success envelope with the given status, payload, and message.
func ok(c *gin.Context, status int, data any, msg string) {
	c.JSON(status, Response{
		StatusCode: status,
		Data:       data,
		Message:    msg,
		Success:    status < http.StatusBadRequest,
	})
}

// noContent writes an HTTP 204 No Content response.
//
// Used when the operation succeeds but there is no response body.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
