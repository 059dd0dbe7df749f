// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file centralizes the error values and driver-agnostic
// error classification shared by every repository in the package.
//
// Error semantics:
//   - When a record is missing, or exists but is not owned by the requesting
//     user, functions return ErrNotFound. The two cases are deliberately
//     indistinguishable: every owner-scoped mutation runs as a single
//     filtered statement, so callers cannot probe for the existence of
//     another user's resources.
//   - Unique-constraint violations are returned as ErrDuplicate.
//   - On other DB errors (connectivity, constraints, etc.), the raw gorm
//     error is propagated.
package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist or does not
// belong to the requesting user. It aliases gorm.ErrRecordNotFound for
// consistency across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate indicates that an insert collided with a unique index
// (duplicate handle, email, like, subscription, playlist membership, or
// idempotency key).
var ErrDuplicate = errors.New("duplicate record")

// isUniqueViolation detects unique-constraint violations across drivers that
// may not map to gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
