package common

import "errors"

// Sentinel errors shared across repositories and services. Anything not
// wrapping one of these is treated as an infrastructure failure whose retry
// semantics differ from a plain miss.
var (
	// ErrNotFound marks an expected absence (tenant, feature, association,
	// room, booking). Callers branch on it rather than treating it as a
	// server fault.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a uniqueness violation (duplicate slug, domain or
	// email) so callers can offer a corrective suggestion.
	ErrConflict = errors.New("already exists")

	// ErrValidation marks malformed input rejected before any storage
	// mutation was attempted.
	ErrValidation = errors.New("validation failed")
)

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict reports whether err wraps ErrConflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
