// Package apperr defines the error taxonomy shared by stores and API handlers.
//
// Stores return these errors instead of raw driver errors so handlers can
// translate them into specific user-facing responses. The taxonomy is small
// on purpose:
//
//   - NotFound: a requested document or subdocument does not exist
//   - ValidationFailed: input was rejected before any write happened
//   - DuplicateKey: a uniqueness constraint (slug, category id) collided
//   - Conflict: an optimistic-concurrency write lost its version check
//
// Degraded outcomes (image variant generation failed, notification email
// failed) are not errors in this taxonomy; they are logged at their origin
// and never propagate.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error for boundary-layer translation.
type Kind int

const (
	// KindNotFound means the requested resource does not exist.
	KindNotFound Kind = iota
	// KindValidation means input was rejected before any persistence mutation.
	KindValidation
	// KindDuplicate means a uniqueness constraint collided.
	KindDuplicate
	// KindConflict means a conditional write lost its version check.
	KindConflict
)

// Error is the canonical error type returned by stores.
type Error struct {
	Kind    Kind
	Message string
	Cause   error // server-side logging only, never sent to clients
}

func (e *Error) Error() string { return e.Message }

// Unwrap lets errors.Is / errors.As traverse the cause chain.
func (e *Error) Unwrap() error { return e.Cause }

// NotFound returns a KindNotFound error naming the missing resource.
//
//	apperr.NotFound("news article") // "news article not found"
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

// Validation returns a KindValidation error with a specific message about
// which field failed and why. Keep messages concrete; admin tooling shows
// them verbatim.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Duplicate returns a KindDuplicate error for a value that already exists.
func Duplicate(what, value string) *Error {
	return &Error{Kind: KindDuplicate, Message: fmt.Sprintf("%s %q already exists", what, value)}
}

// Conflict returns a KindConflict error for a lost optimistic-concurrency write.
func Conflict(resource string) *Error {
	return &Error{Kind: KindConflict, Message: resource + " was modified concurrently, retry"}
}

// Wrap attaches a cause to e and returns e for chaining.
func (e *Error) Wrap(cause error) *Error {
	e.Cause = cause
	return e
}

// IsNotFound reports whether err is a KindNotFound Error.
func IsNotFound(err error) bool { return isKind(err, KindNotFound) }

// IsValidation reports whether err is a KindValidation Error.
func IsValidation(err error) bool { return isKind(err, KindValidation) }

// IsDuplicate reports whether err is a KindDuplicate Error.
func IsDuplicate(err error) bool { return isKind(err, KindDuplicate) }

// IsConflict reports whether err is a KindConflict Error.
func IsConflict(err error) bool { return isKind(err, KindConflict) }

func isKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
