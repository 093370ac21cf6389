package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is matched by every "entity absent" error.
	ErrNotFound = errors.New("not found")
	// ErrURLNotFound is returned when a URL with the specified short code cannot be found.
	ErrURLNotFound = fmt.Errorf("url %w", ErrNotFound)
	// ErrUserNotFound is returned when a user cannot be found.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	// ErrCategoryNotFound is returned when a category cannot be found.
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)

	// ErrShortCodeExists is returned when attempting to create a URL with a short code that already exists.
	ErrShortCodeExists = errors.New("short code exists")
	// ErrEmailExists is returned when attempting to register an email that is already taken.
	ErrEmailExists = errors.New("email exists")
	// ErrCategoryExists is returned when the owner already has a category with the same name.
	ErrCategoryExists = errors.New("category name exists")

	// ErrForbidden is returned when the caller does not own the requested resource.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials is returned when the email is unknown or the password does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrCodeSpaceExhausted is returned when every short code candidate collided.
	ErrCodeSpaceExhausted = errors.New("short code space exhausted")
	// ErrStorageUnavailable is returned on storage timeouts and connection failures.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrValidationFailed is returned when the input breaks one or more validation rules.
	ErrValidationFailed = errors.New("validation failed")
)

// Violation is a single failed validation rule.
type Violation struct {
	Field   string
	Message string
}

// ValidationError carries every rule an input violated.
type ValidationError struct {
	Violations []Violation
}

// NewValidationError returns nil when there are no violations.
func NewValidationError(violations []Violation) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Field+": "+v.Message)
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// Kind is the machine-readable class of an error.
type Kind string

const (
	KindUnknown            Kind = "Unknown"
	KindValidationFailed   Kind = "ValidationFailed"
	KindNotFound           Kind = "NotFound"
	KindDuplicateCode      Kind = "DuplicateCode"
	KindDuplicateEmail     Kind = "DuplicateEmail"
	KindDuplicateName      Kind = "DuplicateName"
	KindForbidden          Kind = "Forbidden"
	KindUnauthorized       Kind = "Unauthorized"
	KindCodeSpaceExhausted Kind = "CodeSpaceExhausted"
	KindStorageUnavailable Kind = "StorageUnavailable"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrValidationFailed, KindValidationFailed},
	{ErrNotFound, KindNotFound},
	{ErrShortCodeExists, KindDuplicateCode},
	{ErrEmailExists, KindDuplicateEmail},
	{ErrCategoryExists, KindDuplicateName},
	{ErrForbidden, KindForbidden},
	{ErrInvalidCredentials, KindUnauthorized},
	{ErrCodeSpaceExhausted, KindCodeSpaceExhausted},
	{ErrStorageUnavailable, KindStorageUnavailable},
}

// KindOf returns the kind of the first known error found in err's chain.
func KindOf(err error) Kind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindUnknown
}
