package domain

import "errors"

// Error kinds. Match with errors.Is.
var (
	ErrInvalid      = errors.New("invalid")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrInternal     = errors.New("internal error")
)

var kinds = []error{ErrInvalid, ErrUnauthorized, ErrForbidden, ErrConflict, ErrNotFound, ErrInternal}

// Error is a typed failure with a message that is safe to show the caller.
type Error struct {
	Kind    error  // One of the Err* kinds above
	Message string // Caller-facing message
	Err     error  // Underlying cause, if any
}

// NewError builds an Error of the given kind
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError builds an Error of the given kind around a cause
func WrapError(kind error, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the error's kind as well as itself
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// KindOf returns the kind of err, defaulting to ErrInternal for untyped errors
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) && e.Kind != nil {
		return e.Kind // Outermost typed error wins
	}
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrInternal
}

// MessageOf returns the caller-facing message carried by err, or fallback
func MessageOf(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
