package services

import (
	"errors"

	"github.com/HSouheill/lostfound_backend/repositories"
)

// Error kinds. Handlers map these to HTTP statuses with errors.Is.
var (
	ErrNotFound          = repositories.ErrNotFound
	ErrInvalidInput      = errors.New("invalid input")
	ErrConflict          = errors.New("conflict")
	ErrAlreadyClaimed    = errors.New("item already claimed")
	ErrInvalidCode       = errors.New("invalid verification code")
	ErrTooManyAttempts   = errors.New("too many verification attempts")
	ErrFlightHasItems    = errors.New("flight has lost items")
	ErrSeatHasItems      = errors.New("seat has lost items")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNoMatches         = errors.New("no matching items")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrUnavailable       = errors.New("service unavailable")
	ErrUpstream          = errors.New("upstream service failed")
)

// Error carries a client-facing message and optional extra response fields
// alongside one of the kinds above.
type Error struct {
	Kind    error
	Message string
	Fields  map[string]interface{}
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// with attaches an extra field to the error response body
func (e *Error) with(key string, value interface{}) *Error {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// notFound rewrites repository not-found errors with a client message
func notFound(err error, message string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return newError(ErrNotFound, message)
	}
	return err
}
