package service

import (
	"errors"
	"fmt"

	"learnhub/internal/model"

	"github.com/google/uuid"
)

// Error kinds. Every error a service returns on purpose wraps one of these;
// anything else is a dependency failure.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
)

// Error carries a message that is safe to show to the caller.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func validationErr(format string, args ...any) error {
	return newError(ErrValidation, format, args...)
}

func notFoundErr(what string) error {
	return newError(ErrNotFound, "%s not found", what)
}

func forbiddenErr(format string, args ...any) error {
	return newError(ErrForbidden, format, args...)
}

func conflictErr(format string, args ...any) error {
	return newError(ErrConflict, format, args...)
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	ID   uuid.UUID
	Role model.Role
}

func (a Actor) IsAdmin() bool { return a.Role == model.RoleAdmin }
