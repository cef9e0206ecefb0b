package service

import (
	"errors"
	"fmt"

	"time-clock/internal/models"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

// Error carries a user-facing message and the kind it belongs to.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func validationErr(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func notFoundErr(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func forbiddenErr(message string) error {
	return &Error{Kind: ErrForbidden, Message: message}
}

func unauthorizedErr(message string) error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

func conflictErr(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

// GateError is a refused punch. It is a normal outcome, not a failure.
type GateError struct {
	PunchType models.PunchType
	Reason    string
}

func (e *GateError) Error() string {
	return e.Reason
}

// SuspendedMessage is returned to every request of a suspended company.
const SuspendedMessage = "Subscription expired. Please contact Jackie's Time Clock."
