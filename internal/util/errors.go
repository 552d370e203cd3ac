package util

import (
	"errors"
	"fmt"
)

var (
	ErrEmailRegistered       = errors.New("email already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrCompletionUnavailable = errors.New("text completion unavailable")
	ErrConcurrentUpdate      = errors.New("record was modified concurrently, retries exhausted")
)

// ValidationError is a user-correctable input problem tied to one request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}

type AuthErrorKind string

const (
	AuthMissing AuthErrorKind = "missing"
	AuthInvalid AuthErrorKind = "invalid"
	AuthExpired AuthErrorKind = "expired"
)

type AuthError struct {
	Kind   AuthErrorKind
	Reason string
}

func (e *AuthError) Error() string {
	switch e.Kind {
	case AuthMissing:
		return "authorization header missing or not provided"
	case AuthExpired:
		return "token has expired"
	default:
		return "invalid token"
	}
}

// StorageError wraps a persistence failure. Callers report it generically.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func WrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
