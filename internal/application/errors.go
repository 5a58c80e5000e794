package application

import (
	"errors"
	"fmt"

	"github.com/bratat/go-user-accounts/pkg/helpers"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnconfirmedAccount = errors.New("email not confirmed")
	ErrMissingToken       = errors.New("missing token")
	ErrInvalidToken       = helpers.ErrInvalidToken
	ErrExpiredToken       = helpers.ErrExpiredToken
	ErrStore              = errors.New("store failure")
	ErrDelivery           = errors.New("delivery failure")
)

// ValidationError carries the first violation found on an input. It matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStore, err)
}
