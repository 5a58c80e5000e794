package application

import (
	"errors"

	"github.com/bratat/go-user-accounts/pkg/validation"
)

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=6,max=255"`
	Email    string `json:"email" validate:"required,min=6,max=255,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,min=6,max=255,email"`
	Password string `json:"password" validate:"required,min=6,max=1024"`
}

// UpdateProfileInput holds a partial update; nil fields are left alone.
type UpdateProfileInput struct {
	Name  *string `json:"name" validate:"omitempty,min=6,max=255"`
	Email *string `json:"email" validate:"omitempty,min=6,max=255,email"`
}

// Validator checks input shape before any store access.
type Validator interface {
	ValidateRegistration(in RegisterInput) error
	ValidateLogin(in LoginInput) error
	ValidateProfile(in UpdateProfileInput) error
	ValidateEmail(email string) error
}

type structValidator struct {
	v *validation.Validator
}

// NewValidator adapts the tag-driven validator to the Validator contract.
func NewValidator(v *validation.Validator) Validator {
	return structValidator{v: v}
}

func (s structValidator) ValidateRegistration(in RegisterInput) error { return wrapInvalid(s.v.Struct(in)) }

func (s structValidator) ValidateLogin(in LoginInput) error { return wrapInvalid(s.v.Struct(in)) }

func (s structValidator) ValidateProfile(in UpdateProfileInput) error {
	return wrapInvalid(s.v.Struct(in))
}

func (s structValidator) ValidateEmail(email string) error {
	return wrapInvalid(s.v.Var("email", email, "required,email"))
}

func wrapInvalid(err error) error {
	if err == nil {
		return nil
	}
	var fe *validation.FieldError
	if errors.As(err, &fe) {
		return &ValidationError{Field: fe.Field, Message: fe.Message}
	}
	return &ValidationError{Message: err.Error()}
}
