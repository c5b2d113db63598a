package services

import (
	"errors"
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// ErrValidation marks a local pre-flight input failure. It is recoverable
// (the user corrects the form) and never reaches the gateway.
var ErrValidation = errors.New("invalid input")

// emailShape additionally requires a dotted domain; is.Email alone accepts
// bare hosts like "a@b".
var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// LoginInput is what the login form submits. The identifier may be a
// username or an email; the service disambiguates, so locally it only has
// to be present.
type LoginInput struct {
	Identifier string
	Password   string
}

func (i LoginInput) Validate() error {
	err := validation.ValidateStruct(&i,
		validation.Field(&i.Identifier, validation.Required),
		validation.Field(&i.Password, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// SignupInput is what the signup form submits.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

func (i SignupInput) Validate() error {
	err := validation.ValidateStruct(&i,
		validation.Field(&i.Username, validation.Required),
		validation.Field(&i.Email,
			validation.Required,
			is.Email,
			validation.Match(emailShape).Error("must be a valid email address"),
		),
		validation.Field(&i.Password, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
