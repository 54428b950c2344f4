package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a form field name to the human-readable message shown
// inline next to it. nil means the input is valid.
type FieldErrors map[string]string

// CredentialValidator checks the shape of login/registration input before
// any request is dispatched. Pure and synchronous: no network, no state.
type CredentialValidator struct {
	v *validator.Validate
}

func NewCredentialValidator() *CredentialValidator {
	return &CredentialValidator{v: validator.New()}
}

// Validate returns a message for every field that fails its rule, or nil
// when the input is valid. The rules live as struct tags on the input types.
func (cv *CredentialValidator) Validate(input any) FieldErrors {
	err := cv.v.Struct(input)
	if err == nil {
		return nil
	}

	fields := FieldErrors{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		fields["form"] = "Invalid input"
		return fields
	}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		fields[field] = fieldMessage(field, fe)
	}
	return fields
}

// fieldMessage converts a single ValidationError into the message the form
// displays. Wording matches the hosted client's inline errors.
func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", capitalize(field), fe.Param())
	case "email":
		return "Invalid email address"
	default:
		return fmt.Sprintf("%s failed validation (%s)", capitalize(field), fe.Tag())
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
