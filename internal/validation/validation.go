// Package validation checks the shape of incoming request payloads before
// they reach the persistence layer. Checks are purely structural: uniqueness
// violations surface later as store-level errors.
package validation

import (
	"fmt"
	"net/mail"
)

const (
	maxNameLength     = 50
	minPasswordLength = 5
)

// FieldError describes a single violation on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateRegister checks a registration payload.
func ValidateRegister(name, email, password string) []FieldError {
	var errs []FieldError
	errs = append(errs, checkName(name)...)
	errs = append(errs, checkEmail(email)...)
	errs = append(errs, checkPassword("password", password)...)
	return errs
}

// ValidateLogin checks a login payload.
func ValidateLogin(email, password string) []FieldError {
	var errs []FieldError
	errs = append(errs, checkEmail(email)...)
	if password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password should not be empty"})
	}
	return errs
}

// ValidateUpdate checks a profile-update payload. Status is a pointer so an
// absent field can be told apart from an explicit false.
func ValidateUpdate(name, email string, status *bool) []FieldError {
	var errs []FieldError
	errs = append(errs, checkName(name)...)
	errs = append(errs, checkEmail(email)...)
	if status == nil {
		errs = append(errs, FieldError{Field: "status", Message: "status should not be empty"})
	}
	return errs
}

// ValidateForgotPassword checks a password-reset payload.
func ValidateForgotPassword(email, newPassword string) []FieldError {
	var errs []FieldError
	errs = append(errs, checkEmail(email)...)
	errs = append(errs, checkPassword("newPassword", newPassword)...)
	return errs
}

func checkName(name string) []FieldError {
	var errs []FieldError
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name should not be empty"})
	}
	if len(name) > maxNameLength {
		errs = append(errs, FieldError{
			Field:   "name",
			Message: fmt.Sprintf("name must be shorter than or equal to %d characters", maxNameLength),
		})
	}
	return errs
}

func checkEmail(email string) []FieldError {
	if email == "" {
		return []FieldError{{Field: "email", Message: "email should not be empty"}}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return []FieldError{{Field: "email", Message: "email must be an email"}}
	}
	return nil
}

func checkPassword(field, value string) []FieldError {
	var errs []FieldError
	if value == "" {
		errs = append(errs, FieldError{Field: field, Message: field + " should not be empty"})
	}
	if len(value) > 0 && len(value) < minPasswordLength {
		errs = append(errs, FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s must be longer than or equal to %d characters", field, minPasswordLength),
		})
	}
	return errs
}
