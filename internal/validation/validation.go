package validation

import (
	"fmt"
	"strings"
)

// MinPasswordLength is the shortest password accepted at registration and login
const MinPasswordLength = 8

// MaxUsernameLength matches the users.name column width
const MaxUsernameLength = 255

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidateUsername checks that a username is present
func ValidateUsername(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "username is required"}
	}
	if len(name) > MaxUsernameLength {
		return ValidationError{Field: "name", Message: fmt.Sprintf("username must be at most %d characters", MaxUsernameLength)}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < MinPasswordLength {
		return ValidationError{Field: "password", Message: fmt.Sprintf("password must be at least %d characters", MinPasswordLength)}
	}
	return nil
}

// ValidateText checks that a free-text field is not blank
func ValidateText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Field: field, Message: field + " is required"}
	}
	return nil
}
