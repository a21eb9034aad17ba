package validation

import (
	"fmt"
	"regexp"
	"strings"

	"skillbridge/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidateName checks if a name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	return nil
}

// ValidateDependentAge checks that a dependent's age is within platform bounds
func ValidateDependentAge(age int) error {
	if age < models.MinDependentAge || age > models.MaxDependentAge {
		return ValidationError{
			Field:   "age",
			Message: fmt.Sprintf("age must be between %d and %d", models.MinDependentAge, models.MaxDependentAge),
		}
	}
	return nil
}

// ValidateRole checks that a requested role is one of the known roles
func ValidateRole(role models.Role) error {
	if !role.Valid() {
		return ValidationError{Field: "role", Message: "role must be ADMIN, VOLUNTEER or GUARDIAN"}
	}
	return nil
}
