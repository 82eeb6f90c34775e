package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yigit/talentbridge/internal/pkg/apperrors"
	"github.com/yigit/talentbridge/internal/pkg/validation"
)

// fieldLabels maps struct field names to the labels used on the forms
var fieldLabels = map[string]string{
	"FullName":        "Full name",
	"ConfirmPassword": "Password confirmation",
	"RoleType":        "Role",
	"DocumentID":      "Document",
}

// RegisterValidators adds the custom tags to gin's form validator
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}
	return validation.RegisterCustomValidators(v)
}

// BindingError converts a form binding failure into a validation error with a readable message
func BindingError(err error) error {
	if IsBodyTooLarge(err) {
		return apperrors.ErrFileTooLarge
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		messages := make([]string, 0, len(verrs))
		for _, e := range verrs {
			messages = append(messages, formatValidationError(e))
		}
		return apperrors.NewValidationError(strings.Join(messages, ". "))
	}
	return apperrors.NewValidationError("The form could not be read. Please try again.")
}

func fieldLabel(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	field := fieldLabel(e.Field())
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + e.Param() + " characters"
	case "max":
		return field + " must be at most " + e.Param() + " characters"
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return field + " must be one of: " + e.Param()
	case "eqfield":
		return "Passwords do not match"
	case "username":
		return "Username must be 3-50 characters of letters, digits, '.', '-' or '_'"
	case "password":
		return "Password must be 8-72 characters and contain a letter and a digit"
	default:
		return field + " is invalid"
	}
}

// IsBodyTooLarge reports whether reading the request body hit the BodyLimit cap
func IsBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
