package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/talentbridge/internal/pkg/apperrors"
)

// Validation rule patterns
var (
	// Username: letters, digits, dot, dash and underscore
	UsernamePattern = `^[a-zA-Z0-9_.-]+$`

	UsernameMinLength = 3
	UsernameMaxLength = 50

	// bcrypt ignores everything past 72 bytes
	PasswordMinLength = 8
	PasswordMaxLength = 72

	MessageMaxLength = 5000
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Username *regexp.Regexp
}{
	Username: regexp.MustCompile(UsernamePattern),
}

// StringValidation is a fluent set of checks over one string value
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length in characters
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length in characters
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return !v.Required
	}

	length := utf8.RuneCountInString(v.Value)
	if v.MinLen > 0 && length < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && length > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}
	return true
}

// ValidateUsername checks the username rules
func ValidateUsername(username string) error {
	ok := NewStringValidation(username).
		WithMinLength(UsernameMinLength).
		WithMaxLength(UsernameMaxLength).
		WithPattern(CompiledPatterns.Username).
		Validate()
	if !ok {
		return apperrors.NewCustomError(apperrors.ErrInvalidUsername,
			"Username must be 3-50 characters of letters, digits, '.', '-' or '_'")
	}
	return nil
}

// ValidatePassword checks length and requires at least one letter and one digit
func ValidatePassword(password string) error {
	invalid := apperrors.NewCustomError(apperrors.ErrInvalidPassword,
		"Password must be 8-72 characters and contain a letter and a digit")

	if len(password) > PasswordMaxLength || !NewStringValidation(password).WithMinLength(PasswordMinLength).Validate() {
		return invalid
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return invalid
	}
	return nil
}

// NormalizeMessage trims message content and checks its length
func NormalizeMessage(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", apperrors.ErrEmptyMessage
	}
	if utf8.RuneCountInString(trimmed) > MessageMaxLength {
		return "", apperrors.ErrMessageTooLong
	}
	return trimmed, nil
}

// RegisterCustomValidators adds the "username" and "password" tags to a validator instance
func RegisterCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return ValidateUsername(fl.Field().String()) == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return ValidatePassword(fl.Field().String()) == nil
	})
}
