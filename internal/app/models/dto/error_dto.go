package dto

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	// Authentication errors
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_008"
	ErrorCodeForbidden          ErrorCode = "AUTH_009"

	// Resource errors
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VAL_001"

	// Server errors
	ErrorCodeInternalServer ErrorCode = "SRV_001"
)

// ErrorPage is the data behind the error template
type ErrorPage struct {
	Status  int
	Code    ErrorCode
	Title   string
	Message string
}

// NewErrorPage creates the error page data
func NewErrorPage(status int, code ErrorCode, title, message string) *ErrorPage {
	return &ErrorPage{
		Status:  status,
		Code:    code,
		Title:   title,
		Message: message,
	}
}
