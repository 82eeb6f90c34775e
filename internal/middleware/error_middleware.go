package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/talentbridge/internal/app/models/dto"
	"github.com/yigit/talentbridge/internal/pkg/apperrors"
	"github.com/yigit/talentbridge/internal/pkg/logger"
)

// ErrorPageFor maps an error to the page shown for it
func ErrorPageFor(err error) *dto.ErrorPage {
	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound, apperrors.ErrJobNotFound, apperrors.ErrDocumentNotFound, apperrors.ErrRecipientUnknown):
		return dto.NewErrorPage(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Not found", apperrors.UserMessage(err))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return dto.NewErrorPage(http.StatusForbidden, dto.ErrorCodeForbidden, "Forbidden", apperrors.UserMessage(err))
	case apperrors.Is(err, apperrors.ErrUnauthenticated,
		apperrors.ErrSessionExpired, apperrors.ErrSessionNotFound, apperrors.ErrTokenInvalid):
		return dto.NewErrorPage(http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Please log in", "You need to log in to see this page.")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return dto.NewErrorPage(http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Login failed", apperrors.UserMessage(err))
	case apperrors.Is(err, apperrors.ErrConflict, apperrors.ErrResourceAlreadyExists,
		apperrors.ErrUsernameAlreadyExists, apperrors.ErrAlreadyApplied):
		return dto.NewErrorPage(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Conflict", apperrors.UserMessage(err))
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest,
		apperrors.ErrInvalidUsername, apperrors.ErrInvalidPassword,
		apperrors.ErrUnsupportedFileType, apperrors.ErrFileRequired, apperrors.ErrApplicationInvalid,
		apperrors.ErrSelfMessage, apperrors.ErrEmptyMessage, apperrors.ErrMessageTooLong):
		return dto.NewErrorPage(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid request", apperrors.UserMessage(err))
	case errors.Is(err, apperrors.ErrFileTooLarge):
		return dto.NewErrorPage(http.StatusRequestEntityTooLarge, dto.ErrorCodeValidationFailed, "File too large", apperrors.UserMessage(err))
	default:
		return dto.NewErrorPage(http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Something went wrong", apperrors.UserMessage(err))
	}
}

// HandleWebError renders the error page matching err
func HandleWebError(c *gin.Context, err error) {
	page := ErrorPageFor(err)
	if page.Status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
	}
	Render(c, page.Status, "error.html", gin.H{
		"Title": page.Title,
		"Error": page,
	})
}

// NotFound renders the 404 page for unknown routes
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		HandleWebError(c, apperrors.NewResourceNotFoundError("The page you are looking for does not exist."))
	}
}

// Recovery turns panics into the 500 page
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error().Str("panic", fmt.Sprint(recovered)).Str("path", c.Request.URL.Path).Msg("Recovered from panic")
		HandleWebError(c, fmt.Errorf("panic: %v", recovered))
		c.Abort()
	})
}
