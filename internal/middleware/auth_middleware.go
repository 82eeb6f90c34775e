package middleware

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/talentbridge/internal/app/models"
	"github.com/yigit/talentbridge/internal/pkg/apperrors"
	"github.com/yigit/talentbridge/internal/pkg/logger"
)

// ContextKeyUser is where the signed-in user is stored on the gin context
const ContextKeyUser = "currentUser"

// Authenticator resolves a session token to a user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// CookieConfig describes the session cookie
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthMiddleware loads the session user and guards routes
type AuthMiddleware struct {
	authenticator Authenticator
	cookie        CookieConfig
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authenticator Authenticator, cookie CookieConfig) *AuthMiddleware {
	if cookie.Name == "" {
		cookie.Name = "session_token"
	}
	return &AuthMiddleware{
		authenticator: authenticator,
		cookie:        cookie,
	}
}

// LoadUser puts the user behind the session cookie on the context, when there is one.
// A stale or forged cookie is cleared and the request continues anonymously.
func (m *AuthMiddleware) LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookie.Name)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, err := m.authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !apperrors.Is(err, apperrors.ErrSessionNotFound, apperrors.ErrSessionExpired, apperrors.ErrTokenInvalid, apperrors.ErrUnauthenticated) {
				logger.Error().Err(err).Msg("Session lookup failed")
			}
			m.ClearSessionCookie(c)
			c.Next()
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// RequireLogin redirects anonymous visitors to the login page
func (m *AuthMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) != nil {
			c.Next()
			return
		}

		SetFlash(c, FlashError, "Please log in to continue")
		next := ""
		if c.Request.Method == http.MethodGet {
			next = "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
		}
		c.Redirect(http.StatusFound, "/login"+next)
		c.Abort()
	}
}

// RoleRequired renders the forbidden page unless the signed-in user has the role
func (m *AuthMiddleware) RoleRequired(role models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			HandleWebError(c, apperrors.ErrUnauthenticated)
			c.Abort()
			return
		}
		if user.RoleType != role {
			HandleWebError(c, apperrors.NewForbiddenError("This page is only available to "+role.Label()+"s"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// SetSessionCookie stores the session token in an HttpOnly cookie
func (m *AuthMiddleware) SetSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     m.cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie
func (m *AuthMiddleware) ClearSessionCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     m.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionToken returns the raw session cookie value
func (m *AuthMiddleware) SessionToken(c *gin.Context) string {
	token, _ := c.Cookie(m.cookie.Name)
	return token
}

// CurrentUser returns the signed-in user or nil
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}
