package middleware

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/talentbridge/internal/app/models"
	"github.com/yigit/talentbridge/internal/pkg/apperrors"
)

type stubAuthenticator struct {
	users map[string]*models.User
}

func (s stubAuthenticator) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if user, ok := s.users[token]; ok {
		return user, nil
	}
	return nil, apperrors.ErrSessionNotFound
}

func newTestRouter(m *AuthMiddleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("error.html").Parse(`{{.Error.Status}} {{.Error.Message}}`)))
	r.Use(LoadFlash(), m.LoadUser())
	return r
}

func TestAuthMiddleware_LoadUserAndRoles(t *testing.T) {
	recruiter := &models.User{ID: 1, Username: "rita", RoleType: models.RoleRecruiter}
	m := NewAuthMiddleware(stubAuthenticator{users: map[string]*models.User{"good": recruiter}}, CookieConfig{})
	r := newTestRouter(m)

	r.GET("/me", m.RequireLogin(), func(c *gin.Context) { c.String(http.StatusOK, CurrentUser(c).Username) })
	r.GET("/candidates-only", m.RequireLogin(), m.RoleRequired(models.RoleCandidate), func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: "good"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rita", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/candidates-only", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: "good"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "only available to Candidates")
}

func TestAuthMiddleware_AnonymousAndStaleCookies(t *testing.T) {
	m := NewAuthMiddleware(stubAuthenticator{}, CookieConfig{Name: "sid"})
	r := newTestRouter(m)
	r.GET("/private", m.RequireLogin(), func(c *gin.Context) { c.String(http.StatusOK, "secret") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private?tab=1", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?next=%2Fprivate%3Ftab%3D1", w.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "stale"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "sid" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "stale session cookie is cleared")
}

func TestFlash_RoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(LoadFlash())
	r.GET("/set", func(c *gin.Context) { SetFlash(c, FlashSuccess, "Saved!") })
	r.GET("/read", func(c *gin.Context) {
		if f := CurrentFlash(c); f != nil {
			c.String(http.StatusOK, f.Kind+":"+f.Message)
			return
		}
		c.String(http.StatusOK, "none")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/set", nil))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/read", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "success:Saved!", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/read", nil))
	assert.Equal(t, "none", w.Body.String())
}

func TestErrorPageFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{apperrors.ErrJobNotFound, http.StatusNotFound},
		{apperrors.NewForbiddenError("nope"), http.StatusForbidden},
		{apperrors.ErrUsernameAlreadyExists, http.StatusConflict},
		{apperrors.ErrEmptyMessage, http.StatusBadRequest},
		{apperrors.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{apperrors.ErrSessionExpired, http.StatusUnauthorized},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, ErrorPageFor(tt.err).Status, tt.err.Error())
	}

	assert.Equal(t, "nope", ErrorPageFor(apperrors.NewForbiddenError("nope")).Message)
	assert.NotContains(t, ErrorPageFor(errors.New("db down")).Message, "db down")
}
