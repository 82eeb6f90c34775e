package controllers_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/talentbridge/internal/bootstrap"
	"github.com/yigit/talentbridge/internal/config"
	"github.com/yigit/talentbridge/internal/db/dbtest"
)

const testPassword = "passw0rd!"

type testApp struct {
	router *gin.Engine
	deps   *bootstrap.Dependencies
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Session.Secret = "test-secret"
	cfg.Session.Issuer = "talentbridge-test"
	cfg.Session.CookieName = "session_token"
	cfg.Session.Expiration = "1h"
	cfg.Session.Store = config.SessionStoreDatabase
	cfg.Session.PasswordCost = bcrypt.MinCost
	cfg.Storage.Driver = config.StorageLocal
	cfg.Storage.LocalPath = t.TempDir()
	cfg.Storage.MaxUploadSize = 1 << 20

	deps, err := bootstrap.BuildDependencies(context.Background(), cfg, dbtest.New(t), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Close() })

	router, err := bootstrap.SetupRouter(cfg, deps, zerolog.Nop())
	require.NoError(t, err)
	return &testApp{router: router, deps: deps}
}

// client is a browser stand-in that keeps the cookies the app sets
type client struct {
	app     *testApp
	cookies map[string]*http.Cookie
}

func (a *testApp) client() *client {
	return &client{app: a, cookies: map[string]*http.Cookie{}}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	c.app.router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.MaxAge < 0 || cookie.Value == "" {
			delete(c.cookies, cookie.Name)
			continue
		}
		c.cookies[cookie.Name] = cookie
	}
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *client) postMultipart(t *testing.T, path string, fields map[string]string, fileField, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.do(req)
}

// signUp registers a fresh account and returns a client logged in as it
func (a *testApp) signUp(t *testing.T, username, role string) *client {
	t.Helper()
	c := a.client()
	w := c.postForm("/register", url.Values{
		"username":         {username},
		"password":         {testPassword},
		"confirm_password": {testPassword},
		"role":             {role},
	})
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	require.Contains(t, c.cookies, "session_token")
	return c
}

func (a *testApp) userID(t *testing.T, username string) int64 {
	t.Helper()
	user, err := a.deps.Repos.UserRepository.GetUserByUsername(context.Background(), username)
	require.NoError(t, err)
	return user.ID
}

func body(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	data, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	return string(data)
}
