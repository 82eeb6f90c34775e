package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidates_BrowseAndProfile(t *testing.T) {
	app := newTestApp(t)
	recruiter := app.signUp(t, "rita", "RECRUITER")
	carla := app.signUp(t, "carla", "CANDIDATE")
	app.signUp(t, "cody", "CANDIDATE")

	w := carla.postMultipart(t, "/documents", nil, "file", "cv.txt", []byte("Kubernetes operator experience"))
	require.Equal(t, http.StatusFound, w.Code)

	w = recruiter.get("/candidates")
	require.Equal(t, http.StatusOK, w.Code)
	page := body(t, w)
	assert.Contains(t, page, "carla")
	assert.Contains(t, page, "cody")
	assert.NotContains(t, page, ">rita<")

	w = recruiter.get("/candidates?q=kubernetes")
	require.Equal(t, http.StatusOK, w.Code)
	page = body(t, w)
	assert.Contains(t, page, "carla")
	assert.NotContains(t, page, "cody")

	w = recruiter.get(fmt.Sprintf("/candidates/%d", app.userID(t, "carla")))
	require.Equal(t, http.StatusOK, w.Code)
	page = body(t, w)
	assert.Contains(t, page, "cv.txt")
	assert.Contains(t, page, "Kubernetes operator experience")

	assert.Equal(t, http.StatusNotFound, recruiter.get(fmt.Sprintf("/candidates/%d", app.userID(t, "rita"))).Code)
}
