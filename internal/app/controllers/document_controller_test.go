package controllers_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocuments_UploadDownloadDelete(t *testing.T) {
	app := newTestApp(t)
	owner := app.signUp(t, "carla", "CANDIDATE")
	stranger := app.signUp(t, "cody", "CANDIDATE")
	recruiter := app.signUp(t, "rita", "RECRUITER")

	content := []byte("Experienced Go engineer")
	w := owner.postMultipart(t, "/documents", nil, "file", "my resume.txt", content)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, "/documents", w.Header().Get("Location"))

	w = owner.get("/documents")
	require.Equal(t, http.StatusOK, w.Code)
	page := body(t, w)
	assert.Contains(t, page, "Uploaded my resume.txt")

	docs, err := app.deps.DocumentService.ListByOwner(context.Background(), app.userID(t, "carla"))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	downloadPath := fmt.Sprintf("/documents/%d/download", docs[0].ID)
	deletePath := fmt.Sprintf("/documents/%d/delete", docs[0].ID)

	w = owner.get(downloadPath)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, content, w.Body.Bytes())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="my resume.txt"`)

	w = recruiter.get(downloadPath)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.Equal(content, w.Body.Bytes()))

	assert.Equal(t, http.StatusNotFound, stranger.get(downloadPath).Code)
	assert.Equal(t, http.StatusNotFound, stranger.postForm(deletePath, nil).Code)
	assert.Equal(t, http.StatusNotFound, recruiter.postForm(deletePath, nil).Code)

	w = owner.postForm(deletePath, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, http.StatusNotFound, owner.get(downloadPath).Code)
}

func TestDocuments_UploadRejections(t *testing.T) {
	app := newTestApp(t)
	c := app.signUp(t, "carla", "CANDIDATE")

	w := c.postMultipart(t, "/documents", nil, "", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body(t, w), "Choose a file to upload")

	w = c.postMultipart(t, "/documents", nil, "file", "tool.exe", []byte("MZ"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = c.postMultipart(t, "/documents", nil, "file", "big.txt", bytes.Repeat([]byte("a"), (1<<20)+1))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = c.postMultipart(t, "/documents", nil, "file", "huge.txt", bytes.Repeat([]byte("a"), 3<<20))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestDocuments_RequireLogin(t *testing.T) {
	app := newTestApp(t)
	w := app.client().get("/documents")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?next=%2Fdocuments", w.Header().Get("Location"))
}
