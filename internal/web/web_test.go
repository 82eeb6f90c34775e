package web

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_ParseAllPages(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{
		"home.html", "register.html", "login.html", "dashboard.html",
		"jobs.html", "job_new.html", "job_detail.html", "applicants.html",
		"candidates.html", "candidate_profile.html", "documents.html",
		"inbox.html", "thread.html", "error.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestTemplates_ErrorPageRenders(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "error.html", map[string]any{
		"Title": "Not found",
		"Error": map[string]any{"Status": 404, "Title": "Not found", "Message": "<gone>"},
		"Year":  2026,
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "&lt;gone&gt;")
	assert.Contains(t, buf.String(), "404")
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", humanSize(512))
	assert.Equal(t, "1.5 KB", humanSize(1536))
	assert.Equal(t, "10.0 MB", humanSize(10<<20))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate(10, "  short "))
	assert.Equal(t, "abc…", truncate(3, "abcdef"))
}

func TestFormatDate(t *testing.T) {
	assert.Empty(t, formatDate(time.Time{}))
	assert.NotEmpty(t, formatDateTime(time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)))
}

func TestStatic_ServesStylesheet(t *testing.T) {
	f, err := Static().Open("style.css")
	require.NoError(t, err)
	defer f.Close()
}
