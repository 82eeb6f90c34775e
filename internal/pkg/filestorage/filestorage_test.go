package filestorage

import (
	"context"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/talentbridge/internal/pkg/filestorage/filestoragetest"
)

func newFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	return filestoragetest.NewFileHeader(t, filename, contentType, content)
}

func TestGenerateKey(t *testing.T) {
	key := GenerateKey("documents/7", "My Résumé (final).PDF")

	assert.True(t, strings.HasPrefix(key, "documents/7/"))
	assert.True(t, strings.HasSuffix(key, "_my-resume-final.pdf"), key)

	assert.NotEqual(t, GenerateKey("", "a.txt"), GenerateKey("", "a.txt"))
	assert.True(t, strings.HasSuffix(GenerateKey("", "???.txt"), "_file.txt"))
}

func TestCleanKey(t *testing.T) {
	for _, bad := range []string{"", "/etc/passwd", "../secret", "a/../../b", ".", `..\x`} {
		_, err := cleanKey(bad)
		assert.ErrorIs(t, err, ErrInvalidKey, bad)
	}

	got, err := cleanKey("documents/./1/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "documents/1/a.txt", got)
}

func TestDetectMimeType(t *testing.T) {
	assert.Equal(t, "application/pdf", DetectMimeType(newFileHeader(t, "cv.pdf", "application/pdf", []byte("%PDF"))))
	assert.Equal(t, "application/pdf", DetectMimeType(newFileHeader(t, "cv.pdf", "application/octet-stream", []byte("%PDF"))))
	assert.Equal(t, "application/octet-stream", DetectMimeType(newFileHeader(t, "blob.zzz", "application/octet-stream", []byte("x"))))
}

func TestLocalStorage_SaveOpenDelete(t *testing.T) {
	root := t.TempDir()
	storage, err := NewLocalStorage(root)
	require.NoError(t, err)
	ctx := context.Background()

	content := []byte("hello resume")
	info, err := storage.SaveFileWithPath(ctx, newFileHeader(t, "cv.txt", "text/plain", content), "documents/1")
	require.NoError(t, err)
	assert.Equal(t, "cv.txt", info.Filename)
	assert.Equal(t, int64(len(content)), info.FileSize)
	assert.Equal(t, "text/plain", info.MimeType)

	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(info.Key)))
	require.NoError(t, err)

	rc, err := storage.Open(ctx, info.Key)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, content, got)

	require.NoError(t, storage.DeleteFile(ctx, info.Key))
	_, err = storage.Open(ctx, info.Key)
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting twice is fine
	assert.NoError(t, storage.DeleteFile(ctx, info.Key))
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.Open(context.Background(), "../../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.ErrorIs(t, storage.DeleteFile(context.Background(), "/tmp/x"), ErrInvalidKey)
}

func TestNewS3Storage(t *testing.T) {
	_, err := NewS3Storage(context.Background(), S3Config{})
	assert.Error(t, err)

	storage, err := NewS3Storage(context.Background(), S3Config{
		Bucket:    "resumes",
		Endpoint:  "http://localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
	})
	require.NoError(t, err)
	assert.Equal(t, "resumes", storage.bucket)

	_, err = storage.Open(context.Background(), "../x")
	assert.ErrorIs(t, err, ErrInvalidKey)
}
