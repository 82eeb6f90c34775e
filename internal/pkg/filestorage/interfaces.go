package filestorage

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ErrInvalidKey is returned for keys that are empty or try to leave the storage root
var ErrInvalidKey = errors.New("invalid storage key")

// ErrNotFound is returned when a stored object does not exist
var ErrNotFound = errors.New("stored file not found")

// FileInfo represents information about a stored file
type FileInfo struct {
	Key      string // Storage key, relative to the storage root
	Filename string // Original filename
	FileSize int64  // Size in bytes
	MimeType string // MIME type of the file
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFileWithPath stores an uploaded file under subPath with a generated unique name
	SaveFileWithPath(ctx context.Context, fileHeader *multipart.FileHeader, subPath string) (*FileInfo, error)

	// Open returns the content of a stored file
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// DeleteFile removes a file; missing files are not an error
	DeleteFile(ctx context.Context, key string) error
}

// GenerateKey builds a collision free key "<subPath>/<uuid>_<slug>.<ext>" for an uploaded filename
func GenerateKey(subPath, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := slug.Make(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if base == "" {
		base = "file"
	}

	name := uuid.New().String() + "_" + base + ext
	if subPath == "" {
		return name
	}
	return path.Join(subPath, name)
}

// DetectMimeType prefers the type sent by the client and falls back to the extension
func DetectMimeType(fileHeader *multipart.FileHeader) string {
	if ct := fileHeader.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileHeader.Filename))); byExt != "" {
		return byExt
	}
	return "application/octet-stream"
}

// cleanKey rejects absolute keys and keys that climb out of the root
func cleanKey(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(strings.ReplaceAll(key, `\`, "/"))
	if strings.HasPrefix(cleaned, "/") || cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
