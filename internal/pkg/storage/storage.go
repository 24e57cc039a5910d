package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrInvalidPath  = errors.New("invalid file path")
)

type FileStorage interface {
	// Upload stores file under key and returns the cleaned key.
	Upload(ctx context.Context, file io.Reader, key string, contentType string) (string, error)

	// Download opens the file stored under key.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a file. Deleting a missing file is not an error.
	Delete(ctx context.Context, key string) error

	// GetURL returns a URL clients can fetch the file from.
	GetURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	Exists(ctx context.Context, key string) (bool, error)
}

// ObjectKey builds a collision-free key inside dir that keeps the
// original file extension, e.g. "documents/2024/05/<uuid>.pdf".
func ObjectKey(dir string, now time.Time, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return path.Join(dir, now.Format("2006"), now.Format("01"), uuid.NewString()+ext)
}
