package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/exellar/payroll-backend-go/internal/pkg/storage"
)

var ErrInvalidFileType = errors.New("invalid file type: only pdf, doc, docx, xls, xlsx, csv, txt, jpg, jpeg, png allowed")

var allowedDocumentExts = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".csv":  "text/csv",
	".txt":  "text/plain",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

type FileService interface {
	// UploadDocument stores a document under documents/YYYY/MM and returns its key.
	UploadDocument(ctx context.Context, file io.Reader, filename string) (key string, contentType string, err error)

	// Generic operations
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
	now     func() time.Time
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
		now:     time.Now,
	}
}

func (s *fileServiceImpl) UploadDocument(ctx context.Context, file io.Reader, filename string) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := allowedDocumentExts[ext]
	if !ok {
		return "", "", ErrInvalidFileType
	}

	key := storage.ObjectKey("documents", s.now(), filename)
	uploadedPath, err := s.storage.Upload(ctx, file, key, contentType)
	if err != nil {
		return "", "", fmt.Errorf("failed to upload document: %w", err)
	}

	return uploadedPath, contentType, nil
}

func (s *fileServiceImpl) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.storage.Download(ctx, path)
}

// DeleteFile deletes a file from storage
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL gets the URL for a file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}
