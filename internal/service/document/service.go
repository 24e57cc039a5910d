package document

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/exellar/payroll-backend-go/internal/domain/document"
	"github.com/exellar/payroll-backend-go/internal/service/file"
)

type DocumentServiceImpl struct {
	docRepo document.DocumentRepository
	files   file.FileService
	now     func() time.Time
}

func NewDocumentService(docRepo document.DocumentRepository, files file.FileService) document.DocumentService {
	return &DocumentServiceImpl{
		docRepo: docRepo,
		files:   files,
		now:     time.Now,
	}
}

// countingReader records how many bytes went through to storage.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func (s *DocumentServiceImpl) List(ctx context.Context, filter document.DocumentFilter) ([]document.DocumentResponse, error) {
	docs, err := s.docRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]document.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		responses = append(responses, s.toResponse(ctx, d))
	}
	return responses, nil
}

func (s *DocumentServiceImpl) Get(ctx context.Context, id int64) (document.DocumentResponse, error) {
	d, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return document.DocumentResponse{}, err
	}
	return s.toResponse(ctx, d), nil
}

func (s *DocumentServiceImpl) Upload(ctx context.Context, req document.UploadDocumentRequest) (document.DocumentResponse, error) {
	if err := req.Validate(); err != nil {
		return document.DocumentResponse{}, err
	}

	doc := document.Document{
		Name:        strings.TrimSpace(req.Name),
		Type:        document.DocumentType(req.Type),
		Employee:    strings.TrimSpace(req.Employee),
		Department:  req.Department,
		Description: req.Description,
		UploadDate:  s.now(),
		Status:      document.Status(req.Status),
	}

	if req.File != nil {
		counter := &countingReader{r: req.File}
		key, contentType, err := s.files.UploadDocument(ctx, counter, req.FileName)
		if err != nil {
			return document.DocumentResponse{}, err
		}
		doc.FilePath = key
		doc.ContentType = contentType
		doc.SizeBytes = counter.n
	}

	created, err := s.docRepo.Create(ctx, doc)
	if err != nil {
		if doc.FilePath != "" {
			if delErr := s.files.DeleteFile(ctx, doc.FilePath); delErr != nil {
				slog.Warn("failed to remove orphaned document file", "path", doc.FilePath, "error", delErr)
			}
		}
		return document.DocumentResponse{}, err
	}

	slog.Info("document uploaded", "document_id", created.ID, "size_bytes", created.SizeBytes)
	return s.toResponse(ctx, created), nil
}

func (s *DocumentServiceImpl) Update(ctx context.Context, req document.UpdateDocumentRequest) (document.DocumentResponse, error) {
	if err := req.Validate(); err != nil {
		return document.DocumentResponse{}, err
	}

	updated, err := s.docRepo.Update(ctx, req)
	if err != nil {
		return document.DocumentResponse{}, err
	}
	return s.toResponse(ctx, updated), nil
}

func (s *DocumentServiceImpl) Delete(ctx context.Context, id int64) error {
	d, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.docRepo.Delete(ctx, id); err != nil {
		return err
	}

	if d.FilePath != "" {
		// The row is gone either way; a leftover file is only logged.
		if err := s.files.DeleteFile(ctx, d.FilePath); err != nil {
			slog.Warn("failed to delete document file", "document_id", id, "path", d.FilePath, "error", err)
		}
	}

	slog.Info("document deleted", "document_id", id)
	return nil
}

func (s *DocumentServiceImpl) Download(ctx context.Context, id int64) (io.ReadCloser, document.Document, error) {
	d, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, document.Document{}, err
	}
	if d.FilePath == "" {
		return nil, document.Document{}, document.ErrNoFileAttached
	}

	rc, err := s.files.Open(ctx, d.FilePath)
	if err != nil {
		return nil, document.Document{}, err
	}
	return rc, d, nil
}

func (s *DocumentServiceImpl) toResponse(ctx context.Context, d document.Document) document.DocumentResponse {
	resp := document.DocumentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Type:        string(d.Type),
		Employee:    d.Employee,
		Department:  d.Department,
		Description: d.Description,
		FilePath:    d.FilePath,
		UploadDate:  d.UploadDate.Format("2006-01-02"),
		Size:        d.Size(),
		SizeBytes:   d.SizeBytes,
		Status:      string(d.Status),
	}
	if d.FilePath != "" {
		url, err := s.files.GetFileURL(ctx, d.FilePath, 0)
		if err != nil {
			slog.Warn("failed to resolve document url", "document_id", d.ID, "error", err)
		} else {
			resp.FileURL = url
		}
	}
	return resp
}
