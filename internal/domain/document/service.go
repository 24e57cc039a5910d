package document

import (
	"context"
	"io"
)

type DocumentService interface {
	List(ctx context.Context, filter DocumentFilter) ([]DocumentResponse, error)
	Get(ctx context.Context, id int64) (DocumentResponse, error)
	Upload(ctx context.Context, req UploadDocumentRequest) (DocumentResponse, error)
	Update(ctx context.Context, req UpdateDocumentRequest) (DocumentResponse, error)
	// Delete removes the row and its stored file.
	Delete(ctx context.Context, id int64) error
	// Download opens the stored file. The caller closes the reader.
	Download(ctx context.Context, id int64) (io.ReadCloser, Document, error)
}
