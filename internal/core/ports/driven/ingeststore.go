package driven

import (
	"context"
	"io"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
)

// IngestStore is the per-section file backend. Files are uploaded
// individually through a pre-signed URL handshake and then referenced
// together in one ingest job per batch.
type IngestStore interface {
	// CreateUpload requests a pre-signed upload slot for a file.
	CreateUpload(ctx context.Context, fileName, contentType string, size int64) (*domain.UploadTicket, error)

	// Upload PUTs raw bytes to a pre-signed URL.
	Upload(ctx context.Context, uploadURL string, body io.Reader, size int64, contentType string) error

	// CreateIngestJob submits one batch referencing uploaded object
	// keys. Returns the backend job id.
	CreateIngestJob(ctx context.Context, job *domain.IngestJob) (string, error)

	// ListDocuments pages through the backend's document listing.
	// An empty cursor starts from the beginning.
	ListDocuments(ctx context.Context, cursor string, pageSize int) (*DocumentPage, error)

	// DeleteDocument removes a listed document by id.
	DeleteDocument(ctx context.Context, id string) error
}

// DocumentPage is one page of a backend document listing.
type DocumentPage struct {
	Documents  []domain.ListedDocument
	NextCursor string
	HasMore    bool
}
