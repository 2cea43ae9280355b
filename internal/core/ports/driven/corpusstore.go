package driven

import (
	"context"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
)

// CorpusStore is the whole-document search backend. Documents are
// replaced wholesale: delete-then-create is the only write pattern.
type CorpusStore interface {
	// DeleteDocument removes a document by id. A missing document
	// fails with an error wrapping domain.ErrNotFound.
	DeleteDocument(ctx context.Context, corpusKey, documentID string) error

	// CreateDocument uploads a whole-document payload. Payloads can be
	// large; implementations use an extended timeout.
	CreateDocument(ctx context.Context, corpusKey string, doc *domain.DocumentUnit) error

	// Query runs a ranked search restricted by a metadata filter
	// expression. Used for post-publish verification only.
	Query(ctx context.Context, corpusKey, query, metadataFilter string, limit int) ([]domain.QueryResult, error)
}
