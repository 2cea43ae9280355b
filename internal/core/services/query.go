package services

import (
	"context"
	"fmt"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
	"github.com/tarteel-labs/qul-indexer/internal/core/ports/driven"
	"github.com/tarteel-labs/qul-indexer/internal/core/ports/driving"
)

// Ensure QueryService implements the interface.
var _ driving.TafsirQuerier = (*QueryService)(nil)

// DefaultQueryLimit is the result cap for verification queries.
const DefaultQueryLimit = 100

// QueryService runs verification queries against the whole-document
// backend, restricted to an ayah-order range. Read-only; not part of
// the write path.
type QueryService struct {
	corpus    driven.CorpusStore
	corpusKey string
}

// NewQueryService creates a verification query service.
func NewQueryService(corpus driven.CorpusStore, corpusKey string) *QueryService {
	return &QueryService{corpus: corpus, corpusKey: corpusKey}
}

// Query searches published fragments. Zero order bounds leave the
// filter unrestricted.
func (q *QueryService) Query(ctx context.Context, text string, fromOrder, toOrder, limit int) ([]domain.QueryResult, error) {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	filter := ""
	if fromOrder > 0 && toOrder > 0 {
		// A fragment matches when its range overlaps the requested one.
		filter = fmt.Sprintf("part.to_ayah_int >= %d and part.from_ayah_int <= %d", fromOrder, toOrder)
	}

	results, err := q.corpus.Query(ctx, q.corpusKey, text, filter, limit)
	if err != nil {
		return nil, fmt.Errorf("query corpus: %w", err)
	}
	return results, nil
}
