package driving

import (
	"context"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
)

// DuplicateReconciler finds and removes duplicate backend documents.
type DuplicateReconciler interface {
	// Plan scans the full backend listing and groups duplicates by
	// name without deleting anything.
	Plan(ctx context.Context, policy domain.KeepPolicy) (*domain.ReconcileReport, error)

	// Apply deletes every flagged entry in the report, best-effort.
	// Per-entry failures are counted, not fatal.
	Apply(ctx context.Context, report *domain.ReconcileReport) error
}

// TafsirQuerier runs verification queries over published documents.
type TafsirQuerier interface {
	// Query searches the corpus, optionally restricted to an
	// ayah-order range (zero bounds mean unrestricted).
	Query(ctx context.Context, text string, fromOrder, toOrder, limit int) ([]domain.QueryResult, error)
}
