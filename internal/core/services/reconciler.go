package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
	"github.com/tarteel-labs/qul-indexer/internal/core/ports/driven"
	"github.com/tarteel-labs/qul-indexer/internal/core/ports/driving"
	"github.com/tarteel-labs/qul-indexer/internal/logger"
)

// Ensure Reconciler implements the interface.
var _ driving.DuplicateReconciler = (*Reconciler)(nil)

// DefaultPageSize is the listing page size used while scanning.
const DefaultPageSize = 100

// Reconciler removes duplicate documents from the per-section backend.
// The whole listing is accumulated in memory; corpus size is bounded,
// this is not built for unbounded scale.
type Reconciler struct {
	store    driven.IngestStore
	pageSize int
}

// NewReconciler creates a duplicate reconciler.
func NewReconciler(store driven.IngestStore) *Reconciler {
	return &Reconciler{store: store, pageSize: DefaultPageSize}
}

// Plan pages through the full listing, groups entries by name and
// flags every non-retained duplicate. Nothing is deleted.
func (r *Reconciler) Plan(ctx context.Context, policy domain.KeepPolicy) (*domain.ReconcileReport, error) {
	if !policy.Valid() {
		return nil, fmt.Errorf("%w: keep policy %q", domain.ErrInvalidInput, policy)
	}

	all, err := r.listAll(ctx)
	if err != nil {
		return nil, err
	}

	// Group by name, preserving first-appearance order for
	// deterministic output. Unnamed documents are grouped under a
	// placeholder, never dropped.
	groups := make(map[string][]domain.ListedDocument)
	var names []string
	for _, doc := range all {
		name := doc.Name
		if name == "" {
			name = domain.UnnamedGroup
		}
		if _, seen := groups[name]; !seen {
			names = append(names, name)
		}
		groups[name] = append(groups[name], doc)
	}

	report := &domain.ReconcileReport{Scanned: len(all), DryRun: true}
	for _, name := range names {
		docs := groups[name]
		if len(docs) < 2 {
			continue
		}

		// Stable sort: equal timestamps retain listing order.
		sort.SliceStable(docs, func(i, j int) bool {
			return docs[i].CreatedAt.Before(docs[j].CreatedAt)
		})

		keepIdx := 0
		if policy == domain.KeepNewest {
			keepIdx = len(docs) - 1
		}

		group := domain.DuplicateGroup{Name: name, Keep: docs[keepIdx]}
		for i, doc := range docs {
			if i != keepIdx {
				group.Remove = append(group.Remove, doc)
			}
		}
		report.Groups = append(report.Groups, group)
	}

	return report, nil
}

// Apply deletes every flagged entry, best-effort: a per-entry failure
// is counted and the remaining entries are still attempted.
func (r *Reconciler) Apply(ctx context.Context, report *domain.ReconcileReport) error {
	report.DryRun = false
	for _, group := range report.Groups {
		for _, doc := range group.Remove {
			if err := r.store.DeleteDocument(ctx, doc.ID); err != nil {
				logger.Warn("delete %s (%s) failed: %v", doc.ID, group.Name, err)
				report.Failed++
				continue
			}
			logger.Info("deleted duplicate %s (%s)", doc.ID, group.Name)
			report.Deleted++
		}
	}
	return nil
}

// listAll pages through the backend listing until exhaustion.
func (r *Reconciler) listAll(ctx context.Context) ([]domain.ListedDocument, error) {
	var all []domain.ListedDocument
	cursor := ""

	for {
		page, err := r.store.ListDocuments(ctx, cursor, r.pageSize)
		if err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}

		all = append(all, page.Documents...)
		if !page.HasMore || page.NextCursor == "" {
			return all, nil
		}
		cursor = page.NextCursor
	}
}
