package driving

import (
	"context"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
)

// PublishOptions configures a whole-document publish run.
type PublishOptions struct {
	// From and To bound the surah range, inclusive.
	From, To int

	// FailFast aborts the run on the first backend create failure
	// instead of continuing with the next surah.
	FailFast bool
}

// WholeDocumentPublisher publishes per-surah composite documents.
type WholeDocumentPublisher interface {
	// PublishSurahs builds and publishes one document per surah in
	// range. Surahs with no extracted fragments are skipped.
	PublishSurahs(ctx context.Context, opts PublishOptions) (*domain.PublishReport, error)
}

// SectionMaterialiser writes per-section artifacts to disk.
type SectionMaterialiser interface {
	// MaterialiseSurahs writes text + sidecar artifacts for every
	// section in the surah range. Returns written and skipped counts.
	MaterialiseSurahs(ctx context.Context, from, to int) (written, skipped int, err error)
}

// SectionIngestor uploads materialised artifacts and submits ingest jobs.
type SectionIngestor interface {
	// IngestAll processes every surah directory found on disk,
	// one batch per surah. Batch outcomes are independent.
	IngestAll(ctx context.Context) ([]domain.ChapterReport, error)
}
