package driven

import (
	"context"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
)

// TafsirStore reads commentary rows from a downloaded tafsir export.
// The export is externally owned and opened read-only; implementations
// must never write to it.
type TafsirStore interface {
	// SectionsForSurah returns all rows whose ayah_key belongs to the
	// surah, in source row order.
	SectionsForSurah(ctx context.Context, surah int) ([]domain.Section, error)

	// AyahMapping returns the full ayah_key to group_ayah_key mapping.
	AyahMapping(ctx context.Context) (map[string]string, error)

	// Close releases the underlying database handle.
	Close() error
}
