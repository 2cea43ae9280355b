package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
	"github.com/tarteel-labs/qul-indexer/internal/core/ports/driven"
	"github.com/tarteel-labs/qul-indexer/internal/core/ports/driving"
	"github.com/tarteel-labs/qul-indexer/internal/logger"
)

// Ensure Publisher implements the interface.
var _ driving.WholeDocumentPublisher = (*Publisher)(nil)

// Publisher builds one composite document per surah and replaces it in
// the whole-document backend. Replacement is best-effort idempotent:
// delete-then-create, with delete failures swallowed because create is
// effectively an upsert for this caller.
type Publisher struct {
	builder      *Builder
	corpus       driven.CorpusStore
	corpusKey    string
	tafsir       string
	downloadsDir string
}

// NewPublisher creates a whole-document publisher.
func NewPublisher(builder *Builder, corpus driven.CorpusStore, corpusKey, tafsir, downloadsDir string) *Publisher {
	return &Publisher{
		builder:      builder,
		corpus:       corpus,
		corpusKey:    corpusKey,
		tafsir:       tafsir,
		downloadsDir: downloadsDir,
	}
}

// PublishSurah builds and publishes one surah. Returns false when the
// surah produced no fragments and nothing was published.
func (p *Publisher) PublishSurah(ctx context.Context, surah int) (bool, error) {
	fragments, err := p.builder.FragmentsForSurah(ctx, surah)
	if err != nil {
		return false, err
	}

	logger.Info("surah %d: %d parts extracted", surah, len(fragments))
	if len(fragments) == 0 {
		return false, nil
	}

	doc := domain.NewDocumentUnit(p.tafsir, surah, fragments)

	// The local snapshot is written before any network call so failed
	// runs stay diagnosable from disk.
	if err := p.writeSnapshot(surah, doc); err != nil {
		return false, err
	}

	if err := p.corpus.DeleteDocument(ctx, p.corpusKey, doc.ID); err != nil {
		// Not-found is expected on first publish; other delete failures
		// must not block creation either.
		logger.Info("could not delete document %s: %v", doc.ID, err)
	}

	logger.Info("uploading surah %d as %s", surah, doc.ID)
	if err := p.corpus.CreateDocument(ctx, p.corpusKey, doc); err != nil {
		return false, fmt.Errorf("create document %s: %w", doc.ID, err)
	}

	return true, nil
}

// PublishSurahs runs the per-surah driver loop over an inclusive range.
// Backend create failures abort only the failing surah unless FailFast
// is set.
func (p *Publisher) PublishSurahs(ctx context.Context, opts driving.PublishOptions) (*domain.PublishReport, error) {
	report := &domain.PublishReport{}

	for surah := opts.From; surah <= opts.To; surah++ {
		published, err := p.PublishSurah(ctx, surah)
		switch {
		case err != nil:
			report.Failed++
			logger.Error("surah %d failed: %v", surah, err)
			if opts.FailFast {
				return report, err
			}
		case published:
			report.Published++
		default:
			report.Skipped++
		}
	}

	return report, nil
}

// writeSnapshot persists the document payload as a local JSON audit file.
func (p *Publisher) writeSnapshot(surah int, doc *domain.DocumentUnit) error {
	if err := os.MkdirAll(p.downloadsDir, 0o755); err != nil {
		return fmt.Errorf("create downloads dir: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	path := filepath.Join(p.downloadsDir, fmt.Sprintf("%s-%d.json", p.tafsir, surah))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}

	logger.Debug("snapshot written to %s", path)
	return nil
}
