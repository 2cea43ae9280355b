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
	"github.com/tarteel-labs/qul-indexer/internal/markup"
)

// Ensure Materialiser implements the interface.
var _ driving.SectionMaterialiser = (*Materialiser)(nil)

// Materialiser writes one artifact pair per commentary section: the
// fully stripped plain text and a metadata sidecar. Paths are
// deterministic, so re-running overwrites identical inputs in place.
type Materialiser struct {
	store     driven.TafsirStore
	outputDir string
	tafsir    string
}

// NewMaterialiser creates a per-section artifact writer.
func NewMaterialiser(store driven.TafsirStore, outputDir, tafsir string) *Materialiser {
	return &Materialiser{store: store, outputDir: outputDir, tafsir: tafsir}
}

// SurahDir returns the artifact directory for one surah.
func (m *Materialiser) SurahDir(surah int) string {
	return filepath.Join(m.outputDir, m.tafsir, "sections", fmt.Sprintf("surah-%03d", surah))
}

// MaterialiseSurah writes artifacts for every section of one surah.
// Sections whose extraction yields no text are skipped with a warning.
func (m *Materialiser) MaterialiseSurah(ctx context.Context, surah int) (written, skipped int, err error) {
	sections, err := m.store.SectionsForSurah(ctx, surah)
	if err != nil {
		return 0, 0, fmt.Errorf("read sections for surah %d: %w", surah, err)
	}
	if len(sections) == 0 {
		return 0, 0, nil
	}

	dir := m.SurahDir(surah)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, 0, fmt.Errorf("create section dir: %w", err)
	}

	for _, sec := range sections {
		text := markup.PlainText(sec.Text)
		if text == "" {
			logger.Warn("surah %d: empty extraction for %s, skipping", surah, sec.AyahKey)
			skipped++
			continue
		}

		meta, err := FragmentMetaFor(sec)
		if err != nil {
			logger.Warn("surah %d: skipping section %s: %v", surah, sec.AyahKey, err)
			skipped++
			continue
		}

		base := filepath.Join(dir, domain.ArtifactBaseName(sec.GroupAyahKey))
		if err := os.WriteFile(base+".txt", []byte(text), 0o644); err != nil {
			return written, skipped, fmt.Errorf("write artifact: %w", err)
		}

		sidecar, err := json.MarshalIndent(meta, "", "  ")
		if err != nil {
			return written, skipped, fmt.Errorf("marshal sidecar: %w", err)
		}
		if err := os.WriteFile(base+".metadata.json", sidecar, 0o644); err != nil {
			return written, skipped, fmt.Errorf("write sidecar: %w", err)
		}

		written++
	}

	logger.Info("surah %d: %d artifacts written, %d skipped", surah, written, skipped)
	return written, skipped, nil
}

// MaterialiseSurahs runs MaterialiseSurah over an inclusive range.
func (m *Materialiser) MaterialiseSurahs(ctx context.Context, from, to int) (written, skipped int, err error) {
	for surah := from; surah <= to; surah++ {
		w, s, err := m.MaterialiseSurah(ctx, surah)
		if err != nil {
			return written, skipped, err
		}
		written += w
		skipped += s
	}
	return written, skipped, nil
}
