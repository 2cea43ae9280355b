package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
	"github.com/tarteel-labs/qul-indexer/internal/core/ports/driven"
	"github.com/tarteel-labs/qul-indexer/internal/logger"
	"github.com/tarteel-labs/qul-indexer/internal/markup"
)

// Builder assembles the per-surah fragment model from tafsir rows.
type Builder struct {
	store driven.TafsirStore
}

// NewBuilder creates a section model builder over a tafsir store.
func NewBuilder(store driven.TafsirStore) *Builder {
	return &Builder{store: store}
}

// FragmentsForSurah reads the surah's rows and extracts one fragment
// per structural element of each commentary body, in source row order.
// Rows with empty extraction contribute nothing; rows with malformed
// verse keys are logged and skipped, never aborting the surah.
func (b *Builder) FragmentsForSurah(ctx context.Context, surah int) ([]domain.Fragment, error) {
	sections, err := b.store.SectionsForSurah(ctx, surah)
	if err != nil {
		return nil, fmt.Errorf("read sections for surah %d: %w", surah, err)
	}

	var fragments []domain.Fragment
	for _, sec := range sections {
		logger.Debug("processing section %s", sec.AyahKey)

		parts := markup.Structural(sec.Text)
		if len(parts) == 0 {
			logger.Info("no parts extracted for %s", sec.AyahKey)
			continue
		}

		meta, err := FragmentMetaFor(sec)
		if err != nil {
			logger.Warn("skipping section %s: %v", sec.AyahKey, err)
			continue
		}

		for _, part := range parts {
			fragments = append(fragments, domain.Fragment{Meta: meta, Text: part})
		}
	}

	return fragments, nil
}

// FragmentMetaFor derives the published metadata for one section,
// including both range endpoints' order keys.
func FragmentMetaFor(sec domain.Section) (domain.FragmentMeta, error) {
	fromOrder, err := domain.VerseKeyToOrder(sec.FromAyah)
	if err != nil {
		return domain.FragmentMeta{}, fmt.Errorf("from_ayah: %w", err)
	}
	toOrder, err := domain.VerseKeyToOrder(sec.ToAyah)
	if err != nil {
		return domain.FragmentMeta{}, fmt.Errorf("to_ayah: %w", err)
	}

	return domain.FragmentMeta{
		AyahKey:      sec.AyahKey,
		GroupAyahKey: sec.GroupAyahKey,
		FromAyah:     sec.FromAyah,
		ToAyah:       sec.ToAyah,
		FromAyahInt:  fromOrder,
		ToAyahInt:    toOrder,
		AyahKeys:     strings.Join(sec.AyahKeys, ","),
	}, nil
}
