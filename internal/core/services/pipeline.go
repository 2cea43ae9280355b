package services

import (
	"context"
	"fmt"

	"github.com/tarteel-labs/qul-indexer/internal/core/ports/driven"
	"github.com/tarteel-labs/qul-indexer/internal/core/ports/driving"
	"github.com/tarteel-labs/qul-indexer/internal/logger"
)

// StoreOpener opens a tafsir store for a downloaded export path.
// Injected so the pipeline can open the store only after the download
// step has produced the file.
type StoreOpener func(path string) (driven.TafsirStore, error)

// PipelineConfig bounds one full pipeline run.
type PipelineConfig struct {
	Tafsir       string
	CorpusKey    string
	DownloadsDir string
	From, To     int
	FailFast     bool
}

// Pipeline runs the complete flow for one tafsir: download the export,
// dump the ayah mapping, publish the surah range to the whole-document
// backend.
type Pipeline struct {
	downloader driven.SourceDownloader
	openStore  StoreOpener
	corpus     driven.CorpusStore
	cfg        PipelineConfig
}

// NewPipeline creates a full pipeline runner.
func NewPipeline(downloader driven.SourceDownloader, openStore StoreOpener, corpus driven.CorpusStore, cfg PipelineConfig) *Pipeline {
	return &Pipeline{
		downloader: downloader,
		openStore:  openStore,
		corpus:     corpus,
		cfg:        cfg,
	}
}

// Run executes download, mapping and publish in order. A download
// failure aborts before any processing; publish failures follow the
// per-surah policy of the publisher.
func (p *Pipeline) Run(ctx context.Context) error {
	logger.Section("download")
	dbPath, err := p.downloader.Fetch(ctx, p.cfg.Tafsir)
	if err != nil {
		return fmt.Errorf("download %s: %w", p.cfg.Tafsir, err)
	}

	store, err := p.openStore(dbPath)
	if err != nil {
		return fmt.Errorf("open source %s: %w", dbPath, err)
	}
	defer store.Close()

	logger.Section("ayah mapping")
	if _, err := WriteAyahMapping(ctx, store, p.cfg.DownloadsDir, p.cfg.Tafsir); err != nil {
		return err
	}

	logger.Section("publish")
	publisher := NewPublisher(NewBuilder(store), p.corpus, p.cfg.CorpusKey, p.cfg.Tafsir, p.cfg.DownloadsDir)
	report, err := publisher.PublishSurahs(ctx, driving.PublishOptions{
		From:     p.cfg.From,
		To:       p.cfg.To,
		FailFast: p.cfg.FailFast,
	})
	if err != nil {
		return err
	}

	logger.Info("pipeline complete: %d published, %d skipped, %d failed",
		report.Published, report.Skipped, report.Failed)
	return nil
}
