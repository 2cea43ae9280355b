package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
	"github.com/tarteel-labs/qul-indexer/internal/core/ports/driven"
	"github.com/tarteel-labs/qul-indexer/internal/core/ports/driving"
	"github.com/tarteel-labs/qul-indexer/internal/logger"
)

// Ensure Ingestor implements the interface.
var _ driving.SectionIngestor = (*Ingestor)(nil)

// Ingestor uploads materialised artifacts and submits one ingest job
// per surah. It operates on whatever the materialiser already produced
// on disk, not on a requested range.
type Ingestor struct {
	store     driven.IngestStore
	outputDir string
	tafsir    string
	chunk     domain.ChunkConfig
}

// NewIngestor creates a per-section ingestor with the fixed chunking
// configuration.
func NewIngestor(store driven.IngestStore, outputDir, tafsir string) *Ingestor {
	return &Ingestor{
		store:     store,
		outputDir: outputDir,
		tafsir:    tafsir,
		chunk:     domain.DefaultChunkConfig,
	}
}

// IngestAll discovers surah directories under the output tree and
// ingests each as an independent batch. A batch outcome never affects
// sibling surahs.
func (ing *Ingestor) IngestAll(ctx context.Context) ([]domain.ChapterReport, error) {
	sectionsDir := filepath.Join(ing.outputDir, ing.tafsir, "sections")
	entries, err := os.ReadDir(sectionsDir)
	if err != nil {
		return nil, fmt.Errorf("read sections dir %s: %w", sectionsDir, err)
	}

	var reports []domain.ChapterReport
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "surah-") {
			continue
		}

		surah := surahFromDir(entry.Name())
		logger.Section(entry.Name())

		report := ing.ingestSurah(ctx, filepath.Join(sectionsDir, entry.Name()), surah)
		reports = append(reports, report)
	}

	return reports, nil
}

// ingestSurah runs one surah's batch: upload every artifact, then
// submit a single job referencing the successful uploads. Zero
// successful uploads abandon the batch.
func (ing *Ingestor) ingestSurah(ctx context.Context, dir string, surah int) domain.ChapterReport {
	report := domain.ChapterReport{Surah: surah}

	artifacts, err := loadArtifacts(dir)
	if err != nil {
		report.Outcome = domain.OutcomeAbandoned
		report.Err = err
		logger.Error("surah %d: %v", surah, err)
		return report
	}
	if len(artifacts) == 0 {
		report.Outcome = domain.OutcomeNoArtifacts
		logger.Info("surah %d: no artifacts on disk", surah)
		return report
	}

	var items []domain.IngestItem
	for _, art := range artifacts {
		if art.MetaPath == "" {
			logger.Warn("surah %d: %s has no metadata sidecar, skipping", surah, art.FileName)
			report.Skipped++
			continue
		}

		key, err := ing.uploadArtifact(ctx, art)
		if err != nil {
			logger.Warn("surah %d: upload of %s failed: %v", surah, art.FileName, err)
			report.Failed++
			continue
		}

		report.Uploaded++
		items = append(items, domain.IngestItem{
			ObjectKey: key,
			FileName:  art.FileName,
			Meta:      art.Meta,
		})
	}

	if len(items) == 0 {
		report.Outcome = domain.OutcomeAbandoned
		logger.Error("surah %d: no artifacts uploaded, abandoning batch", surah)
		return report
	}

	job := &domain.IngestJob{
		Name:       fmt.Sprintf("%s-surah-%03d", ing.tafsir, surah),
		ExternalID: uuid.New().String(),
		Items:      items,
		Chunk:      ing.chunk,
	}

	jobID, err := ing.store.CreateIngestJob(ctx, job)
	if err != nil {
		report.Outcome = domain.OutcomeJobFailed
		report.Err = err
		logger.Error("surah %d: ingest job failed: %v", surah, err)
		return report
	}

	report.Outcome = domain.OutcomeJobCreated
	report.JobID = jobID
	logger.Info("surah %d: ingest job %s created (%d items)", surah, jobID, len(items))
	return report
}

// uploadArtifact performs the pre-signed handshake and raw PUT for one
// artifact, returning the backend object key.
func (ing *Ingestor) uploadArtifact(ctx context.Context, art domain.SectionArtifact) (string, error) {
	data, err := os.ReadFile(art.Path)
	if err != nil {
		return "", fmt.Errorf("read artifact: %w", err)
	}

	ticket, err := ing.store.CreateUpload(ctx, art.FileName, "text/plain", int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}

	if err := ing.store.Upload(ctx, ticket.UploadURL, bytes.NewReader(data), int64(len(data)), "text/plain"); err != nil {
		return "", fmt.Errorf("put bytes: %w", err)
	}

	return ticket.ObjectKey, nil
}

// loadArtifacts scans a surah directory for text artifacts and their
// sidecars. Artifacts without a sidecar are returned with MetaPath
// empty so the caller can count them as skips.
func loadArtifacts(dir string) ([]domain.SectionArtifact, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read surah dir: %w", err)
	}

	var artifacts []domain.SectionArtifact
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".txt") {
			continue
		}

		art := domain.SectionArtifact{
			FileName: name,
			Path:     filepath.Join(dir, name),
		}

		metaPath := filepath.Join(dir, strings.TrimSuffix(name, ".txt")+".metadata.json")
		if data, err := os.ReadFile(metaPath); err == nil {
			if err := json.Unmarshal(data, &art.Meta); err != nil {
				return nil, fmt.Errorf("parse sidecar %s: %w", metaPath, err)
			}
			art.MetaPath = metaPath
		}

		artifacts = append(artifacts, art)
	}

	sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].FileName < artifacts[j].FileName })
	return artifacts, nil
}

// surahFromDir parses the surah number out of a "surah-NNN" directory
// name. Returns 0 for unexpected names.
func surahFromDir(name string) int {
	var surah int
	if _, err := fmt.Sscanf(name, "surah-%d", &surah); err != nil {
		return 0
	}
	return surah
}
