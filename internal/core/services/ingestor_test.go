package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
)

// seedArtifact writes a text artifact and, optionally, its sidecar.
func seedArtifact(t *testing.T, dir, base string, withSidecar bool) {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, base+".txt"), []byte("section text"), 0o644))
	if withSidecar {
		sidecar := `{"ayah_key":"2:1","group_ayah_key":"2:1","from_ayah":"2:1","to_ayah":"2:1","from_ayah_int":2001,"to_ayah_int":2001,"ayah_keys":["2:1"]}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, base+".metadata.json"), []byte(sidecar), 0o644))
	}
}

func TestIngestAll(t *testing.T) {
	outputDir := t.TempDir()
	surahDir := filepath.Join(outputDir, "src", "sections", "surah-002")
	seedArtifact(t, surahDir, "section-2-1", true)
	seedArtifact(t, surahDir, "section-2-5", true)

	store := &fakeIngestStore{}
	reports, err := NewIngestor(store, outputDir, "src").IngestAll(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)

	report := reports[0]
	assert.Equal(t, 2, report.Surah)
	assert.Equal(t, 2, report.Uploaded)
	assert.Equal(t, domain.OutcomeJobCreated, report.Outcome)
	assert.Equal(t, "job-1", report.JobID)

	require.Len(t, store.jobs, 1)
	job := store.jobs[0]
	assert.Equal(t, "src-surah-002", job.Name)
	assert.NotEmpty(t, job.ExternalID)
	assert.Equal(t, domain.DefaultChunkConfig, job.Chunk)
	require.Len(t, job.Items, 2)
	assert.Equal(t, "obj-section-2-1.txt", job.Items[0].ObjectKey)
}

func TestIngestAllSkipsArtifactWithoutSidecar(t *testing.T) {
	outputDir := t.TempDir()
	surahDir := filepath.Join(outputDir, "src", "sections", "surah-003")
	seedArtifact(t, surahDir, "section-3-1", true)
	seedArtifact(t, surahDir, "section-3-9", false)

	store := &fakeIngestStore{}
	reports, err := NewIngestor(store, outputDir, "src").IngestAll(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)

	assert.Equal(t, 1, reports[0].Uploaded)
	assert.Equal(t, 1, reports[0].Skipped)
	assert.Equal(t, domain.OutcomeJobCreated, reports[0].Outcome)
	require.Len(t, store.jobs, 1)
	assert.Len(t, store.jobs[0].Items, 1)
}

func TestIngestAllAbandonsSurahWithNoUploads(t *testing.T) {
	outputDir := t.TempDir()
	surahDir := filepath.Join(outputDir, "src", "sections", "surah-004")
	seedArtifact(t, surahDir, "section-4-1", true)

	store := &fakeIngestStore{uploadErrFor: map[string]error{
		"section-4-1.txt": errors.New("upload rejected"),
	}}
	reports, err := NewIngestor(store, outputDir, "src").IngestAll(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)

	assert.Equal(t, domain.OutcomeAbandoned, reports[0].Outcome)
	assert.Equal(t, 1, reports[0].Failed)
	assert.Empty(t, store.jobs)
}

func TestIngestAllJobFailureDoesNotStopSiblings(t *testing.T) {
	outputDir := t.TempDir()
	seedArtifact(t, filepath.Join(outputDir, "src", "sections", "surah-001"), "section-1-1", true)
	seedArtifact(t, filepath.Join(outputDir, "src", "sections", "surah-002"), "section-2-1", true)

	store := &fakeIngestStore{jobErr: errors.New("job rejected")}
	reports, err := NewIngestor(store, outputDir, "src").IngestAll(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 2)

	for _, report := range reports {
		assert.Equal(t, domain.OutcomeJobFailed, report.Outcome)
		assert.Error(t, report.Err)
	}
}

func TestIngestAllEmptySurahDir(t *testing.T) {
	outputDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(outputDir, "src", "sections", "surah-009"), 0o755))

	store := &fakeIngestStore{}
	reports, err := NewIngestor(store, outputDir, "src").IngestAll(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, domain.OutcomeNoArtifacts, reports[0].Outcome)
	assert.Empty(t, store.jobs)
}
