package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestCmd_Executes(t *testing.T) {
	dir := t.TempDir()
	surahDir := filepath.Join(dir, "src", "sections", "surah-002")
	require.NoError(t, os.MkdirAll(surahDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(surahDir, "section-2-1.txt"), []byte("commentary"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(surahDir, "section-2-1.metadata.json"),
		[]byte(`{"ayah_key":"2:1","group_ayah_key":"2:1"}`), 0o644))

	store := &fakeIngestStore{}
	ingestStore = store
	defer func() { ingestStore = nil }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", "src", "--output-dir", dir})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, buf.String(), "surah 002: job-created")
	assert.Contains(t, buf.String(), "job job-1")
}

func TestIngestCmd_MissingOutputDir(t *testing.T) {
	ingestStore = &fakeIngestStore{}
	defer func() { ingestStore = nil }()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"ingest", "src", "--output-dir", filepath.Join(t.TempDir(), "missing")})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	assert.Error(t, rootCmd.Execute())
}
