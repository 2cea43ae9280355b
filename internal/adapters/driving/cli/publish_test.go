package cli

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// seedExport writes a one-surah tafsir export into dir.
func seedExport(t *testing.T, dir string) {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(dir, "src.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE tafsir (
		ayah_key TEXT, group_ayah_key TEXT, from_ayah TEXT, to_ayah TEXT,
		ayah_keys TEXT, text TEXT
	)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO tafsir VALUES
		('2:1', '2:1', '2:1', '2:1', '2:1', '<p>In the name of God.</p>')`)
	require.NoError(t, err)
}

func TestPublishCmd_Executes(t *testing.T) {
	dir := t.TempDir()
	seedExport(t, dir)

	corpus := &fakeCorpusStore{}
	corpusStore = corpus
	defer func() { corpusStore = nil }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{
		"publish", "src",
		"--from", "1", "--to", "3",
		"--corpus-key", "test-corpus",
		"--downloads-dir", dir,
	})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())

	require.Len(t, corpus.created, 1)
	assert.Equal(t, "src-002", corpus.created[0].ID)
	assert.Contains(t, buf.String(), "published: 1")
	assert.Contains(t, buf.String(), "skipped:   2")
}

func TestPublishCmd_MissingExport(t *testing.T) {
	corpusStore = &fakeCorpusStore{}
	defer func() { corpusStore = nil }()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{
		"publish", "src",
		"--corpus-key", "test-corpus",
		"--downloads-dir", filepath.Join(t.TempDir(), "nowhere"),
	})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	assert.Error(t, rootCmd.Execute())
}
