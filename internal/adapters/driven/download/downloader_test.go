package download

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
)

// xzCompress compresses data for download fixtures. The bzip2 package
// in the standard library only decompresses, so fixtures use xz.
func xzCompress(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestFetchDownloadsAndDecompresses(t *testing.T) {
	payload := []byte("sqlite export bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(xzCompress(t, payload))
	}))
	defer srv.Close()

	dir := t.TempDir()
	d := NewDownloader(dir, map[string]string{"qurtubi": srv.URL + "/export.db.xz"})

	path, err := d.Fetch(context.Background(), "qurtubi")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "qurtubi.sqlite"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestFetchSkipsExistingExport(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.Write(xzCompress(t, []byte("export")))
	}))
	defer srv.Close()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "qurtubi.sqlite"), []byte("already here"), 0o644))

	d := NewDownloader(dir, map[string]string{"qurtubi": srv.URL + "/export.db.xz"})
	path, err := d.Fetch(context.Background(), "qurtubi")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "already here", string(data))
	assert.Zero(t, hits)
}

func TestFetchUnknownTafsir(t *testing.T) {
	d := NewDownloader(t.TempDir(), map[string]string{})

	_, err := d.Fetch(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownTafsir)
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	dir := t.TempDir()
	d := NewDownloader(dir, map[string]string{"qurtubi": srv.URL + "/export.db.bz2"})

	_, err := d.Fetch(context.Background(), "qurtubi")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)

	// No partial file left behind.
	_, statErr := os.Stat(filepath.Join(dir, "qurtubi.sqlite"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDefaultExportsKnown(t *testing.T) {
	assert.Contains(t, DefaultExports, "qurtubi")
	assert.Contains(t, DefaultExports, "ibn-kathir")
}
