// Package download fetches compressed Qul tafsir exports from the CDN
// and decompresses them into the local downloads directory.
package download

import (
	"compress/bzip2"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
	"github.com/tarteel-labs/qul-indexer/internal/core/ports/driven"
	"github.com/tarteel-labs/qul-indexer/internal/logger"
)

// Ensure Downloader implements the interface.
var _ driven.SourceDownloader = (*Downloader)(nil)

// DefaultExports maps tafsir names to their CDN export URLs.
var DefaultExports = map[string]string{
	"qurtubi":    "https://s3.us-east-1.wasabisys.com/static-cdn.tarteel.ai/qul-exports/tafsir/1722589836-w9ne3-ar-tafseer-al-qurtubi.db.bz2",
	"ibn-kathir": "https://s3.us-east-1.wasabisys.com/static-cdn.tarteel.ai/qul-exports/tafsir/1722592431-won0o-en-tafisr-ibn-kathir.db.bz2",
}

// DefaultTimeout bounds one export download. Exports run to hundreds
// of megabytes, so this is generous.
const DefaultTimeout = 15 * time.Minute

// Downloader fetches exports over HTTP. Exports already on disk are
// never re-fetched.
type Downloader struct {
	client       *http.Client
	downloadsDir string
	exports      map[string]string
}

// NewDownloader creates a downloader writing into downloadsDir. A nil
// exports map uses DefaultExports.
func NewDownloader(downloadsDir string, exports map[string]string) *Downloader {
	if exports == nil {
		exports = DefaultExports
	}
	return &Downloader{
		client:       &http.Client{Timeout: DefaultTimeout},
		downloadsDir: downloadsDir,
		exports:      exports,
	}
}

// Fetch ensures the named export exists locally and returns the path
// to the decompressed SQLite file.
func (d *Downloader) Fetch(ctx context.Context, name string) (string, error) {
	url, ok := d.exports[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownTafsir, name)
	}

	target := filepath.Join(d.downloadsDir, name+".sqlite")
	if _, err := os.Stat(target); err == nil {
		logger.Info("%s already downloaded, skipping", name)
		return target, nil
	}

	if err := os.MkdirAll(d.downloadsDir, 0o755); err != nil {
		return "", fmt.Errorf("create downloads dir: %w", err)
	}

	logger.Info("downloading %s from %s", name, url)
	if err := d.download(ctx, url, target); err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrSourceUnavailable, name, err)
	}

	logger.Info("%s saved to %s", name, target)
	return target, nil
}

// download streams the export through the decompressor matching the
// URL's extension into a temp file, then renames into place so a
// partial download never masquerades as a finished export.
func (d *Downloader) download(ctx context.Context, url, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("get export: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get export: status %d", resp.StatusCode)
	}

	reader, err := decompressor(url, resp.Body)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(d.downloadsDir, ".download-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close export: %w", err)
	}

	return os.Rename(tmp.Name(), target)
}

// decompressor picks a decompressing reader by URL extension. Unknown
// extensions pass through unchanged.
func decompressor(url string, body io.Reader) (io.Reader, error) {
	switch {
	case strings.HasSuffix(url, ".bz2"):
		return bzip2.NewReader(body), nil
	case strings.HasSuffix(url, ".xz"):
		reader, err := xz.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("open xz stream: %w", err)
		}
		return reader, nil
	default:
		return body, nil
	}
}
