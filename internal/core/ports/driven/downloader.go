package driven

import "context"

// SourceDownloader fetches and decompresses a tafsir export by name.
type SourceDownloader interface {
	// Fetch ensures the named export exists locally and returns the
	// path to the decompressed SQLite file. Already-downloaded exports
	// are returned as-is. Failures wrap domain.ErrSourceUnavailable.
	Fetch(ctx context.Context, name string) (string, error)
}
