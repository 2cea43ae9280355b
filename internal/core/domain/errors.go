package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidVerseKey indicates a verse key that is not "<surah>:<ayah>".
	ErrInvalidVerseKey = errors.New("invalid verse key")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownTafsir indicates a tafsir name with no registered export URL.
	ErrUnknownTafsir = errors.New("unknown tafsir")

	// ErrSourceUnavailable indicates the tafsir export could not be
	// downloaded, decompressed or opened. Fatal before any processing.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrBackendUnavailable indicates a publishing backend is not
	// configured. Local-only commands never return this.
	ErrBackendUnavailable = errors.New("backend not configured")
)
