// Package sqlite reads downloaded Qul tafsir exports. The export is an
// externally produced database and is opened strictly read-only.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
	"github.com/tarteel-labs/qul-indexer/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.TafsirStore = (*Store)(nil)

// Store reads commentary rows from one tafsir export file.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens a tafsir export read-only.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open tafsir export %s: %w", path, err)
	}

	// Fail now rather than on the first query if the file is absent
	// or not a database.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnavailable, path, err)
	}

	return &Store{db: db, path: path}, nil
}

// SectionsForSurah returns all rows whose ayah_key belongs to the
// surah, in source row order. NULL commentary bodies become empty
// strings so downstream extraction skips them uniformly.
func (s *Store) SectionsForSurah(ctx context.Context, surah int) ([]domain.Section, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ayah_key, group_ayah_key, from_ayah, to_ayah, ayah_keys, text
		 FROM tafsir WHERE ayah_key LIKE ?`,
		fmt.Sprintf("%d:%%", surah))
	if err != nil {
		return nil, fmt.Errorf("query surah %d: %w", surah, err)
	}
	defer rows.Close()

	var sections []domain.Section
	for rows.Next() {
		var sec domain.Section
		var ayahKeys, text sql.NullString
		if err := rows.Scan(&sec.AyahKey, &sec.GroupAyahKey, &sec.FromAyah, &sec.ToAyah, &ayahKeys, &text); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		sec.AyahKeys = splitAyahKeys(ayahKeys.String)
		sec.Text = text.String
		sections = append(sections, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return sections, nil
}

// AyahMapping returns the full ayah_key to group_ayah_key mapping.
func (s *Store) AyahMapping(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT ayah_key, group_ayah_key FROM tafsir`)
	if err != nil {
		return nil, fmt.Errorf("query mapping: %w", err)
	}
	defer rows.Close()

	mapping := make(map[string]string)
	for rows.Next() {
		var ayahKey, groupKey string
		if err := rows.Scan(&ayahKey, &groupKey); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		mapping[ayahKey] = groupKey
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return mapping, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// splitAyahKeys parses the comma-separated ayah_keys column.
func splitAyahKeys(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	keys := parts[:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			keys = append(keys, part)
		}
	}
	return keys
}
