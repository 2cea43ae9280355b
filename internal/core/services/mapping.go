package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tarteel-labs/qul-indexer/internal/core/ports/driven"
	"github.com/tarteel-labs/qul-indexer/internal/logger"
)

// WriteAyahMapping dumps the source's ayah_key to group_ayah_key
// mapping as an indented JSON file next to the downloaded export.
// Returns the written path.
func WriteAyahMapping(ctx context.Context, store driven.TafsirStore, downloadsDir, tafsir string) (string, error) {
	mapping, err := store.AyahMapping(ctx)
	if err != nil {
		return "", fmt.Errorf("read ayah mapping: %w", err)
	}

	if err := os.MkdirAll(downloadsDir, 0o755); err != nil {
		return "", fmt.Errorf("create downloads dir: %w", err)
	}

	data, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal mapping: %w", err)
	}

	path := filepath.Join(downloadsDir, tafsir+"-ayah-mapping.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write mapping %s: %w", path, err)
	}

	logger.Info("ayah mapping for %s saved to %s (%d keys)", tafsir, path, len(mapping))
	return path, nil
}
