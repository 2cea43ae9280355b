package services

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
)

func TestMaterialiseSurah(t *testing.T) {
	store := &fakeTafsirStore{sections: map[int][]domain.Section{
		2: {
			{
				AyahKey: "2:1", GroupAyahKey: "2:1", FromAyah: "2:1", ToAyah: "2:2",
				AyahKeys: []string{"2:1", "2:2"},
				Text:     "<h1>Heading</h1><p>First paragraph.</p>",
			},
			{
				AyahKey: "2:3", GroupAyahKey: "2:3", FromAyah: "2:3", ToAyah: "2:3",
				AyahKeys: []string{"2:3"},
				Text:     "<script>x</script>",
			},
		},
	}}

	dir := t.TempDir()
	m := NewMaterialiser(store, dir, "src")

	written, skipped, err := m.MaterialiseSurah(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 1, written)
	assert.Equal(t, 1, skipped)

	surahDir := filepath.Join(dir, "src", "sections", "surah-002")
	text, err := os.ReadFile(filepath.Join(surahDir, "section-2-1.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Heading\nFirst paragraph.", string(text))

	sidecar, err := os.ReadFile(filepath.Join(surahDir, "section-2-1.metadata.json"))
	require.NoError(t, err)

	var meta domain.FragmentMeta
	require.NoError(t, json.Unmarshal(sidecar, &meta))
	assert.Equal(t, "2:1", meta.GroupAyahKey)
	assert.Equal(t, 2001, meta.FromAyahInt)
	assert.Equal(t, 2002, meta.ToAyahInt)
}

func TestMaterialiseSurahNoSections(t *testing.T) {
	store := &fakeTafsirStore{sections: map[int][]domain.Section{}}
	dir := t.TempDir()
	m := NewMaterialiser(store, dir, "src")

	written, skipped, err := m.MaterialiseSurah(context.Background(), 50)
	require.NoError(t, err)
	assert.Zero(t, written)
	assert.Zero(t, skipped)

	// No directory is created for an empty surah.
	_, statErr := os.Stat(m.SurahDir(50))
	assert.True(t, os.IsNotExist(statErr))
}

func TestMaterialiseSurahsRange(t *testing.T) {
	store := &fakeTafsirStore{sections: map[int][]domain.Section{
		1: {{
			AyahKey: "1:1", GroupAyahKey: "1:1", FromAyah: "1:1", ToAyah: "1:1",
			AyahKeys: []string{"1:1"}, Text: "<p>one</p>",
		}},
		2: {{
			AyahKey: "2:1", GroupAyahKey: "2:1", FromAyah: "2:1", ToAyah: "2:1",
			AyahKeys: []string{"2:1"}, Text: "<p>two</p>",
		}},
	}}

	m := NewMaterialiser(store, t.TempDir(), "src")
	written, skipped, err := m.MaterialiseSurahs(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, written)
	assert.Zero(t, skipped)
}
