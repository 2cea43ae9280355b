package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarteel-labs/qul-indexer/internal/core/domain"
)

func TestFragmentsForSurah(t *testing.T) {
	store := &fakeTafsirStore{sections: map[int][]domain.Section{
		2: {
			{
				AyahKey:      "2:1",
				GroupAyahKey: "2:1",
				FromAyah:     "2:1",
				ToAyah:       "2:5",
				AyahKeys:     []string{"2:1", "2:2", "2:3", "2:4", "2:5"},
				Text:         "<h1>Title</h1><p>Body text.</p>",
			},
			{
				AyahKey:      "2:6",
				GroupAyahKey: "2:6",
				FromAyah:     "2:6",
				ToAyah:       "2:6",
				AyahKeys:     []string{"2:6"},
				Text:         "",
			},
		},
	}}

	fragments, err := NewBuilder(store).FragmentsForSurah(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, fragments, 2)

	assert.Equal(t, "Title", fragments[0].Text)
	assert.Equal(t, "Body text.", fragments[1].Text)
	assert.Equal(t, fragments[0].Meta, fragments[1].Meta)
	assert.Equal(t, 2001, fragments[0].Meta.FromAyahInt)
	assert.Equal(t, 2005, fragments[0].Meta.ToAyahInt)
}

func TestFragmentsForSurahSkipsMalformedKeys(t *testing.T) {
	store := &fakeTafsirStore{sections: map[int][]domain.Section{
		3: {
			{AyahKey: "3:1", FromAyah: "not-a-key", ToAyah: "3:1", Text: "<p>dropped</p>"},
			{AyahKey: "3:2", GroupAyahKey: "3:2", FromAyah: "3:2", ToAyah: "3:2", Text: "<p>kept</p>"},
		},
	}}

	fragments, err := NewBuilder(store).FragmentsForSurah(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, fragments, 1)
	assert.Equal(t, "kept", fragments[0].Text)
}

func TestFragmentsForSurahEmpty(t *testing.T) {
	store := &fakeTafsirStore{sections: map[int][]domain.Section{}}

	fragments, err := NewBuilder(store).FragmentsForSurah(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, fragments)
}
