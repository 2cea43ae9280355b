package domain

import "fmt"

// FragmentMeta is the metadata attached to every published fragment.
// Field names match the filters already in use by downstream consumers
// (part.from_ayah_int / part.to_ayah_int range queries).
type FragmentMeta struct {
	AyahKey      string `json:"ayah_key"`
	GroupAyahKey string `json:"group_ayah_key"`
	FromAyah     string `json:"from_ayah"`
	ToAyah       string `json:"to_ayah"`
	FromAyahInt  int    `json:"from_ayah_int"`
	ToAyahInt    int    `json:"to_ayah_int"`
	AyahKeys     string `json:"ayah_keys"`
}

// Fragment is one plain-text unit extracted from a section body.
// A section whose body splits into several elements yields several
// fragments sharing the same metadata.
type Fragment struct {
	Meta FragmentMeta `json:"metadata"`
	Text string       `json:"text"`
}

// DocumentMeta is the document-level metadata of a DocumentUnit.
type DocumentMeta struct {
	Tafsir string `json:"tafsir"`
	Surah  string `json:"surah"`
}

// DocumentUnit is the whole-document payload for one surah: every
// fragment of every commentary section in the surah, in source order.
// Built fresh per run and published with full-overwrite semantics.
type DocumentUnit struct {
	Type     string       `json:"type"`
	ID       string       `json:"id"`
	Metadata DocumentMeta `json:"metadata"`
	Parts    []Fragment   `json:"document_parts"`
}

// DocumentID returns the backend document id for a surah: "<tafsir>-<NNN>".
func DocumentID(tafsir string, surah int) string {
	return fmt.Sprintf("%s-%03d", tafsir, surah)
}

// NewDocumentUnit assembles the whole-document payload for one surah.
func NewDocumentUnit(tafsir string, surah int, parts []Fragment) *DocumentUnit {
	return &DocumentUnit{
		Type:     "core",
		ID:       DocumentID(tafsir, surah),
		Metadata: DocumentMeta{Tafsir: tafsir, Surah: fmt.Sprintf("%03d", surah)},
		Parts:    parts,
	}
}

// QueryResult is one ranked hit from a verification query.
type QueryResult struct {
	DocumentID string
	Text       string
	Score      float64
	Metadata   map[string]any
}
