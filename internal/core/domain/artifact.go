package domain

import "strings"

// SectionArtifact pairs a plain-text section file with its metadata
// sidecar on disk. Artifacts are caches: safe to delete and regenerate,
// re-running overwrites them by path.
type SectionArtifact struct {
	// FileName is the text file's base name, also used as the upload name.
	FileName string

	// Path and MetaPath locate the text file and its sidecar.
	Path     string
	MetaPath string

	// Meta is the sidecar content, identical to the fragment metadata.
	Meta FragmentMeta
}

// ArtifactBaseName derives the artifact base name for a section:
// "section-<sanitised-group-key>".
func ArtifactBaseName(groupAyahKey string) string {
	return "section-" + sanitizeKey(groupAyahKey)
}

// sanitizeKey makes a group key filesystem-safe. The keys are
// "<surah>:<ayah>" strings; anything outside [A-Za-z0-9_-] becomes '-'.
func sanitizeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
