package domain

// Section is one commentary row from the tafsir source table.
// Rows sharing a GroupAyahKey belong to the same commentary passage.
// Sections are read-only; the source database is never written to.
type Section struct {
	// AyahKey is the single-verse anchor of the row ("<surah>:<ayah>").
	AyahKey string

	// GroupAyahKey identifies the commentary passage this row belongs to.
	// Used as the stable external id and filename basis.
	GroupAyahKey string

	// FromAyah and ToAyah bound the verse range the passage covers.
	FromAyah string
	ToAyah   string

	// AyahKeys enumerates every verse the passage covers.
	AyahKeys []string

	// Text is the HTML commentary body. May be empty for placeholder rows.
	Text string
}
