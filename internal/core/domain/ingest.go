package domain

// UploadTicket is the pre-signed upload handshake result: a URL to PUT
// raw bytes to, and the object key to reference in the ingest job.
type UploadTicket struct {
	UploadURL string
	ObjectKey string
}

// IngestItem references one uploaded object within an ingest job.
type IngestItem struct {
	ObjectKey string
	FileName  string
	Meta      FragmentMeta
}

// ChunkConfig is the fixed chunking configuration submitted with every
// ingest job. Constants, not computed.
type ChunkConfig struct {
	ChunkSize    int
	MaxChunkSize int
	ChunkOverlap int
}

// DefaultChunkConfig is the chunking used for tafsir section ingestion.
var DefaultChunkConfig = ChunkConfig{
	ChunkSize:    512,
	MaxChunkSize: 1024,
	ChunkOverlap: 50,
}

// IngestJob is one batch submission: all artifacts of one surah.
type IngestJob struct {
	Name       string
	ExternalID string
	Items      []IngestItem
	Chunk      ChunkConfig
}

// ChapterOutcome is the terminal state of one surah's ingest batch.
// Outcomes are independent per surah; none affects siblings.
type ChapterOutcome string

const (
	// OutcomeNoArtifacts: the surah directory held no text artifacts.
	OutcomeNoArtifacts ChapterOutcome = "no-artifacts"

	// OutcomeAbandoned: artifacts existed but zero uploads succeeded,
	// so no job was submitted.
	OutcomeAbandoned ChapterOutcome = "abandoned"

	// OutcomeJobCreated: an ingest job was submitted successfully.
	OutcomeJobCreated ChapterOutcome = "job-created"

	// OutcomeJobFailed: uploads succeeded but job submission failed.
	OutcomeJobFailed ChapterOutcome = "job-failed"
)

// ChapterReport aggregates one surah's ingest batch so callers and tests
// can assert on counts instead of log output.
type ChapterReport struct {
	Surah    int
	Uploaded int
	Skipped  int
	Failed   int
	JobID    string
	Outcome  ChapterOutcome
	Err      error
}

// PublishReport aggregates a whole-document publish run.
type PublishReport struct {
	Published int
	Skipped   int
	Failed    int
}
