package transcript

import "context"

// Transcript is the cleaned meeting text plus its on-disk provenance.
// Immutable once parsed.
type Transcript struct {
	Content    string
	SizeBytes  int64
	SourcePath string
}

// Metadata is extracted once per transcript and consumed read-only by
// classification and prompt building.
type Metadata struct {
	Title        string
	Date         string
	Duration     string
	Participants []string
	TimeOfDay    string
	DayOfWeek    string
	TeamHint     string
	FilePath     string
	FileSize     int64
}

// Parser reads a transcript file and extracts content and metadata
type Parser interface {
	Parse(ctx context.Context, filePath string) (Transcript, Metadata, error)
}
