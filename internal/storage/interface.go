package storage

import "context"

// Summary is everything the writer persists for one processed meeting.
type Summary struct {
	Title             string  `json:"title"`
	Date              string  `json:"date"`
	MeetingType       string  `json:"meeting_type"`
	Confidence        float64 `json:"classification_confidence"`
	Content           string  `json:"-"`
	Provider          string  `json:"provider"`
	Model             string  `json:"model"`
	QualityScore      float64 `json:"quality_score"`
	QualityConfidence string  `json:"quality_confidence"`
	RunID             string  `json:"run_id"`
	TwoPass           bool    `json:"two_pass"`
	Chunks            int     `json:"chunks"`
	ProcessingSeconds float64 `json:"processing_seconds"`
	SourcePath        string  `json:"source_path"`
}

// Writer persists summaries into the dated output tree and moves
// processed transcripts out of the watched directory.
type Writer interface {
	Save(ctx context.Context, s Summary) (string, error)
	Archive(ctx context.Context, filePath string) error
}
