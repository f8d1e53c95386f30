package chunker

import "github.com/quangdm-dev/meeting-flow/internal/transcript"

// Chunk is a bounded, context-annotated slice of an oversized
// transcript. Ordinals are contiguous 1..TotalChunks; the first
// chunk's CarriedContext is empty.
type Chunk struct {
	Ordinal        int
	TotalChunks    int
	Content        string
	OverlapText    string
	CarriedContext string
	KeyEntities    []string
	Decisions      []string
	Actions        []string
	TopicSummary   string
	Info           string
}

// Chunker splits oversized transcripts into ordered, overlapping,
// context-threaded chunks. It is a pure text transform with no failure
// modes.
type Chunker interface {
	ShouldChunk(content string) bool
	Chunk(content string, meta transcript.Metadata) []Chunk
}
