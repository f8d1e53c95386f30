package chunker

import (
	"github.com/quangdm-dev/meeting-flow/internal/logger"
)

type implChunker struct {
	maxChunkSize int
	overlapSize  int
	logger       logger.Logger
}

// New creates a Chunker bounded by maxChunkSize with overlapSize
// characters of raw overlap threaded between consecutive chunks
func New(maxChunkSize, overlapSize int, log logger.Logger) Chunker {
	if maxChunkSize <= 0 {
		maxChunkSize = 2500
	}
	if overlapSize < 0 {
		overlapSize = 0
	}
	return &implChunker{
		maxChunkSize: maxChunkSize,
		overlapSize:  overlapSize,
		logger:       log,
	}
}
