package orchestrator

import (
	"context"
	"errors"

	"github.com/quangdm-dev/meeting-flow/internal/classifier"
)

// ErrAlreadyProcessing guards against the same transcript entering the
// pipeline twice, e.g. when the watcher and the startup scan race.
var ErrAlreadyProcessing = errors.New("transcript is already being processed")

// Result is the full record of one pipeline run.
type Result struct {
	RunID             string
	FilePath          string
	SummaryPath       string
	MeetingType       classifier.MeetingType
	Confidence        float64
	Provider          string
	Model             string
	QualityScore      float64
	QualityConfidence string
	Issues            []string
	Recommendations   []string
	Chunks            int
	TwoPass           bool
	IntelligenceBoost int
	ProcessingSeconds float64
}

// Orchestrator runs a transcript through the whole pipeline: parse,
// classify, chunk when needed, generate, assess, persist.
type Orchestrator interface {
	Process(ctx context.Context, filePath string) (Result, error)
}
