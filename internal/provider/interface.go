package provider

import (
	"context"
	"errors"

	"github.com/quangdm-dev/meeting-flow/internal/config"
)

// Context carries per-meeting facts a backend may use to shape its
// request or to decide whether the transcript fits its context window.
type Context struct {
	MeetingTitle    string
	MeetingDate     string
	Participants    []string
	MeetingType     string
	FileSize        int64
	EstimatedTokens int
}

// GenerationResult is the outcome of one generation attempt. Err is
// set when Success is false; a failed attempt from one backend does
// not stop the manager from trying the next one.
type GenerationResult struct {
	Success        bool
	Content        string
	Provider       string
	Model          string
	LatencySeconds float64
	TokensUsed     int
	TwoPass        bool
	Attempts       []string // failed attempts before this result, "name: error"
	Err            error
}

var (
	ErrNoProvider         = errors.New("no provider available")
	ErrAllProvidersFailed = errors.New("all providers failed")

	// ErrEntityPass marks a failure in the first pass of the two-pass
	// protocol, as opposed to the summary pass itself.
	ErrEntityPass = errors.New("entity extraction pass failed")
)

// Provider is one summarization backend.
type Provider interface {
	Name() string
	Config() config.ProviderConfig
	IsAvailable(ctx context.Context) bool
	SupportsFullTranscript(pctx Context) bool
	Generate(ctx context.Context, prompt string, pctx Context) GenerationResult
	ExtractEntities(ctx context.Context, transcript string, pctx Context) (string, error)
}

// Manager routes work across the configured backends.
type Manager interface {
	SelectBest(ctx context.Context, pctx Context) (Provider, error)
	SelectCheapest(ctx context.Context) (Provider, error)
	ProcessWithFallback(ctx context.Context, prompt, transcript string, pctx Context) GenerationResult
}
