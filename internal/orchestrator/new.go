package orchestrator

import (
	"sync"

	"github.com/quangdm-dev/meeting-flow/internal/chunker"
	"github.com/quangdm-dev/meeting-flow/internal/classifier"
	"github.com/quangdm-dev/meeting-flow/internal/config"
	"github.com/quangdm-dev/meeting-flow/internal/logger"
	"github.com/quangdm-dev/meeting-flow/internal/provider"
	"github.com/quangdm-dev/meeting-flow/internal/quality"
	"github.com/quangdm-dev/meeting-flow/internal/storage"
	"github.com/quangdm-dev/meeting-flow/internal/transcript"
)

type implOrchestrator struct {
	cfg        *config.Config
	parser     transcript.Parser
	classifier classifier.Classifier
	prompts    classifier.PromptBuilder
	chunker    chunker.Chunker
	providers  provider.Manager
	assessor   quality.Assessor
	writer     storage.Writer
	logger     logger.Logger

	mu         sync.Mutex
	inProgress map[string]struct{}
}

func New(cfg *config.Config, providers provider.Manager, writer storage.Writer, log logger.Logger) Orchestrator {
	return &implOrchestrator{
		cfg:        cfg,
		parser:     transcript.New(log),
		classifier: classifier.New(cfg.Classifier, log),
		prompts:    classifier.NewPromptBuilder(),
		chunker:    chunker.New(cfg.Chunking.MaxChunkSize, cfg.Chunking.OverlapSize, log),
		providers:  providers,
		assessor:   quality.New(cfg.Quality, log),
		writer:     writer,
		logger:     log,
		inProgress: make(map[string]struct{}),
	}
}
