package transcript

import (
	"github.com/quangdm-dev/meeting-flow/internal/logger"
)

type implParser struct {
	logger logger.Logger
}

// New creates a new Parser instance
func New(log logger.Logger) Parser {
	return &implParser{logger: log}
}
