package quality

import (
	"github.com/quangdm-dev/meeting-flow/internal/config"
	"github.com/quangdm-dev/meeting-flow/internal/logger"
)

type implAssessor struct {
	cfg    config.QualityConfig
	logger logger.Logger
}

func New(cfg config.QualityConfig, log logger.Logger) Assessor {
	return &implAssessor{cfg: cfg, logger: log}
}
