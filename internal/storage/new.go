package storage

import (
	"github.com/quangdm-dev/meeting-flow/internal/config"
	"github.com/quangdm-dev/meeting-flow/internal/logger"
)

type implWriter struct {
	cfg    config.PathsConfig
	logger logger.Logger
}

func New(cfg config.PathsConfig, log logger.Logger) Writer {
	return &implWriter{cfg: cfg, logger: log}
}
