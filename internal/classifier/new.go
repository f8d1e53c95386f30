package classifier

import (
	"github.com/quangdm-dev/meeting-flow/internal/config"
	"github.com/quangdm-dev/meeting-flow/internal/logger"
)

type implClassifier struct {
	cfg      config.ClassifierConfig
	patterns map[MeetingType]typePatterns
	logger   logger.Logger
}

// New creates a new Classifier instance using the built-in pattern
// tables
func New(cfg config.ClassifierConfig, log logger.Logger) Classifier {
	return &implClassifier{
		cfg:      cfg,
		patterns: defaultPatterns,
		logger:   log,
	}
}
