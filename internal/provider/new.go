package provider

import (
	"fmt"
	"sort"

	"github.com/quangdm-dev/meeting-flow/internal/config"
	"github.com/quangdm-dev/meeting-flow/internal/logger"
)

type implManager struct {
	providers    []Provider // ascending priority
	routineTypes []string
	logger       logger.Logger
}

// NewManager wraps the given backends. Providers are ordered by
// ascending priority; ties keep their input order.
func NewManager(providers []Provider, routineTypes []string, log logger.Logger) Manager {
	sorted := make([]Provider, len(providers))
	copy(sorted, providers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Config().Priority < sorted[j].Config().Priority
	})

	return &implManager{
		providers:    sorted,
		routineTypes: routineTypes,
		logger:       log,
	}
}

// FromConfig builds one backend per enabled provider entry.
func FromConfig(cfg *config.Config, log logger.Logger) (Manager, error) {
	var providers []Provider
	for _, pc := range cfg.Providers {
		if !pc.Enabled {
			continue
		}
		switch pc.Type {
		case "gemini":
			providers = append(providers, NewGemini(pc, log))
		case "openai":
			providers = append(providers, NewOpenAI(pc, log))
		case "ollama":
			providers = append(providers, NewOllama(pc, log))
		default:
			return nil, fmt.Errorf("provider %s: unsupported type %q", pc.Name, pc.Type)
		}
	}

	if len(providers) == 0 {
		return nil, ErrNoProvider
	}

	return NewManager(providers, cfg.Classifier.RoutineTypes, log), nil
}
