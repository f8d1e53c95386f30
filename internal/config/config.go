package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Paths      PathsConfig      `yaml:"paths"`
	Logging    LoggingConfig    `yaml:"logging"`
	Watcher    WatcherConfig    `yaml:"watcher"`
	Chunking   ChunkingConfig   `yaml:"chunking"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Quality    QualityConfig    `yaml:"quality"`
	Providers  []ProviderConfig `yaml:"providers"`
}

type PathsConfig struct {
	Input     string `yaml:"input"`
	Summaries string `yaml:"summaries"`
	Archived  string `yaml:"archived"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type WatcherConfig struct {
	TranscriptName  string `yaml:"transcript_name"`
	MinFileSize     int64  `yaml:"min_file_size"`
	StableSeconds   int    `yaml:"stable_seconds"`
	StabilityChecks int    `yaml:"stability_checks"`
	MaxConcurrent   int    `yaml:"max_concurrent"`
	ScanMaxAgeHours int    `yaml:"scan_max_age_hours"`
}

type ChunkingConfig struct {
	MaxChunkSize int `yaml:"max_chunk_size"`
	OverlapSize  int `yaml:"overlap_size"`
}

type ClassifierConfig struct {
	KeywordWeight       float64  `yaml:"keyword_weight"`
	PhraseWeight        float64  `yaml:"phrase_weight"`
	ScoreCeiling        float64  `yaml:"score_ceiling"`
	ConfidenceThreshold float64  `yaml:"confidence_threshold"`
	FallbackConfidence  float64  `yaml:"fallback_confidence"`
	RoutineTypes        []string `yaml:"routine_types"`
}

type QualityConfig struct {
	Weights           QualityWeights `yaml:"weights"`
	MinSummaryLength  int            `yaml:"min_summary_length"`
	MinTechnicalTerms int            `yaml:"min_technical_terms"`
	MinActionItems    int            `yaml:"min_action_items"`
	ExpectedTechTerms int            `yaml:"expected_technical_terms"`
	ExpectedActions   int            `yaml:"expected_action_items"`
}

type QualityWeights struct {
	TechnicalContent float64 `yaml:"technical_content"`
	ActionItems      float64 `yaml:"action_items"`
	BusinessContext  float64 `yaml:"business_context"`
	Clarity          float64 `yaml:"clarity"`
}

type ProviderConfig struct {
	Name             string   `yaml:"name"`
	Type             string   `yaml:"type"` // gemini, openai, ollama
	Model            string   `yaml:"model"`
	ChunkModel       string   `yaml:"chunk_model"`
	BaseURL          string   `yaml:"base_url"`
	APIKeys          []string `yaml:"api_keys"`
	Priority         int      `yaml:"priority"`
	CostClass        string   `yaml:"cost_class"` // premium, standard, economy
	MaxContextTokens int      `yaml:"max_context_tokens"`
	ContextReserve   int      `yaml:"context_reserve"`
	TimeoutSeconds   int      `yaml:"timeout_seconds"`
	Enabled          bool     `yaml:"enabled"`
}

// secrets are never stored in the YAML file; they overlay provider
// entries after parsing
type secrets struct {
	GeminiAPIKeys []string `envconfig:"GEMINI_API_KEYS"`
	OpenAIAPIKey  string   `envconfig:"OPENAI_API_KEY"`
}

// Load reads the YAML configuration, overlays API keys from the
// environment, and applies defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	var sec secrets
	if err := envconfig.Process("meetingflow", &sec); err != nil {
		return nil, fmt.Errorf("read env secrets: %w", err)
	}
	cfg.applySecrets(sec)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applySecrets(sec secrets) {
	for i := range c.Providers {
		if len(c.Providers[i].APIKeys) > 0 {
			continue
		}
		switch c.Providers[i].Type {
		case "gemini":
			c.Providers[i].APIKeys = sec.GeminiAPIKeys
		case "openai":
			if sec.OpenAIAPIKey != "" {
				c.Providers[i].APIKeys = []string{sec.OpenAIAPIKey}
			}
		}
	}
}

func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Summaries == "" {
		return fmt.Errorf("paths.summaries is required")
	}
	if len(c.Providers) == 0 {
		return fmt.Errorf("at least one provider is required")
	}
	for i, p := range c.Providers {
		if p.Name == "" {
			return fmt.Errorf("providers[%d].name is required", i)
		}
		switch p.Type {
		case "gemini", "openai", "ollama":
		default:
			return fmt.Errorf("providers[%d].type %q is not supported", i, p.Type)
		}
	}

	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Watcher.TranscriptName == "" {
		c.Watcher.TranscriptName = "meeting_saved_closed_caption.txt"
	}
	if c.Watcher.MinFileSize == 0 {
		c.Watcher.MinFileSize = 1024
	}
	if c.Watcher.StableSeconds == 0 {
		c.Watcher.StableSeconds = 2
	}
	if c.Watcher.StabilityChecks == 0 {
		c.Watcher.StabilityChecks = 60
	}
	if c.Watcher.MaxConcurrent == 0 {
		c.Watcher.MaxConcurrent = 2
	}
	if c.Watcher.ScanMaxAgeHours == 0 {
		c.Watcher.ScanMaxAgeHours = 24
	}
	if c.Chunking.MaxChunkSize == 0 {
		c.Chunking.MaxChunkSize = 2500
	}
	if c.Chunking.OverlapSize == 0 {
		c.Chunking.OverlapSize = 300
	}
	if c.Classifier.KeywordWeight == 0 {
		c.Classifier.KeywordWeight = 0.5
	}
	if c.Classifier.PhraseWeight == 0 {
		c.Classifier.PhraseWeight = 1.0
	}
	if c.Classifier.ScoreCeiling == 0 {
		c.Classifier.ScoreCeiling = 20.0
	}
	if c.Classifier.ConfidenceThreshold == 0 {
		c.Classifier.ConfidenceThreshold = 0.15
	}
	if c.Classifier.FallbackConfidence == 0 {
		c.Classifier.FallbackConfidence = 0.5
	}
	if len(c.Classifier.RoutineTypes) == 0 {
		c.Classifier.RoutineTypes = []string{"standup", "general_sync"}
	}
	if c.Quality.Weights == (QualityWeights{}) {
		c.Quality.Weights = QualityWeights{
			TechnicalContent: 0.3,
			ActionItems:      0.3,
			BusinessContext:  0.2,
			Clarity:          0.2,
		}
	}
	if c.Quality.MinSummaryLength == 0 {
		c.Quality.MinSummaryLength = 200
	}
	if c.Quality.MinTechnicalTerms == 0 {
		c.Quality.MinTechnicalTerms = 2
	}
	if c.Quality.MinActionItems == 0 {
		c.Quality.MinActionItems = 1
	}
	if c.Quality.ExpectedTechTerms == 0 {
		c.Quality.ExpectedTechTerms = 5
	}
	if c.Quality.ExpectedActions == 0 {
		c.Quality.ExpectedActions = 3
	}

	for i := range c.Providers {
		p := &c.Providers[i]
		if p.Priority == 0 {
			p.Priority = i + 1
		}
		if p.CostClass == "" {
			p.CostClass = "standard"
		}
		if p.TimeoutSeconds == 0 {
			p.TimeoutSeconds = 120
		}
		if p.MaxContextTokens == 0 {
			switch p.Type {
			case "ollama":
				p.MaxContextTokens = 8192
			default:
				p.MaxContextTokens = 200000
			}
		}
		if p.ContextReserve == 0 {
			switch p.Type {
			case "ollama":
				p.ContextReserve = 2000
			default:
				p.ContextReserve = 4000
			}
		}
		if p.BaseURL == "" && p.Type == "ollama" {
			p.BaseURL = "http://localhost:11434"
		}
	}

	return nil
}

// IsRoutineType reports whether the given meeting type participates in
// cost-optimized routing
func (c *Config) IsRoutineType(meetingType string) bool {
	mt := strings.ToLower(meetingType)
	for _, routine := range c.Classifier.RoutineTypes {
		if strings.Contains(mt, strings.ToLower(routine)) {
			return true
		}
	}
	return false
}
