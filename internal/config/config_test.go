package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	return Config{
		Paths: PathsConfig{
			Input:     "data/input",
			Summaries: "data/summaries",
		},
		Providers: []ProviderConfig{
			{Name: "local", Type: "ollama", Model: "llama3.1:8b", Enabled: true},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing input path",
			mutate:  func(c *Config) { c.Paths.Input = "" },
			wantErr: true,
		},
		{
			name:    "missing summaries path",
			mutate:  func(c *Config) { c.Paths.Summaries = "" },
			wantErr: true,
		},
		{
			name:    "no providers",
			mutate:  func(c *Config) { c.Providers = nil },
			wantErr: true,
		},
		{
			name:    "unknown provider type",
			mutate:  func(c *Config) { c.Providers[0].Type = "bard" },
			wantErr: true,
		},
		{
			name:    "provider without name",
			mutate:  func(c *Config) { c.Providers[0].Name = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Chunking.MaxChunkSize != 2500 {
		t.Errorf("MaxChunkSize = %d, want 2500", cfg.Chunking.MaxChunkSize)
	}
	if cfg.Chunking.OverlapSize != 300 {
		t.Errorf("OverlapSize = %d, want 300", cfg.Chunking.OverlapSize)
	}
	if cfg.Classifier.ConfidenceThreshold != 0.15 {
		t.Errorf("ConfidenceThreshold = %v, want 0.15", cfg.Classifier.ConfidenceThreshold)
	}
	if cfg.Classifier.ScoreCeiling != 20.0 {
		t.Errorf("ScoreCeiling = %v, want 20.0", cfg.Classifier.ScoreCeiling)
	}
	if cfg.Watcher.StabilityChecks != 60 {
		t.Errorf("StabilityChecks = %d, want 60", cfg.Watcher.StabilityChecks)
	}

	p := cfg.Providers[0]
	if p.MaxContextTokens != 8192 {
		t.Errorf("ollama MaxContextTokens = %d, want 8192", p.MaxContextTokens)
	}
	if p.ContextReserve != 2000 {
		t.Errorf("ollama ContextReserve = %d, want 2000", p.ContextReserve)
	}
	if p.BaseURL != "http://localhost:11434" {
		t.Errorf("ollama BaseURL = %q", p.BaseURL)
	}
	if p.TimeoutSeconds != 120 {
		t.Errorf("TimeoutSeconds = %d, want 120", p.TimeoutSeconds)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
paths:
  input: data/input
  summaries: data/summaries
logging:
  level: debug
providers:
  - name: gemini
    type: gemini
    model: gemini-2.5-flash
    priority: 1
    cost_class: premium
    enabled: true
  - name: local
    type: ollama
    model: llama3.1:8b
    chunk_model: llama3.2:1b
    priority: 2
    cost_class: economy
    enabled: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MEETINGFLOW_GEMINI_API_KEYS", "key-a,key-b")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Providers) != 2 {
		t.Fatalf("providers = %d, want 2", len(cfg.Providers))
	}
	if got := cfg.Providers[0].APIKeys; len(got) != 2 || got[0] != "key-a" {
		t.Errorf("gemini APIKeys = %v, want [key-a key-b]", got)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestIsRoutineType(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		meetingType string
		want        bool
	}{
		{"standup", true},
		{"general_sync", true},
		{"strategy", false},
		{"technical", false},
	}

	for _, tt := range tests {
		if got := cfg.IsRoutineType(tt.meetingType); got != tt.want {
			t.Errorf("IsRoutineType(%q) = %v, want %v", tt.meetingType, got, tt.want)
		}
	}
}
