package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/quangdm-dev/meeting-flow/internal/config"
	"github.com/quangdm-dev/meeting-flow/internal/logger"
)

type implOllama struct {
	cfg    config.ProviderConfig
	client *http.Client
	logger logger.Logger
}

// NewOllama builds a backend for a local Ollama server.
func NewOllama(cfg config.ProviderConfig, log logger.Logger) Provider {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	return &implOllama{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: log,
	}
}

type ollamaRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options *ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	TopK        int     `json:"top_k,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
}

type ollamaResponse struct {
	Response        string `json:"response"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
}

func (o *implOllama) Name() string { return o.cfg.Name }

func (o *implOllama) Config() config.ProviderConfig { return o.cfg }

// IsAvailable probes the tags endpoint, which answers quickly when the
// server is up.
func (o *implOllama) IsAvailable(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, o.cfg.BaseURL+"/api/tags", nil)
	if err != nil {
		return false
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

func (o *implOllama) SupportsFullTranscript(pctx Context) bool {
	return fitsContextWindow(o.cfg, pctx)
}

func (o *implOllama) Generate(ctx context.Context, prompt string, pctx Context) GenerationResult {
	start := time.Now()

	content, tokens, err := o.generate(ctx, o.cfg.Model, prompt, &ollamaOptions{
		Temperature: 0.3,
		TopK:        40,
		TopP:        0.9,
	})
	if err != nil {
		return GenerationResult{Provider: o.cfg.Name, Model: o.cfg.Model, Err: err}
	}

	return GenerationResult{
		Success:        true,
		Content:        content,
		Provider:       o.cfg.Name,
		Model:          o.cfg.Model,
		LatencySeconds: time.Since(start).Seconds(),
		TokensUsed:     tokens,
	}
}

func (o *implOllama) ExtractEntities(ctx context.Context, transcript string, pctx Context) (string, error) {
	model := o.cfg.ChunkModel
	if model == "" {
		model = o.cfg.Model
	}

	content, _, err := o.generate(ctx, model, fmt.Sprintf(entityPrompt, transcript), &ollamaOptions{Temperature: 0})
	return content, err
}

func (o *implOllama) generate(ctx context.Context, model, prompt string, opts *ollamaOptions) (string, int, error) {
	body, err := json.Marshal(ollamaRequest{
		Model:   model,
		Prompt:  prompt,
		Stream:  false,
		Options: opts,
	})
	if err != nil {
		return "", 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.cfg.BaseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", 0, fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var or ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return "", 0, fmt.Errorf("decode response: %w", err)
	}
	if or.Response == "" {
		return "", 0, fmt.Errorf("empty response from ollama")
	}

	return or.Response, or.PromptEvalCount + or.EvalCount, nil
}
