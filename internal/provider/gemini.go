package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/quangdm-dev/meeting-flow/internal/config"
	"github.com/quangdm-dev/meeting-flow/internal/logger"
)

type implGemini struct {
	cfg    config.ProviderConfig
	logger logger.Logger

	mu         sync.Mutex
	currentKey int
}

// NewGemini builds a Gemini backend. Multiple API keys rotate on
// rate-limit errors.
func NewGemini(cfg config.ProviderConfig, log logger.Logger) Provider {
	return &implGemini{cfg: cfg, logger: log}
}

func (g *implGemini) Name() string { return g.cfg.Name }

func (g *implGemini) Config() config.ProviderConfig { return g.cfg }

func (g *implGemini) IsAvailable(ctx context.Context) bool {
	return len(g.cfg.APIKeys) > 0
}

func (g *implGemini) SupportsFullTranscript(pctx Context) bool {
	return fitsContextWindow(g.cfg, pctx)
}

func (g *implGemini) Generate(ctx context.Context, prompt string, pctx Context) GenerationResult {
	start := time.Now()

	text, tokens, err := g.call(ctx, g.cfg.Model, prompt, nil)
	if err != nil {
		return GenerationResult{Provider: g.cfg.Name, Model: g.cfg.Model, Err: err}
	}

	return GenerationResult{
		Success:        true,
		Content:        text,
		Provider:       g.cfg.Name,
		Model:          g.cfg.Model,
		LatencySeconds: time.Since(start).Seconds(),
		TokensUsed:     tokens,
	}
}

func (g *implGemini) ExtractEntities(ctx context.Context, transcript string, pctx Context) (string, error) {
	prompt := fmt.Sprintf(entityPrompt, transcript)
	genCfg := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0)}

	text, _, err := g.call(ctx, g.chunkModel(), prompt, genCfg)
	return text, err
}

func (g *implGemini) chunkModel() string {
	if g.cfg.ChunkModel != "" {
		return g.cfg.ChunkModel
	}
	return g.cfg.Model
}

// call sends the prompt to Gemini and returns the response text and
// token usage. Rotates API keys on 429 / quota errors.
func (g *implGemini) call(ctx context.Context, model, prompt string, genCfg *genai.GenerateContentConfig) (string, int, error) {
	attempts := len(g.cfg.APIKeys)
	var lastErr error

	for range attempts {
		idx, key := g.activeKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), genCfg)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", idx+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", 0, fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text.WriteString(part.Text)
				}
			}
			tokens := 0
			if result.UsageMetadata != nil {
				tokens = int(result.UsageMetadata.TotalTokenCount)
			}
			return text.String(), tokens, nil
		}

		return "", 0, fmt.Errorf("empty response from gemini")
	}

	return "", 0, fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *implGemini) activeKey() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.cfg.APIKeys[g.currentKey]
}

func (g *implGemini) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.cfg.APIKeys)
}
