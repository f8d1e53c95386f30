package provider

import (
	"context"
	"fmt"
	"math"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/quangdm-dev/meeting-flow/internal/config"
	"github.com/quangdm-dev/meeting-flow/internal/logger"
)

const openaiSystemMessage = "You are an expert meeting analyst. Produce clear, well-structured markdown summaries."

type implOpenAI struct {
	cfg    config.ProviderConfig
	client *openai.Client
	logger logger.Logger
}

// NewOpenAI builds an OpenAI-compatible backend. BaseURL overrides the
// default endpoint for compatible gateways.
func NewOpenAI(cfg config.ProviderConfig, log logger.Logger) Provider {
	var client *openai.Client
	if len(cfg.APIKeys) > 0 {
		clientCfg := openai.DefaultConfig(cfg.APIKeys[0])
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		client = openai.NewClientWithConfig(clientCfg)
	}

	return &implOpenAI{cfg: cfg, client: client, logger: log}
}

func (o *implOpenAI) Name() string { return o.cfg.Name }

func (o *implOpenAI) Config() config.ProviderConfig { return o.cfg }

func (o *implOpenAI) IsAvailable(ctx context.Context) bool {
	return o.client != nil
}

func (o *implOpenAI) SupportsFullTranscript(pctx Context) bool {
	return fitsContextWindow(o.cfg, pctx)
}

func (o *implOpenAI) Generate(ctx context.Context, prompt string, pctx Context) GenerationResult {
	start := time.Now()

	content, tokens, err := o.complete(ctx, o.cfg.Model, prompt, 0.3)
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

func (o *implOpenAI) ExtractEntities(ctx context.Context, transcript string, pctx Context) (string, error) {
	model := o.cfg.ChunkModel
	if model == "" {
		model = o.cfg.Model
	}

	// omitempty drops a literal 0 temperature, so the smallest
	// positive float stands in for it
	content, _, err := o.complete(ctx, model, fmt.Sprintf(entityPrompt, transcript), math.SmallestNonzeroFloat32)
	return content, err
}

func (o *implOpenAI) complete(ctx context.Context, model, prompt string, temperature float32) (string, int, error) {
	if o.client == nil {
		return "", 0, fmt.Errorf("openai client not configured")
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openaiSystemMessage},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", 0, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", 0, fmt.Errorf("empty response from openai")
	}

	return resp.Choices[0].Message.Content, resp.Usage.TotalTokens, nil
}
