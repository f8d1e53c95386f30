package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/quangdm-dev/meeting-flow/internal/config"
)

// entityPassTimeout bounds the first pass of the two-pass protocol so
// a slow extraction cannot eat the whole generation budget.
const entityPassTimeout = 30 * time.Second

const groundingBlock = `IMPORTANT CONTEXT - Key entities identified in this meeting:
%s

Use these exact names consistently throughout the summary.

`

const entityPrompt = `Extract the key entities from this meeting transcript:
- People mentioned (names and roles)
- Systems, services, and tools discussed
- Projects and initiatives
- Dates and deadlines

Return a concise bullet list only, no commentary.

Transcript:
---
%s
---`

// fitsContextWindow reports whether the estimated transcript tokens
// fit inside the backend's window after reserving room for the prompt
// and the response.
func fitsContextWindow(cfg config.ProviderConfig, pctx Context) bool {
	return pctx.EstimatedTokens <= cfg.MaxContextTokens-cfg.ContextReserve
}

// SelectBest returns the first available backend in routing order.
// Routine meeting types walk the list cheapest-first; everything else
// walks it by ascending priority.
func (m *implManager) SelectBest(ctx context.Context, pctx Context) (Provider, error) {
	for _, p := range m.ordered(pctx.MeetingType) {
		if !p.Config().Enabled {
			continue
		}
		if !p.IsAvailable(ctx) {
			m.logger.Debug(ctx, "Provider %s unavailable, skipping", p.Name())
			continue
		}
		return p, nil
	}
	return nil, ErrNoProvider
}

// SelectCheapest returns the lowest-priority available backend. Used
// for processing individual chunks, where per-call cost dominates.
func (m *implManager) SelectCheapest(ctx context.Context) (Provider, error) {
	for i := len(m.providers) - 1; i >= 0; i-- {
		p := m.providers[i]
		if !p.Config().Enabled || !p.IsAvailable(ctx) {
			continue
		}
		return p, nil
	}
	return nil, ErrNoProvider
}

// ProcessWithFallback tries each backend in routing order until one
// succeeds. A backend whose context window cannot hold the transcript
// runs the two-pass protocol instead of being skipped.
func (m *implManager) ProcessWithFallback(ctx context.Context, prompt, transcript string, pctx Context) GenerationResult {
	var attempts []string

	for _, p := range m.ordered(pctx.MeetingType) {
		if !p.Config().Enabled {
			continue
		}
		if !p.IsAvailable(ctx) {
			m.logger.Debug(ctx, "Provider %s unavailable, skipping", p.Name())
			continue
		}

		result := m.attempt(ctx, p, prompt, transcript, pctx)
		if result.Success {
			result.Attempts = attempts
			m.logger.Info(ctx, "Summary generated by %s/%s in %.1fs (%d tokens)",
				result.Provider, result.Model, result.LatencySeconds, result.TokensUsed)
			return result
		}

		m.logger.Warn(ctx, "Provider %s failed: %v, trying next", p.Name(), result.Err)
		attempts = append(attempts, fmt.Sprintf("%s: %v", p.Name(), result.Err))
	}

	err := error(ErrAllProvidersFailed)
	if len(attempts) > 0 {
		err = fmt.Errorf("%w: %s", ErrAllProvidersFailed, strings.Join(attempts, "; "))
	}
	return GenerationResult{Success: false, Attempts: attempts, Err: err}
}

func (m *implManager) attempt(ctx context.Context, p Provider, prompt, transcript string, pctx Context) GenerationResult {
	timeout := time.Duration(p.Config().TimeoutSeconds) * time.Second
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if p.SupportsFullTranscript(pctx) {
		return p.Generate(attemptCtx, prompt, pctx)
	}

	m.logger.Info(ctx, "Transcript exceeds %s context window (%d estimated tokens), using two-pass protocol",
		p.Name(), pctx.EstimatedTokens)

	entityCtx, entityCancel := context.WithTimeout(ctx, entityPassTimeout)
	entities, err := p.ExtractEntities(entityCtx, transcript, pctx)
	entityCancel()
	if err != nil {
		// A pass-1 failure fails the whole attempt so fallback moves
		// to the next backend
		return GenerationResult{
			Provider: p.Name(),
			Model:    p.Config().Model,
			TwoPass:  true,
			Err:      fmt.Errorf("%w: %v", ErrEntityPass, err),
		}
	}

	grounded := prompt
	if entities != "" {
		grounded = fmt.Sprintf(groundingBlock, entities) + prompt
	}

	result := p.Generate(attemptCtx, grounded, pctx)
	result.TwoPass = true
	return result
}

// ordered returns the fallback walk order for the given meeting type.
// Routine types reverse the priority list so cheap backends are tried
// first.
func (m *implManager) ordered(meetingType string) []Provider {
	if !m.isRoutine(meetingType) {
		return m.providers
	}

	reversed := make([]Provider, len(m.providers))
	for i, p := range m.providers {
		reversed[len(m.providers)-1-i] = p
	}
	return reversed
}

func (m *implManager) isRoutine(meetingType string) bool {
	lower := strings.ToLower(meetingType)
	for _, routine := range m.routineTypes {
		if strings.Contains(lower, routine) {
			return true
		}
	}
	return false
}
