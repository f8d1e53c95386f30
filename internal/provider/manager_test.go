package provider

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/quangdm-dev/meeting-flow/internal/config"
	"github.com/quangdm-dev/meeting-flow/internal/logger"
)

type stubProvider struct {
	cfg        config.ProviderConfig
	available  bool
	fits       bool
	content    string
	err        error
	entities   string
	entityErr  error
	lastPrompt string
	calls      int
}

func (s *stubProvider) Name() string { return s.cfg.Name }

func (s *stubProvider) Config() config.ProviderConfig { return s.cfg }

func (s *stubProvider) IsAvailable(ctx context.Context) bool { return s.available }

func (s *stubProvider) SupportsFullTranscript(pctx Context) bool { return s.fits }

func (s *stubProvider) Generate(ctx context.Context, prompt string, pctx Context) GenerationResult {
	s.calls++
	s.lastPrompt = prompt
	if s.err != nil {
		return GenerationResult{Provider: s.cfg.Name, Model: s.cfg.Model, Err: s.err}
	}
	return GenerationResult{
		Success:  true,
		Content:  s.content,
		Provider: s.cfg.Name,
		Model:    s.cfg.Model,
	}
}

func (s *stubProvider) ExtractEntities(ctx context.Context, transcript string, pctx Context) (string, error) {
	return s.entities, s.entityErr
}

func newStub(name string, priority int, available bool) *stubProvider {
	return &stubProvider{
		cfg: config.ProviderConfig{
			Name:           name,
			Model:          "test-model",
			Priority:       priority,
			TimeoutSeconds: 5,
			Enabled:        true,
		},
		available: available,
		fits:      true,
		content:   "summary from " + name,
	}
}

func testManager(routineTypes []string, providers ...Provider) Manager {
	return NewManager(providers, routineTypes, logger.New("error"))
}

func TestProcessWithFallbackUsesFirstSuccess(t *testing.T) {
	failing := newStub("primary", 1, true)
	failing.err = errors.New("boom")
	alsoFailing := newStub("secondary", 2, true)
	alsoFailing.err = errors.New("boom again")
	working := newStub("tertiary", 3, true)

	m := testManager(nil, failing, alsoFailing, working)
	result := m.ProcessWithFallback(context.Background(), "prompt", "transcript", Context{MeetingType: "technical"})

	if !result.Success {
		t.Fatalf("expected success, got error: %v", result.Err)
	}
	if result.Provider != "tertiary" {
		t.Errorf("expected tertiary to produce the summary, got %q", result.Provider)
	}
	if failing.calls != 1 || alsoFailing.calls != 1 {
		t.Error("expected both failing providers to have been tried")
	}
	if len(result.Attempts) != 2 {
		t.Fatalf("expected 2 recorded failed attempts, got %v", result.Attempts)
	}
	if !strings.HasPrefix(result.Attempts[0], "primary:") || !strings.HasPrefix(result.Attempts[1], "secondary:") {
		t.Errorf("attempts should record provider and error: %v", result.Attempts)
	}
}

func TestProcessWithFallbackAllFail(t *testing.T) {
	a := newStub("a", 1, true)
	a.err = errors.New("down")
	b := newStub("b", 2, true)
	b.err = errors.New("also down")

	m := testManager(nil, a, b)
	result := m.ProcessWithFallback(context.Background(), "prompt", "transcript", Context{})

	if result.Success {
		t.Fatal("expected failure")
	}
	if !errors.Is(result.Err, ErrAllProvidersFailed) {
		t.Errorf("expected ErrAllProvidersFailed, got %v", result.Err)
	}
	if !strings.Contains(result.Err.Error(), "down") {
		t.Errorf("expected per-provider errors in message, got %v", result.Err)
	}
}

func TestProcessWithFallbackTwoPass(t *testing.T) {
	small := newStub("local", 1, true)
	small.fits = false
	small.entities = "- Alice (engineer)\n- payment-service"

	m := testManager(nil, small)
	result := m.ProcessWithFallback(context.Background(), "summarize this", "transcript", Context{EstimatedTokens: 50000})

	if !result.Success {
		t.Fatalf("expected success, got %v", result.Err)
	}
	if !result.TwoPass {
		t.Error("expected two-pass protocol to be flagged")
	}
	if !strings.Contains(small.lastPrompt, "payment-service") {
		t.Error("expected entity grounding to be prepended to the prompt")
	}
	if !strings.HasSuffix(small.lastPrompt, "summarize this") {
		t.Error("expected the original prompt to follow the grounding block")
	}
}

func TestProcessWithFallbackEntityPassFailureAdvances(t *testing.T) {
	small := newStub("local", 1, true)
	small.fits = false
	small.entityErr = errors.New("timeout")
	remote := newStub("remote", 2, true)

	m := testManager(nil, small, remote)
	result := m.ProcessWithFallback(context.Background(), "summarize this", "transcript", Context{})

	if !result.Success {
		t.Fatalf("expected fallback to the remote backend, got %v", result.Err)
	}
	if result.Provider != "remote" {
		t.Errorf("expected remote provider, got %q", result.Provider)
	}
	if small.calls != 0 {
		t.Error("summary pass must not run after the entity pass fails")
	}
	if len(result.Attempts) != 1 || !strings.Contains(result.Attempts[0], "entity extraction") {
		t.Errorf("pass-1 failure should be recorded in the attempts: %v", result.Attempts)
	}
}

func TestProcessWithFallbackEntityPassFailureExhausts(t *testing.T) {
	small := newStub("local", 1, true)
	small.fits = false
	small.entityErr = errors.New("timeout")

	m := testManager(nil, small)
	result := m.ProcessWithFallback(context.Background(), "summarize this", "transcript", Context{})

	if result.Success {
		t.Fatal("expected failure when the only backend fails its entity pass")
	}
	if !errors.Is(result.Err, ErrAllProvidersFailed) {
		t.Errorf("expected ErrAllProvidersFailed, got %v", result.Err)
	}
}

func TestSelectBestSkipsUnavailable(t *testing.T) {
	offline := newStub("offline", 1, false)
	online := newStub("online", 2, true)

	m := testManager(nil, offline, online)
	p, err := m.SelectBest(context.Background(), Context{MeetingType: "technical"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "online" {
		t.Errorf("expected online provider, got %q", p.Name())
	}
}

func TestSelectBestSkipsDisabled(t *testing.T) {
	disabled := newStub("disabled", 1, true)
	disabled.cfg.Enabled = false
	enabled := newStub("enabled", 2, true)

	m := testManager(nil, disabled, enabled)
	p, err := m.SelectBest(context.Background(), Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "enabled" {
		t.Errorf("expected enabled provider, got %q", p.Name())
	}
}

func TestSelectBestNoneAvailable(t *testing.T) {
	m := testManager(nil, newStub("offline", 1, false))
	if _, err := m.SelectBest(context.Background(), Context{}); !errors.Is(err, ErrNoProvider) {
		t.Errorf("expected ErrNoProvider, got %v", err)
	}
}

func TestSelectBestRoutineTypePrefersCheapest(t *testing.T) {
	premium := newStub("premium", 1, true)
	economy := newStub("economy", 2, true)
	routines := []string{"standup", "general_sync"}

	m := testManager(routines, premium, economy)

	p, err := m.SelectBest(context.Background(), Context{MeetingType: "standup"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "economy" {
		t.Errorf("routine meeting should route to cheapest backend, got %q", p.Name())
	}

	p, err = m.SelectBest(context.Background(), Context{MeetingType: "technical"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "premium" {
		t.Errorf("non-routine meeting should route by priority, got %q", p.Name())
	}
}

func TestSelectCheapest(t *testing.T) {
	premium := newStub("premium", 1, true)
	economy := newStub("economy", 2, true)

	m := testManager(nil, premium, economy)
	p, err := m.SelectCheapest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "economy" {
		t.Errorf("expected economy provider, got %q", p.Name())
	}
}
