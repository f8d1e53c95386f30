package classifier

import (
	"strings"
	"testing"

	"github.com/quangdm-dev/meeting-flow/internal/config"
	"github.com/quangdm-dev/meeting-flow/internal/logger"
)

func testClassifier(t *testing.T) Classifier {
	t.Helper()
	cfg := config.Config{
		Paths: config.PathsConfig{Input: "in", Summaries: "out"},
		Providers: []config.ProviderConfig{
			{Name: "local", Type: "ollama", Model: "llama3.1:8b"},
		},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return New(cfg.Classifier, logger.New("error"))
}

func TestClassifyStandup(t *testing.T) {
	c := testClassifier(t)

	content := strings.Repeat(
		"daily standup time. yesterday i finished the search indexer. "+
			"daily standup notes. yesterday i reviewed the deploy. "+
			"daily standup recap. yesterday i fixed the flaky test. ", 1)

	mt, conf := c.Classify(content, Context{
		Title:        "Daily Standup",
		Participants: []string{"An", "Binh", "Chi", "Dung"},
		TimeOfDay:    "morning",
	})

	if mt != TypeStandup {
		t.Errorf("Classify() type = %s, want standup", mt)
	}
	if conf < 0.5 {
		t.Errorf("Classify() confidence = %v, want >= 0.5", conf)
	}
}

func TestClassifyStrategy(t *testing.T) {
	c := testClassifier(t)

	content := "the roadmap for q4 objectives is clear. we need to prioritize the market " +
		"opportunity and align the product roadmap with our business goals. resource " +
		"allocation for the initiative starts next quarter. prioritize the roadmap milestones."

	mt, conf := c.Classify(content, Context{Title: "Quarterly Planning"})

	if mt != TypeStrategy {
		t.Errorf("Classify() type = %s, want strategy", mt)
	}
	if conf <= 0.3 {
		t.Errorf("Classify() confidence = %v, want > 0.3", conf)
	}
}

func TestClassifyLowSignalDefaultsToGeneralSync(t *testing.T) {
	c := testClassifier(t)

	mt, conf := c.Classify("hello. nothing of note was said.", Context{})

	if mt != TypeGeneralSync {
		t.Errorf("Classify() type = %s, want general_sync", mt)
	}
	if conf != 0.5 {
		t.Errorf("Classify() confidence = %v, want 0.5 fallback", conf)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := testClassifier(t)

	content := "we discussed the api architecture and the deployment pipeline for the backend service."
	meta := Context{Title: "Architecture Review", Participants: []string{"An", "Binh"}}

	mt1, conf1 := c.Classify(content, meta)
	for i := 0; i < 10; i++ {
		mt2, conf2 := c.Classify(content, meta)
		if mt1 != mt2 || conf1 != conf2 {
			t.Fatalf("Classify() not deterministic: (%s, %v) vs (%s, %v)", mt1, conf1, mt2, conf2)
		}
	}
}

func TestClassifyOneOnOneParticipantBoost(t *testing.T) {
	c := testClassifier(t)

	content := "let's talk about your career development and growth. the feedback on your " +
		"performance review was strong. your promotion track and personal goals look good. " +
		"professional development and coaching opportunities and skills."

	mt, _ := c.Classify(content, Context{
		Title:        "1:1 An / Binh",
		Participants: []string{"An", "Binh"},
	})

	if mt != TypeOneOnOne {
		t.Errorf("Classify() type = %s, want one_on_one", mt)
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		mt   MeetingType
		want string
	}{
		{TypeOneOnOne, "One On One"},
		{TypeStandup, "Standup"},
		{TypeGeneralSync, "General Sync"},
	}
	for _, tt := range tests {
		if got := tt.mt.Display(); got != tt.want {
			t.Errorf("Display(%s) = %q, want %q", tt.mt, got, tt.want)
		}
	}
}
