package quality

import (
	"math"
	"strings"
	"testing"

	"github.com/quangdm-dev/meeting-flow/internal/classifier"
	"github.com/quangdm-dev/meeting-flow/internal/config"
	"github.com/quangdm-dev/meeting-flow/internal/logger"
)

const richSummary = `# Meeting Summary: Platform Weekly Review

## Meeting Purpose
Review of the deployment pipeline migration and api gateway rollout for the quarter.

## Key Discussion Points
- The database migration is on track and the monitoring dashboards are live
- Customer impact of the launch was reviewed against the budget
- The roadmap milestone for the quarter depends on the security review

## Action Items
- [ ] **@Alice**: finish the kubernetes deployment runbook, due: friday
- [ ] **@Bob**: update the api schema docs, timeline: next sprint

## Decisions Made
- Agreed to go with the phased rollout approach

## Next Steps
- Follow-up: schedule the performance testing session
`

func testAssessor(t *testing.T) Assessor {
	t.Helper()
	cfg := &config.Config{
		Paths:     config.PathsConfig{Input: "in", Summaries: "out"},
		Providers: []config.ProviderConfig{{Name: "p", Type: "ollama"}},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config: %v", err)
	}
	return New(cfg.Quality, logger.New("error"))
}

func TestAssessRichSummary(t *testing.T) {
	a := testAssessor(t)

	got := a.Assess(richSummary, classifier.TypeTechnical, []string{"Alice Nguyen", "Bob Tran"}, "standard")

	if got.OverallScore < 0.7 {
		t.Errorf("expected a strong overall score, got %.2f", got.OverallScore)
	}
	if got.Confidence == "low" {
		t.Errorf("expected at least medium confidence, got %q", got.Confidence)
	}
	if got.ActionItems < 2 {
		t.Errorf("expected at least 2 action items, got %d", got.ActionItems)
	}
	if got.TechnicalTerms < 5 {
		t.Errorf("expected at least 5 technical terms, got %d", got.TechnicalTerms)
	}
	if len(got.Issues) != 0 {
		t.Errorf("expected no issues, got %v", got.Issues)
	}
}

func TestAssessPoorSummary(t *testing.T) {
	a := testAssessor(t)

	got := a.Assess("The team met and talked about things.", classifier.TypeGeneralSync, []string{"Alice Nguyen"}, "economy")

	if got.OverallScore > 0.4 {
		t.Errorf("expected a weak overall score, got %.2f", got.OverallScore)
	}
	if got.Confidence != "low" {
		t.Errorf("expected low confidence, got %q", got.Confidence)
	}
	if len(got.Issues) == 0 {
		t.Error("expected issues to be reported")
	}
}

func TestAssessPremiumConfidenceFloor(t *testing.T) {
	a := testAssessor(t)
	// enough structure for ~0.4..0.6 but thin content
	summary := "## Overview\n" + strings.Repeat("The api service deployment was discussed at length. ", 5) +
		"\n- [ ] @Carol: action due monday\n"

	standard := a.Assess(summary, classifier.TypeTechnical, nil, "standard")
	premium := a.Assess(summary, classifier.TypeTechnical, nil, "premium")

	if standard.OverallScore != premium.OverallScore {
		t.Fatal("cost class must not change the score itself")
	}
	if standard.OverallScore >= 0.4 && standard.OverallScore < 0.6 {
		if premium.Confidence != "medium" {
			t.Errorf("premium backend should reach medium confidence at %.2f, got %q",
				premium.OverallScore, premium.Confidence)
		}
		if standard.Confidence != "low" {
			t.Errorf("standard backend should stay low at %.2f, got %q",
				standard.OverallScore, standard.Confidence)
		}
	}
}

func TestAssessActionCountMonotonic(t *testing.T) {
	a := testAssessor(t)
	base := "## Notes\nThe api and database work continues.\n"

	prev := -1
	for i := 0; i < 4; i++ {
		summary := base + strings.Repeat("- [ ] @Dev: task due friday\n", i)
		got := a.Assess(summary, classifier.TypeTechnical, nil, "standard")
		if got.ActionItems < prev {
			t.Fatalf("action count decreased when items were added: %d -> %d", prev, got.ActionItems)
		}
		prev = got.ActionItems
	}
}

func TestAssessBoilerplateAndParticipantIssues(t *testing.T) {
	a := testAssessor(t)
	summary := "## Overview\nVarious topics were discussed and it was a productive discussion overall.\n" +
		strings.Repeat("The api deployment continues. ", 10)

	got := a.Assess(summary, classifier.TypeGeneralSync, []string{"Alice Nguyen", "Bob Tran"}, "standard")

	var boilerplate, unreferenced bool
	for _, issue := range got.Issues {
		if strings.Contains(issue, "boilerplate") {
			boilerplate = true
		}
		if strings.Contains(issue, "participant") {
			unreferenced = true
		}
	}
	if !boilerplate {
		t.Errorf("expected a boilerplate issue, got %v", got.Issues)
	}
	if !unreferenced {
		t.Errorf("expected a missing-participant issue, got %v", got.Issues)
	}
}

func TestAssessScoreBounds(t *testing.T) {
	a := testAssessor(t)

	for _, summary := range []string{"", richSummary, strings.Repeat(richSummary, 10)} {
		got := a.Assess(summary, classifier.TypeTechnical, nil, "premium")
		if got.OverallScore < 0 || got.OverallScore > 1 {
			t.Errorf("overall score out of bounds: %v", got.OverallScore)
		}
		if math.IsNaN(got.OverallScore) {
			t.Error("overall score is NaN")
		}
	}
}

func TestAssessDeterministic(t *testing.T) {
	a := testAssessor(t)

	first := a.Assess(richSummary, classifier.TypeTechnical, []string{"Alice Nguyen", "Bob Tran"}, "standard")
	for i := 0; i < 5; i++ {
		got := a.Assess(richSummary, classifier.TypeTechnical, []string{"Alice Nguyen", "Bob Tran"}, "standard")
		if got.OverallScore != first.OverallScore || got.Confidence != first.Confidence {
			t.Fatal("assessment is not deterministic")
		}
	}
}
