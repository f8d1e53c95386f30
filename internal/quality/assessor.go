package quality

import (
	"context"
	"fmt"
	"strings"

	"github.com/quangdm-dev/meeting-flow/internal/classifier"
)

var technicalTerms = []string{
	"api", "database", "architecture", "deployment", "service",
	"integration", "pipeline", "infrastructure", "latency", "migration",
	"kubernetes", "monitoring", "testing", "performance", "security",
	"endpoint", "schema", "scalability", "backend", "frontend",
}

// extra weight for meetings where technical depth is the point
var domainTerms = map[classifier.MeetingType][]string{
	classifier.TypeTechnical: {"refactor", "debug", "incident", "rollback", "observability"},
	classifier.TypeStrategy:  {"platform", "capacity", "tooling"},
}

var businessTerms = []string{
	"revenue", "customer", "market", "budget", "cost", "roi",
	"stakeholder", "deadline", "launch", "growth", "metric",
}

var strategicTerms = []string{
	"roadmap", "milestone", "quarter", "okr", "priority", "initiative",
}

var actionMarkers = []string{
	"- [ ]", "- [x]", "todo:", "action:", "follow-up:", "follow up:",
	"due:", "timeline:", "next step",
}

var mentionKeywords = []string{"due", "timeline", "task", "action", "will"}

// phrases that signal filler output rather than real analysis
var boilerplatePhrases = []string{
	"various topics were discussed",
	"a productive discussion",
	"the meeting covered a range",
	"in summary, the meeting",
	"as an ai",
}

// Assess scores the summary on technical content, action items,
// business context, and clarity, then folds them into a weighted
// overall score.
func (a *implAssessor) Assess(summary string, meetingType classifier.MeetingType, participants []string, costClass string) Assessment {
	techCount := a.technicalTermsCount(summary, meetingType)
	actionCount := a.actionItemsCount(summary)

	techScore := ratio(techCount, a.cfg.ExpectedTechTerms)
	actionScore := ratio(actionCount, a.cfg.ExpectedActions)
	bizScore := a.businessContextScore(summary)
	clarityScore := a.clarityScore(summary)

	w := a.cfg.Weights
	overall := w.TechnicalContent*techScore +
		w.ActionItems*actionScore +
		w.BusinessContext*bizScore +
		w.Clarity*clarityScore
	overall = clamp(overall)

	assessment := Assessment{
		OverallScore:   overall,
		TechnicalScore: techScore,
		ActionScore:    actionScore,
		BusinessScore:  bizScore,
		ClarityScore:   clarityScore,
		TechnicalTerms: techCount,
		ActionItems:    actionCount,
		Confidence:     a.confidence(overall, costClass),
		Issues:         a.issues(summary, participants, techCount, actionCount),
	}

	a.logger.Debug(context.Background(), "Quality assessment: %.2f (%s confidence)",
		assessment.OverallScore, assessment.Confidence)

	return assessment
}

func (a *implAssessor) technicalTermsCount(summary string, meetingType classifier.MeetingType) int {
	lower := strings.ToLower(summary)

	count := 0
	for _, term := range technicalTerms {
		if strings.Contains(lower, term) {
			count++
		}
	}
	for _, term := range domainTerms[meetingType] {
		if strings.Contains(lower, term) {
			count++
		}
	}
	return count
}

func (a *implAssessor) actionItemsCount(summary string) int {
	count := 0
	for _, line := range strings.Split(summary, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))
		if lower == "" {
			continue
		}

		matched := false
		for _, marker := range actionMarkers {
			if strings.Contains(lower, marker) {
				matched = true
				break
			}
		}
		if !matched && strings.Contains(lower, "@") {
			for _, kw := range mentionKeywords {
				if strings.Contains(lower, kw) {
					matched = true
					break
				}
			}
		}
		if matched {
			count++
		}
	}
	return count
}

func (a *implAssessor) businessContextScore(summary string) float64 {
	lower := strings.ToLower(summary)

	bizHits := 0
	for _, term := range businessTerms {
		if strings.Contains(lower, term) {
			bizHits++
		}
	}
	strategicHits := 0
	for _, term := range strategicTerms {
		if strings.Contains(lower, term) {
			strategicHits++
		}
	}

	score := min(float64(bizHits)/5.0, 1.0) * 0.4
	score += min(float64(strategicHits)/2.0, 1.0) * 0.3
	if strategicHits > 0 && bizHits > 0 {
		score += 0.3
	}
	return clamp(score)
}

func (a *implAssessor) clarityScore(summary string) float64 {
	score := 0.0

	if strings.Contains(summary, "# ") || strings.Contains(summary, "## ") {
		score += 0.3
	}
	if strings.Contains(summary, "- ") || strings.Contains(summary, "* ") {
		score += 0.2
	}

	sections := strings.Count(summary, "## ")
	score += min(float64(sections)/5.0, 1.0) * 0.3

	if len(summary) >= 200 && len(summary) <= 3000 {
		score += 0.2
	}
	return clamp(score)
}

// confidence buckets the overall score. Premium backends earn the
// medium bucket at a lower floor because their output is structurally
// reliable even when the heuristics under-count.
func (a *implAssessor) confidence(overall float64, costClass string) string {
	switch {
	case overall >= 0.8:
		return "high"
	case overall >= 0.6:
		return "medium"
	case costClass == "premium" && overall >= 0.4:
		return "medium"
	default:
		return "low"
	}
}

func (a *implAssessor) issues(summary string, participants []string, techCount, actionCount int) []string {
	var issues []string
	lower := strings.ToLower(summary)

	if len(summary) < a.cfg.MinSummaryLength {
		issues = append(issues, fmt.Sprintf("summary shorter than %d characters", a.cfg.MinSummaryLength))
	}
	if techCount < a.cfg.MinTechnicalTerms {
		issues = append(issues, "few technical terms detected")
	}
	if actionCount < a.cfg.MinActionItems {
		issues = append(issues, "no clear action items found")
	}
	if !strings.Contains(summary, "##") {
		issues = append(issues, "summary lacks section structure")
	}
	for _, phrase := range boilerplatePhrases {
		if strings.Contains(lower, phrase) {
			issues = append(issues, "generic boilerplate language detected")
			break
		}
	}
	if len(participants) > 0 && !referencesAnyone(lower, participants) {
		issues = append(issues, "no participant name referenced")
	}
	return issues
}

func referencesAnyone(lowerSummary string, participants []string) bool {
	for _, name := range participants {
		first := strings.Fields(name)
		if len(first) == 0 {
			continue
		}
		if strings.Contains(lowerSummary, strings.ToLower(first[0])) {
			return true
		}
	}
	return false
}

func ratio(count, expected int) float64 {
	if expected <= 0 {
		return 1.0
	}
	return min(float64(count)/float64(expected), 1.0)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
