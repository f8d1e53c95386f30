package chunker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/quangdm-dev/meeting-flow/internal/transcript"
)

// Pattern families for heuristic extraction. They are data, not
// control flow, so they can be tuned without touching the chunking
// algorithm.
var (
	technicalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(api|service|module|architecture|system|database|integration)\b`),
		regexp.MustCompile(`\b(deploy|test|build|release|version)\b`),
		regexp.MustCompile(`\b(performance|scalability|security|reliability)\b`),
	}

	decisionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(decide|decision|choose|option|approach|solution)\b`),
		regexp.MustCompile(`\b(agree|consensus|conclusion|final)\b`),
		regexp.MustCompile(`\b(go with|pick|select|prefer)\b`),
	}

	actionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(will|should|need to|have to|must)\b`),
		regexp.MustCompile(`\b(action|task|todo|follow.?up)\b`),
		regexp.MustCompile(`\b(by|due|deadline|timeline)\b`),
	}

	decisionPhrases = []*regexp.Regexp{
		regexp.MustCompile(`we (decided|agreed|concluded)`),
		regexp.MustCompile(`(decision|choice) is`),
		regexp.MustCompile(`going with`),
		regexp.MustCompile(`final (decision|choice)`),
	}

	actionPhrases = []*regexp.Regexp{
		regexp.MustCompile(`(will|should|need to) \w+`),
		regexp.MustCompile(`action item`),
		regexp.MustCompile(`follow up`),
		regexp.MustCompile(`by (next week|tomorrow|friday)`),
	}
)

var technicalVocab = []string{
	"api", "service", "module", "system", "database", "architecture",
	"deployment", "testing", "integration", "performance", "security",
}

const (
	maxEntities  = 10
	maxDecisions = 3
	maxActions   = 5
)

// extractEntities collects speaker names in line order followed by
// technical vocabulary hits, capped at maxEntities
func extractEntities(content string) []string {
	var entities []string
	seen := make(map[string]struct{})

	add := func(e string) {
		if _, dup := seen[e]; dup {
			return
		}
		seen[e] = struct{}{}
		entities = append(entities, e)
	}

	for _, line := range strings.Split(content, "\n") {
		if speaker, ok := transcript.SpeakerOf(strings.TrimSpace(line)); ok {
			add(speaker)
		}
	}

	contentLower := strings.ToLower(content)
	for _, term := range technicalVocab {
		if strings.Contains(contentLower, term) {
			add(term)
		}
	}

	if len(entities) > maxEntities {
		entities = entities[:maxEntities]
	}
	return entities
}

// extractDecisions returns snippets of text around decision-phrase
// matches, capped at maxDecisions
func extractDecisions(content string) []string {
	return extractWindows(content, decisionPhrases, 50, 100, maxDecisions)
}

// extractActions returns snippets of text around action-phrase
// matches, capped at maxActions
func extractActions(content string) []string {
	return extractWindows(content, actionPhrases, 30, 80, maxActions)
}

func extractWindows(content string, patterns []*regexp.Regexp, before, after, limit int) []string {
	contentLower := strings.ToLower(content)
	var snippets []string

	for _, re := range patterns {
		for _, loc := range re.FindAllStringIndex(contentLower, -1) {
			start := loc[0] - before
			if start < 0 {
				start = 0
			}
			end := loc[1] + after
			if end > len(content) {
				end = len(content)
			}
			snippets = append(snippets, strings.TrimSpace(content[start:end]))
			if len(snippets) >= limit {
				return snippets
			}
		}
	}
	return snippets
}

// identifyDiscussions labels the kinds of conversation present in a
// chunk, used only for the topic summary string
func identifyDiscussions(content string) []string {
	var discussions []string

	if strings.Contains(content, "?") {
		discussions = append(discussions, "Q&A discussion")
	}

	contentLower := strings.ToLower(content)
	for _, keyword := range []string{"option", "choice", "decide", "approach", "solution"} {
		if strings.Contains(contentLower, keyword) {
			discussions = append(discussions, "Decision about "+keyword)
			break
		}
	}

	return discussions
}

func topicSummary(entities, discussions []string) string {
	switch {
	case len(entities) > 0 && len(discussions) > 0:
		return fmt.Sprintf("%s discussing %s",
			strings.Join(head(entities, 2), ", "),
			strings.Join(head(discussions, 2), ", "))
	case len(entities) > 0:
		return "Discussion involving " + strings.Join(head(entities, 3), ", ")
	case len(discussions) > 0:
		return "Discussion about " + strings.Join(head(discussions, 2), ", ")
	default:
		return "General discussion"
	}
}

// carriedContextOf summarizes one chunk's analysis for threading into
// the next chunk's prompt
func carriedContextOf(c Chunk) string {
	var parts []string

	if len(c.KeyEntities) > 0 {
		parts = append(parts, "Key people/systems: "+strings.Join(head(c.KeyEntities, 3), ", "))
	}
	if len(c.Decisions) > 0 {
		parts = append(parts, fmt.Sprintf("Decisions: %d made", len(c.Decisions)))
	}
	if len(c.Actions) > 0 {
		parts = append(parts, fmt.Sprintf("Actions: %d identified", len(c.Actions)))
	}

	if len(parts) == 0 {
		return "General discussion context"
	}
	return strings.Join(parts, "; ")
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
