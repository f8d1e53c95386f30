package classifier

// MeetingType is the closed set of meeting categories the pipeline
// adapts to
type MeetingType string

const (
	TypeTechnical   MeetingType = "technical"
	TypeStrategy    MeetingType = "strategy"
	TypeAlignment   MeetingType = "alignment"
	TypeOneOnOne    MeetingType = "one_on_one"
	TypeStandup     MeetingType = "standup"
	TypeGeneralSync MeetingType = "general_sync"
)

// orderedTypes fixes the scoring iteration order. Ties resolve to the
// earliest entry so classification stays deterministic.
var orderedTypes = []MeetingType{
	TypeTechnical,
	TypeStrategy,
	TypeAlignment,
	TypeOneOnOne,
	TypeStandup,
}

// Display returns a human-readable form, e.g. "One On One"
func (m MeetingType) Display() string {
	out := make([]byte, 0, len(m))
	upper := true
	for i := 0; i < len(m); i++ {
		c := m[i]
		if c == '_' {
			out = append(out, ' ')
			upper = true
			continue
		}
		if upper && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		out = append(out, c)
	}
	return string(out)
}

// Context carries per-meeting metadata used for classification boosts
// and prompt building. Read-only after construction.
type Context struct {
	Title            string
	Participants     []string
	DurationEstimate string
	TimeOfDay        string
	DayOfWeek        string
	TeamHint         string
}

// Classifier scores a transcript against per-type pattern tables and
// returns the best matching type with a confidence in [0,1]
type Classifier interface {
	Classify(content string, meta Context) (MeetingType, float64)
}

// PromptBuilder renders type-adapted prompts for summary generation
type PromptBuilder interface {
	Build(meetingType MeetingType, meta Context, transcript string) string
	BuildChunkPrompt(carriedContext, overlapText, chunkInfo, content string) string
	BuildSynthesisPrompt(meta Context, meetingType MeetingType, date string, chunkSummaries []string) string
}
