package quality

import "github.com/quangdm-dev/meeting-flow/internal/classifier"

// Assessment scores a generated summary across the four quality
// dimensions. OverallScore is the weighted sum on a 0..1 scale.
type Assessment struct {
	OverallScore    float64
	TechnicalScore  float64
	ActionScore     float64
	BusinessScore   float64
	ClarityScore    float64
	TechnicalTerms  int
	ActionItems     int
	Confidence      string // high, medium, low
	Issues          []string
}

// Assessor judges summary quality without calling any model.
type Assessor interface {
	Assess(summary string, meetingType classifier.MeetingType, participants []string, costClass string) Assessment
}
