package classifier

import (
	"context"
	"strings"
)

// Classify scores the transcript against every candidate type and
// returns the highest-scoring one with a confidence in [0,1]. It is a
// total function: low-signal input degrades to GENERAL_SYNC, never an
// error.
func (c *implClassifier) Classify(content string, meta Context) (MeetingType, float64) {
	contentLower := strings.ToLower(content)

	bestType := orderedTypes[0]
	bestScore := -1.0

	for _, mt := range orderedTypes {
		contentScore := c.contentScore(contentLower, c.patterns[mt])
		metadataBoost := metadataBoost(mt, meta)
		domainBoost := domainBoost(contentLower, mt)

		finalScore := contentScore * (1 + metadataBoost + domainBoost)
		c.logger.Debug(context.Background(),
			"%s: content=%.2f metadata_boost=%.2f domain_boost=%.2f final=%.2f",
			mt, contentScore, metadataBoost, domainBoost, finalScore)

		// strict > keeps the earliest type on ties
		if finalScore > bestScore {
			bestScore = finalScore
			bestType = mt
		}
	}

	confidence := bestScore / c.cfg.ScoreCeiling
	if confidence > 1.0 {
		confidence = 1.0
	}

	if confidence < c.cfg.ConfidenceThreshold {
		return TypeGeneralSync, c.cfg.FallbackConfidence
	}

	return bestType, confidence
}

func (c *implClassifier) contentScore(content string, patterns typePatterns) float64 {
	score := 0.0
	for _, keyword := range patterns.Keywords {
		score += float64(strings.Count(content, keyword)) * c.cfg.KeywordWeight
	}
	for _, phrase := range patterns.Phrases {
		score += float64(strings.Count(content, phrase)) * c.cfg.PhraseWeight
	}
	return score
}

func metadataBoost(mt MeetingType, meta Context) float64 {
	boost := 0.0

	if meta.Title != "" {
		title := strings.ToLower(meta.Title)
		switch mt {
		case TypeStandup:
			if containsAny(title, "standup", "daily", "scrum") {
				boost += 0.5
			}
		case TypeOneOnOne:
			if containsAny(title, "1:1", "one-on-one", "career") {
				boost += 0.5
			}
		case TypeTechnical:
			if containsAny(title, "architecture", "technical", "design", "review") {
				boost += 0.3
			}
		case TypeStrategy:
			if containsAny(title, "strategy", "planning", "roadmap") {
				boost += 0.3
			}
		}
	}

	if n := len(meta.Participants); n > 0 {
		switch {
		case mt == TypeOneOnOne && n == 2:
			boost += 0.3
		case mt == TypeStandup && n >= 3 && n <= 8:
			boost += 0.2
		case mt == TypeAlignment && n > 8:
			boost += 0.2
		}
	}

	if meta.TimeOfDay != "" {
		if mt == TypeStandup && meta.TimeOfDay == "morning" {
			boost += 0.2
		}
		if mt == TypeOneOnOne && meta.TimeOfDay == "afternoon" && meta.DayOfWeek == "friday" {
			boost += 0.2
		}
	}

	return boost
}

func domainBoost(content string, mt MeetingType) float64 {
	boost := 0.0

	for _, team := range domainVocabulary.Teams {
		if !strings.Contains(content, team) {
			continue
		}
		if mt == TypeTechnical && (team == "platform" || team == "data") {
			boost += 0.1
		}
		if mt == TypeStrategy && (team == "flights" || team == "accommodations") {
			boost += 0.1
		}
	}

	termCount := 0
	for _, term := range domainVocabulary.BusinessTerms {
		if strings.Contains(content, term) {
			termCount++
		}
	}
	if termCount > 0 {
		switch mt {
		case TypeStrategy:
			boost += float64(termCount) * 0.05
		case TypeTechnical:
			boost += float64(termCount) * 0.03
		}
	}

	return boost
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
