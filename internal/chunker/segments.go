package chunker

import (
	"strings"

	"github.com/quangdm-dev/meeting-flow/internal/transcript"
)

// segment is a run of transcript lines attributed to one speaker with
// an inferred topic
type segment struct {
	content string
	speaker string
	topic   string
}

// segmentize splits the transcript into speaker-attributed segments.
// Speaker changes open a new segment; topic keywords retag the current
// one.
func segmentize(content string) []segment {
	var segments []segment
	var currentLines []string
	var currentSpeaker, currentTopic string

	flush := func() {
		if len(currentLines) == 0 {
			return
		}
		segments = append(segments, segment{
			content: strings.Join(currentLines, "\n"),
			speaker: currentSpeaker,
			topic:   currentTopic,
		})
		currentLines = nil
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		speaker, ok := transcript.SpeakerOf(line)
		if ok && speaker != currentSpeaker {
			flush()
			currentSpeaker = speaker
		}

		currentLines = append(currentLines, line)
		currentTopic = detectTopic(line, currentTopic)
	}
	flush()

	return segments
}

// detectTopic retags the running topic when a line matches one of the
// pattern families; otherwise the previous topic carries forward
func detectTopic(line, currentTopic string) string {
	lineLower := strings.ToLower(line)

	for _, re := range technicalPatterns {
		if !re.MatchString(lineLower) {
			continue
		}
		switch {
		case strings.Contains(lineLower, "architecture") || strings.Contains(lineLower, "system"):
			return "technical_architecture"
		case strings.Contains(lineLower, "api") || strings.Contains(lineLower, "service"):
			return "api_service"
		case strings.Contains(lineLower, "deploy") || strings.Contains(lineLower, "test"):
			return "deployment_testing"
		}
	}

	for _, re := range decisionPatterns {
		if re.MatchString(lineLower) {
			return "decision_making"
		}
	}

	for _, re := range actionPatterns {
		if re.MatchString(lineLower) {
			return "action_planning"
		}
	}

	return currentTopic
}
