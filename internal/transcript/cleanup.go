package transcript

import (
	"regexp"
	"strings"
)

var (
	reRecordingNotice = regexp.MustCompile(`(?i)(you are now recording this meeting|recording in progress|this meeting is being recorded)`)
	reBracketNoise    = regexp.MustCompile(`(?i)(\(phone ringing\)|\(background noise\)|\(inaudible\)|\[pause\]|\[silence\]|\[PARTICIPANT_\d+\])`)
	reSpaces          = regexp.MustCompile(`[ \t]{2,}`)
)

// fillers are standalone words stripped when they open a sentence;
// they add no content for summarization
var fillers = map[string]struct{}{
	"um": {}, "uh": {}, "er": {}, "ah": {},
	"basically": {}, "literally": {}, "honestly": {},
}

// Clean normalizes a raw transcript for downstream processing: drops
// recording notices, bracketed noise, artifact lines, and leading
// filler words. Whole-line timestamps are kept only as part of speaker
// lines.
func Clean(content string) string {
	var cleaned []string

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) < 3 {
			continue
		}

		line = reRecordingNotice.ReplaceAllString(line, "")
		line = reBracketNoise.ReplaceAllString(line, "")
		line = reduceFillers(line)
		line = reSpaces.ReplaceAllString(line, " ")
		line = strings.TrimSpace(line)

		if line == "" || len(line) < 3 {
			continue
		}
		cleaned = append(cleaned, line)
	}

	return strings.Join(cleaned, "\n")
}

func reduceFillers(line string) string {
	words := strings.Fields(line)
	out := words[:0]
	for i, w := range words {
		bare := strings.ToLower(strings.Trim(w, ",."))
		if _, isFiller := fillers[bare]; isFiller && i < 2 {
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}
