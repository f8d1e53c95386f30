package transcript

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// teamHints maps recognizable team names found in titles or folder
// paths to the TeamHint metadata field
var teamHints = []string{
	"flights", "accommodations", "attractions", "ground transport",
	"payments", "user experience", "platform", "data", "mobile", "web",
}

// Parse reads a transcript file, extracts meeting metadata from the
// enclosing folder name and speaker lines, and cleans the content.
func (p *implParser) Parse(ctx context.Context, filePath string) (Transcript, Metadata, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return Transcript{}, Metadata{}, fmt.Errorf("read transcript: %w", err)
	}

	content := strings.TrimSpace(string(raw))
	if content == "" {
		return Transcript{}, Metadata{}, fmt.Errorf("transcript file is empty: %s", filePath)
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return Transcript{}, Metadata{}, fmt.Errorf("stat transcript: %w", err)
	}

	meta := p.extractMetadata(filePath, content, info.Size())
	cleaned := Clean(content)

	p.logger.Debug(ctx, "Parsed transcript %s: %d participants, %d -> %d chars",
		meta.Title, len(meta.Participants), len(content), len(cleaned))

	return Transcript{
		Content:    cleaned,
		SizeBytes:  int64(len(cleaned)),
		SourcePath: filePath,
	}, meta, nil
}

// extractMetadata derives meeting metadata from the folder naming
// convention "YYYY-MM-DD HH.MM.SS Meeting Title" and the content
func (p *implParser) extractMetadata(filePath, content string, fileSize int64) Metadata {
	folderName := filepath.Base(filepath.Dir(filePath))
	parts := strings.SplitN(folderName, " ", 3)

	var dateStr, timeStr, title string
	if len(parts) >= 3 {
		dateStr = parts[0]
		timeStr = parts[1]
		title = parts[2]
	} else {
		dateStr = "Unknown"
		timeStr = "Unknown"
		title = folderName
	}

	participants := extractParticipants(content)

	meta := Metadata{
		Title:        title,
		Date:         strings.ReplaceAll(dateStr+" "+timeStr, ".", ":"),
		Duration:     estimateDuration(content),
		Participants: participants,
		TeamHint:     detectTeamHint(title, filePath),
		FilePath:     filePath,
		FileSize:     fileSize,
	}

	if t, err := time.Parse("2006-01-02 15.04.05", dateStr+" "+timeStr); err == nil {
		meta.DayOfWeek = strings.ToLower(t.Weekday().String())
		meta.TimeOfDay = timeOfDay(t.Hour())
	}

	return meta
}

func timeOfDay(hour int) string {
	switch {
	case hour < 12:
		return "morning"
	case hour < 17:
		return "afternoon"
	default:
		return "evening"
	}
}

// extractParticipants collects speaker names from lines of the form
// "Speaker Name HH:MM:SS"
func extractParticipants(content string) []string {
	seen := make(map[string]struct{})

	for _, line := range strings.Split(content, "\n") {
		speaker, ok := SpeakerOf(strings.TrimSpace(line))
		if !ok {
			continue
		}
		if speaker != "" && !strings.HasPrefix(speaker, "[") && len(speaker) < 50 {
			seen[speaker] = struct{}{}
		}
	}

	participants := make([]string, 0, len(seen))
	for name := range seen {
		participants = append(participants, name)
	}
	sort.Strings(participants)
	return participants
}

// SpeakerOf extracts the speaker name from a transcript line ending in
// a timestamp, e.g. "Alice Nguyen 00:14:02". Shared with the chunker's
// segmentation.
func SpeakerOf(line string) (string, bool) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return "", false
	}
	last := parts[len(parts)-1]
	if !strings.Contains(last, ":") || len(last) > 8 {
		return "", false
	}
	return strings.Join(parts[:len(parts)-1], " "), true
}

// estimateDuration derives the meeting length from the first and last
// timestamps, falling back to a words-per-minute estimate
func estimateDuration(content string) string {
	var first, last string
	for _, line := range strings.Split(content, "\n") {
		parts := strings.Fields(strings.TrimSpace(line))
		if len(parts) < 2 {
			continue
		}
		candidate := parts[len(parts)-1]
		if !strings.Contains(candidate, ":") || len(candidate) > 8 {
			continue
		}
		if first == "" {
			first = candidate
		}
		last = candidate
	}

	if first != "" && last != "" && first != last {
		if d, ok := timestampDiff(first, last); ok {
			return "~" + d
		}
	}

	// ~150 spoken words per minute
	wordCount := len(strings.Fields(content))
	minutes := wordCount / 150
	if minutes < 5 {
		minutes = 5
	}
	return fmt.Sprintf("~%dm", minutes)
}

func timestampDiff(start, end string) (string, bool) {
	startSec, ok1 := parseTimestamp(start)
	endSec, ok2 := parseTimestamp(end)
	if !ok1 || !ok2 {
		return "", false
	}

	diff := endSec - startSec
	if diff < 0 {
		diff += 24 * 3600
	}

	switch {
	case diff < 60:
		return fmt.Sprintf("%ds", diff), true
	case diff < 3600:
		return fmt.Sprintf("%dm", diff/60), true
	default:
		return fmt.Sprintf("%dh%dm", diff/3600, (diff%3600)/60), true
	}
}

func parseTimestamp(ts string) (int, bool) {
	parts := strings.Split(ts, ":")
	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, false
		}
		total = total*60 + n
	}
	switch len(parts) {
	case 2, 3:
		return total, true
	default:
		return 0, false
	}
}

func detectTeamHint(title, filePath string) string {
	search := strings.ToLower(title + " " + filePath)
	for _, team := range teamHints {
		if strings.Contains(search, team) {
			return team
		}
	}
	return ""
}
