package transcript

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const sampleTranscript = `Alice Nguyen 09:00:05
Good morning everyone, let's get started with the platform review.
Bob Tran 09:01:12
Um, yesterday I finished the booking service migration.
Alice Nguyen 09:03:40
Great. We decided to go with the new API gateway approach.
Carol Le 09:45:10
I will follow up on the deployment checklist by Friday.
`

func writeSample(t *testing.T, folder string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "meeting_saved_closed_caption.txt")
	if err := os.WriteFile(path, []byte(sampleTranscript), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParse(t *testing.T) {
	path := writeSample(t, "2026-03-02 09.00.00 Platform Weekly Review")

	p := New(testLogger())
	tr, meta, err := p.Parse(context.Background(), path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if meta.Title != "Platform Weekly Review" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Date != "2026-03-02 09:00:00" {
		t.Errorf("Date = %q", meta.Date)
	}
	if meta.DayOfWeek != "monday" {
		t.Errorf("DayOfWeek = %q, want monday", meta.DayOfWeek)
	}
	if meta.TimeOfDay != "morning" {
		t.Errorf("TimeOfDay = %q, want morning", meta.TimeOfDay)
	}
	if meta.TeamHint != "platform" {
		t.Errorf("TeamHint = %q, want platform", meta.TeamHint)
	}

	want := []string{"Alice Nguyen", "Bob Tran", "Carol Le"}
	if len(meta.Participants) != len(want) {
		t.Fatalf("Participants = %v, want %v", meta.Participants, want)
	}
	for i, name := range want {
		if meta.Participants[i] != name {
			t.Errorf("Participants[%d] = %q, want %q", i, meta.Participants[i], name)
		}
	}

	if tr.Content == "" || tr.SizeBytes == 0 {
		t.Error("expected non-empty cleaned content")
	}
	if tr.SourcePath != path {
		t.Errorf("SourcePath = %q", tr.SourcePath)
	}
}

func TestParseDuration(t *testing.T) {
	path := writeSample(t, "2026-03-02 09.00.00 Duration Check")

	p := New(testLogger())
	_, meta, err := p.Parse(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	// First timestamp 09:00:05, last 09:45:10
	if meta.Duration != "~45m" {
		t.Errorf("Duration = %q, want ~45m", meta.Duration)
	}
}

func TestParseEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meeting_saved_closed_caption.txt")
	if err := os.WriteFile(path, []byte("   \n"), 0644); err != nil {
		t.Fatal(err)
	}

	p := New(testLogger())
	if _, _, err := p.Parse(context.Background(), path); err == nil {
		t.Error("Parse() expected error for empty file")
	}
}

func TestParseMissingFile(t *testing.T) {
	p := New(testLogger())
	if _, _, err := p.Parse(context.Background(), filepath.Join(t.TempDir(), "none.txt")); err == nil {
		t.Error("Parse() expected error for missing file")
	}
}

func TestSpeakerOf(t *testing.T) {
	tests := []struct {
		line    string
		speaker string
		ok      bool
	}{
		{"Alice Nguyen 09:00:05", "Alice Nguyen", true},
		{"Bob 12:30", "Bob", true},
		{"just some spoken words here", "", false},
		{"", "", false},
		{"Alice Nguyen 2026-03-02T09:00:05", "", false},
	}

	for _, tt := range tests {
		speaker, ok := SpeakerOf(tt.line)
		if ok != tt.ok || speaker != tt.speaker {
			t.Errorf("SpeakerOf(%q) = (%q, %v), want (%q, %v)", tt.line, speaker, ok, tt.speaker, tt.ok)
		}
	}
}
