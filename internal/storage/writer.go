package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Save writes the summary markdown, a metadata sidecar, and a docx
// rendering into summaries/YYYY/MM-Month/. Returns the markdown path.
func (w *implWriter) Save(ctx context.Context, s Summary) (string, error) {
	// Metadata dates carry a time component ("2006-01-02 15:04:05");
	// only the day part matters for filing
	date, err := time.Parse("2006-01-02", strings.SplitN(s.Date, " ", 2)[0])
	if err != nil {
		date = time.Now()
	}

	dir := filepath.Join(w.cfg.Summaries,
		date.Format("2006"),
		fmt.Sprintf("%02d-%s", int(date.Month()), date.Month().String()))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create summary dir: %w", err)
	}

	base := fmt.Sprintf("%s - %s", date.Format("2006-01-02"), sanitizeTitle(s.Title))
	mdPath := filepath.Join(dir, base+".md")

	if err := os.WriteFile(mdPath, []byte(w.render(s)), 0644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}

	// The sidecar and docx are conveniences; losing them is not worth
	// failing the run
	meta, err := json.MarshalIndent(s, "", "  ")
	if err == nil {
		metaPath := filepath.Join(dir, base+".meta.json")
		if err := os.WriteFile(metaPath, meta, 0644); err != nil {
			w.logger.Warn(ctx, "Failed to write metadata sidecar: %v", err)
		}
	}

	docxPath := filepath.Join(dir, base+".docx")
	if err := markdownToDocx(s.Title, s.Content, docxPath); err != nil {
		w.logger.Warn(ctx, "Failed to write docx: %v", err)
	}

	w.logger.Info(ctx, "Summary saved: %s", mdPath)
	return mdPath, nil
}

// Archive moves a processed transcript into the archived tree so the
// watcher never picks it up again. The meeting folder name is kept as
// the destination subdirectory.
func (w *implWriter) Archive(ctx context.Context, filePath string) error {
	parent := filepath.Base(filepath.Dir(filePath))
	destDir := filepath.Join(w.cfg.Archived, parent)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}

	dest := filepath.Join(destDir, filepath.Base(filePath))
	if err := os.Rename(filePath, dest); err != nil {
		return fmt.Errorf("archive %s: %w", filePath, err)
	}

	w.logger.Info(ctx, "Transcript archived: %s", dest)
	return nil
}

func (w *implWriter) render(s Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", s.Title)
	fmt.Fprintf(&b, "**Date**: %s  \n", s.Date)
	fmt.Fprintf(&b, "**Type**: %s (%.0f%% confidence)  \n", s.MeetingType, s.Confidence*100)
	fmt.Fprintf(&b, "**Generated by**: %s/%s  \n", s.Provider, s.Model)
	fmt.Fprintf(&b, "**Quality**: %.2f (%s confidence)  \n", s.QualityScore, s.QualityConfidence)
	if s.Chunks > 1 {
		fmt.Fprintf(&b, "**Chunks**: %d  \n", s.Chunks)
	}
	if s.TwoPass {
		b.WriteString("**Protocol**: two-pass  \n")
	}
	fmt.Fprintf(&b, "\n---\n\n%s\n", strings.TrimSpace(s.Content))

	return b.String()
}

func sanitizeTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Untitled Meeting"
	}

	replacer := strings.NewReplacer("/", "-", "\\", "-", ":", "-", "*", "", "?", "", "\"", "", "<", "", ">", "", "|", "")
	return replacer.Replace(title)
}
