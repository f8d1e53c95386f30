package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quangdm-dev/meeting-flow/internal/chunker"
	"github.com/quangdm-dev/meeting-flow/internal/classifier"
	"github.com/quangdm-dev/meeting-flow/internal/provider"
	"github.com/quangdm-dev/meeting-flow/internal/quality"
	"github.com/quangdm-dev/meeting-flow/internal/storage"
	"github.com/quangdm-dev/meeting-flow/internal/transcript"
)

// Process runs the full pipeline for one transcript file.
func (o *implOrchestrator) Process(ctx context.Context, filePath string) (Result, error) {
	resolved, err := filepath.Abs(filePath)
	if err != nil {
		resolved = filePath
	}
	if !o.begin(resolved) {
		return Result{}, ErrAlreadyProcessing
	}
	defer o.finish(resolved)

	start := time.Now()
	runID := uuid.NewString()

	o.logger.Info(ctx, "[%s] Processing transcript: %s", runID, filePath)

	tr, meta, err := o.parser.Parse(ctx, filePath)
	if err != nil {
		return Result{}, fmt.Errorf("parse transcript: %w", err)
	}
	content := transcript.Clean(tr.Content)

	meetingType, confidence := o.classifier.Classify(content, classifierContext(meta))
	o.logger.Info(ctx, "[%s] Classified as %s (%.0f%% confidence)", runID, meetingType.Display(), confidence*100)

	pctx := provider.Context{
		MeetingTitle:    meta.Title,
		MeetingDate:     meta.Date,
		Participants:    meta.Participants,
		MeetingType:     string(meetingType),
		FileSize:        meta.FileSize,
		EstimatedTokens: len(content) / 4,
	}

	var gen provider.GenerationResult
	chunkCount := 1

	if o.chunker.ShouldChunk(content) {
		chunks := o.chunker.Chunk(content, meta)
		chunkCount = len(chunks)
		gen = o.processChunked(ctx, runID, chunks, meta, meetingType, pctx)
	} else {
		prompt := o.prompts.Build(meetingType, classifierContext(meta), content)
		gen = o.providers.ProcessWithFallback(ctx, prompt, content, pctx)
	}

	if !gen.Success {
		return Result{RunID: runID, FilePath: filePath, MeetingType: meetingType, Confidence: confidence},
			fmt.Errorf("generate summary: %w", gen.Err)
	}

	assessment := o.assessor.Assess(gen.Content, meetingType, meta.Participants, o.costClass(gen.Provider))

	result := Result{
		RunID:             runID,
		FilePath:          filePath,
		MeetingType:       meetingType,
		Confidence:        confidence,
		Provider:          gen.Provider,
		Model:             gen.Model,
		QualityScore:      assessment.OverallScore,
		QualityConfidence: assessment.Confidence,
		Issues:            assessment.Issues,
		Recommendations:   o.recommendations(assessment, gen, meetingType),
		Chunks:            chunkCount,
		TwoPass:           gen.TwoPass,
		ProcessingSeconds: time.Since(start).Seconds(),
	}
	result.IntelligenceBoost = o.intelligenceBoost(confidence, assessment.OverallScore, o.costClass(gen.Provider), meetingType)

	summaryPath, err := o.writer.Save(ctx, storage.Summary{
		Title:             meta.Title,
		Date:              meta.Date,
		MeetingType:       string(meetingType),
		Confidence:        confidence,
		Content:           gen.Content,
		Provider:          gen.Provider,
		Model:             gen.Model,
		QualityScore:      assessment.OverallScore,
		QualityConfidence: assessment.Confidence,
		RunID:             runID,
		TwoPass:           gen.TwoPass,
		Chunks:            chunkCount,
		ProcessingSeconds: result.ProcessingSeconds,
		SourcePath:        filePath,
	})
	if err != nil {
		return result, fmt.Errorf("save summary: %w", err)
	}
	result.SummaryPath = summaryPath

	if err := o.writer.Archive(ctx, filePath); err != nil {
		o.logger.Warn(ctx, "[%s] Failed to archive transcript: %v", runID, err)
	}

	o.logger.Info(ctx, "[%s] Done in %.1fs: %s (quality %.2f, boost %d)",
		runID, result.ProcessingSeconds, summaryPath, result.QualityScore, result.IntelligenceBoost)

	return result, nil
}

// processChunked summarizes each chunk on the cheapest available
// backend, then synthesizes the chunk summaries into one document.
// Chunks that fail on the cheap tier fall back to the full chain.
func (o *implOrchestrator) processChunked(ctx context.Context, runID string, chunks []chunker.Chunk, meta transcript.Metadata, meetingType classifier.MeetingType, pctx provider.Context) provider.GenerationResult {
	chunkSummaries := make([]string, 0, len(chunks))

	for _, c := range chunks {
		prompt := o.prompts.BuildChunkPrompt(c.CarriedContext, c.OverlapText, c.Info, c.Content)
		chunkPctx := pctx
		chunkPctx.EstimatedTokens = len(c.Content) / 4

		gen := o.processChunk(ctx, prompt, c.Content, chunkPctx)
		if !gen.Success {
			o.logger.Warn(ctx, "[%s] Chunk %d/%d failed: %v", runID, c.Ordinal, c.TotalChunks, gen.Err)
			continue
		}

		o.logger.Info(ctx, "[%s] Chunk %d/%d summarized by %s", runID, c.Ordinal, c.TotalChunks, gen.Provider)
		chunkSummaries = append(chunkSummaries, gen.Content)
	}

	if len(chunkSummaries) == 0 {
		return provider.GenerationResult{Success: false, Err: fmt.Errorf("no chunk produced a summary: %w", provider.ErrAllProvidersFailed)}
	}

	synthesis := o.prompts.BuildSynthesisPrompt(classifierContext(meta), meetingType, meta.Date, chunkSummaries)
	synthPctx := pctx
	synthPctx.EstimatedTokens = len(synthesis) / 4
	return o.providers.ProcessWithFallback(ctx, synthesis, strings.Join(chunkSummaries, "\n\n"), synthPctx)
}

func (o *implOrchestrator) processChunk(ctx context.Context, prompt, content string, pctx provider.Context) provider.GenerationResult {
	cheap, err := o.providers.SelectCheapest(ctx)
	if err == nil {
		timeout := time.Duration(cheap.Config().TimeoutSeconds) * time.Second
		chunkCtx, cancel := context.WithTimeout(ctx, timeout)
		gen := cheap.Generate(chunkCtx, prompt, pctx)
		cancel()
		if gen.Success {
			return gen
		}
		o.logger.Warn(ctx, "Cheap backend %s failed on chunk: %v", cheap.Name(), gen.Err)
	}

	return o.providers.ProcessWithFallback(ctx, prompt, content, pctx)
}

// intelligenceBoost rewards the analytics layer for runs where the
// classification and the generated summary reinforce each other.
// Capped at 50.
func (o *implOrchestrator) intelligenceBoost(confidence, qualityScore float64, costClass string, meetingType classifier.MeetingType) int {
	boost := 0

	switch {
	case confidence > 0.8:
		boost += 15
	case confidence > 0.6:
		boost += 10
	default:
		boost += 5
	}

	switch {
	case qualityScore > 0.8:
		boost += 20
	case qualityScore > 0.6:
		boost += 15
	default:
		boost += 5
	}

	routine := o.cfg.IsRoutineType(string(meetingType))
	switch {
	case routine && costClass == "economy", !routine && costClass == "premium":
		boost += 10
	case costClass == "standard":
		boost += 5
	}

	if boost > 50 {
		boost = 50
	}
	return boost
}

func (o *implOrchestrator) recommendations(a quality.Assessment, gen provider.GenerationResult, meetingType classifier.MeetingType) []string {
	var recs []string

	for _, issue := range a.Issues {
		recs = append(recs, "Review: "+issue)
	}
	if a.Confidence == "low" {
		recs = append(recs, "Consider re-running on a premium backend")
	}
	if meetingType == classifier.TypeTechnical && a.TechnicalScore < 0.5 {
		recs = append(recs, "Technical meeting with little technical detail captured; check the transcript quality")
	}
	if o.cfg.IsRoutineType(string(meetingType)) && o.costClass(gen.Provider) == "premium" {
		recs = append(recs, "Routine meeting handled by a premium backend; enable a cheaper backend for cost routing")
	}
	if gen.TwoPass {
		recs = append(recs, "Verify entity names against the transcript; generation used the two-pass protocol")
	}
	return recs
}

func (o *implOrchestrator) costClass(providerName string) string {
	for _, p := range o.cfg.Providers {
		if p.Name == providerName {
			return p.CostClass
		}
	}
	return "standard"
}

func (o *implOrchestrator) begin(path string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, busy := o.inProgress[path]; busy {
		return false
	}
	o.inProgress[path] = struct{}{}
	return true
}

func (o *implOrchestrator) finish(path string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.inProgress, path)
}

func classifierContext(meta transcript.Metadata) classifier.Context {
	return classifier.Context{
		Title:            meta.Title,
		Participants:     meta.Participants,
		DurationEstimate: meta.Duration,
		TimeOfDay:        meta.TimeOfDay,
		DayOfWeek:        meta.DayOfWeek,
		TeamHint:         meta.TeamHint,
	}
}
