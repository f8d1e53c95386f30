package chunker

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/quangdm-dev/meeting-flow/internal/transcript"
)

// ShouldChunk reports whether the content exceeds the configured chunk
// size
func (c *implChunker) ShouldChunk(content string) bool {
	return len(content) > c.maxChunkSize
}

// Chunk splits the transcript into ordered, context-annotated chunks.
// Content at or below the threshold yields exactly one chunk equal to
// the input; oversized content yields >= 2 chunks whose concatenation
// preserves segment order, with the last segment of each chunk
// intentionally duplicated at the head of the next one.
func (c *implChunker) Chunk(content string, meta transcript.Metadata) []Chunk {
	if !c.ShouldChunk(content) {
		single := c.annotate(content, 1, 1)
		single.Info = "Complete transcript (single chunk)"
		return []Chunk{single}
	}

	c.logger.Info(context.Background(), "Creating context-aware chunks for large transcript: %s", meta.Title)

	segments := segmentize(content)
	raw := c.pack(segments)
	chunks := c.thread(raw)

	c.logger.Info(context.Background(), "Created %d context-aware chunks", len(chunks))
	return chunks
}

// pack greedily groups segments into chunks bounded by maxChunkSize.
// When a segment would overflow, the chunk closes and the next one is
// seeded with the closing chunk's last segment plus the overflowing
// segment. The duplication is the overlap mechanism.
func (c *implChunker) pack(segments []segment) []string {
	var chunks []string
	var current []segment
	currentSize := 0

	for _, seg := range segments {
		segSize := len(seg.content)

		if currentSize+segSize > c.maxChunkSize && len(current) > 0 {
			chunks = append(chunks, joinSegments(current))

			if c.overlapSize > 0 {
				carry := current[len(current)-1]
				current = []segment{carry, seg}
				currentSize = len(carry.content) + segSize
			} else {
				current = []segment{seg}
				currentSize = segSize
			}
			continue
		}

		current = append(current, seg)
		currentSize += segSize
	}

	if len(current) > 0 {
		chunks = append(chunks, joinSegments(current))
	}

	return chunks
}

// tail returns at most n trailing bytes of s, trimmed forward to the
// nearest rune boundary so a multi-byte character is never cut in half
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := len(s) - n
	for cut < len(s) && !utf8.RuneStart(s[cut]) {
		cut++
	}
	return s[cut:]
}

func joinSegments(segments []segment) string {
	parts := make([]string, len(segments))
	for i, seg := range segments {
		parts[i] = seg.content
	}
	return strings.Join(parts, "\n\n")
}

// thread annotates each raw chunk and threads the carried context and
// raw overlap text forward from its predecessor
func (c *implChunker) thread(raw []string) []Chunk {
	total := len(raw)
	chunks := make([]Chunk, 0, total)

	for i, content := range raw {
		chunk := c.annotate(content, i+1, total)

		if i > 0 {
			chunk.CarriedContext = carriedContextOf(chunks[i-1])
			if c.overlapSize > 0 {
				chunk.OverlapText = tail(raw[i-1], c.overlapSize)
			}
		}

		chunks = append(chunks, chunk)
	}

	return chunks
}

func (c *implChunker) annotate(content string, ordinal, total int) Chunk {
	entities := extractEntities(content)
	discussions := identifyDiscussions(content)
	topic := topicSummary(entities, discussions)

	return Chunk{
		Ordinal:      ordinal,
		TotalChunks:  total,
		Content:      content,
		KeyEntities:  entities,
		Decisions:    extractDecisions(content),
		Actions:      extractActions(content),
		TopicSummary: topic,
		Info:         fmt.Sprintf("Chunk %d/%d - Topic: %s", ordinal, total, topic),
	}
}
