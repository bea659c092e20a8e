package segment

import (
	"fmt"
	"strings"

	"github.com/mnemo-lab/mnemo/pkg/domain/model"
	"github.com/mnemo-lab/mnemo/pkg/domain/model/config"
)

const (
	titleMaxLen   = 80
	summaryMaxLen = 100
)

// Chunker accumulates exchanges into topic-coherent chunks. The
// returned chunks are a disjoint partition of the input: concatenating
// their exchange lists in order reproduces the original sequence.
type Chunker struct {
	cfg       *config.SegmentConfig
	detector  *Detector
	extractor *extractor
}

// NewChunker creates a chunk builder with the given heuristics.
// A nil config falls back to the defaults.
func NewChunker(cfg *config.SegmentConfig) *Chunker {
	if cfg == nil {
		cfg = config.DefaultSegmentConfig()
	}
	return &Chunker{
		cfg:       cfg,
		detector:  NewDetector(cfg),
		extractor: newExtractor(cfg),
	}
}

// Chunk splits exchanges into chunks at detected boundaries. The buffer
// flushes when a boundary arrives and the buffer holds at least
// MinChunkSize exchanges, or when the buffer reaches MaxChunkSize. Any
// remaining buffer is flushed unconditionally at end of input.
func (c *Chunker) Chunk(exchanges []*model.Exchange) []*model.Chunk {
	if len(exchanges) == 0 {
		return nil
	}

	var chunks []*model.Chunk
	var buffer []*model.Exchange

	for i, x := range exchanges {
		if i > 0 {
			b := c.detector.Detect(x, exchanges[i-1])
			if b.IsBoundary && len(buffer) >= c.cfg.MinChunkSize {
				chunks = append(chunks, c.build(buffer))
				buffer = nil
			}
		}

		buffer = append(buffer, x)

		if len(buffer) >= c.cfg.MaxChunkSize {
			chunks = append(chunks, c.build(buffer))
			buffer = nil
		}
	}

	if len(buffer) > 0 {
		chunks = append(chunks, c.build(buffer))
	}

	return chunks
}

func (c *Chunker) build(exchanges []*model.Exchange) *model.Chunk {
	first := exchanges[0]
	last := exchanges[len(exchanges)-1]

	title, topic := c.deriveTitle(first)

	return &model.Chunk{
		ID:        model.NewChunkID(exchanges),
		Title:     title,
		Summary:   c.deriveSummary(exchanges),
		Topic:     topic,
		Exchanges: exchanges,
		StartTime: first.Time(),
		EndTime:   last.Time(),
		Metadata:  c.extractor.extract(exchanges),
	}
}

// deriveTitle prefers a hard-boundary command string, then the text up
// to the first question mark, then the first sentence. The topic is the
// command name when present, otherwise the title itself.
func (c *Chunker) deriveTitle(first *model.Exchange) (title, topic string) {
	text := strings.TrimSpace(first.User)

	if strings.HasPrefix(text, c.cfg.CommandPrefix) {
		cmd := normalizeCommand(text)
		return cmd, strings.TrimPrefix(cmd, "/")
	}

	if idx := strings.Index(text, "?"); idx >= 0 {
		t := truncate(text[:idx+1], titleMaxLen)
		return t, t
	}

	t := truncate(firstSentence(text), titleMaxLen)
	return t, t
}

func (c *Chunker) deriveSummary(exchanges []*model.Exchange) string {
	first := exchanges[0]

	var parts []string
	parts = append(parts, truncate(strings.TrimSpace(first.User), summaryMaxLen))

	if s := firstSentence(strings.TrimSpace(first.Assistant)); s != "" {
		parts = append(parts, s)
	}

	if len(exchanges) > 1 {
		parts = append(parts, fmt.Sprintf("%d exchanges in this topic", len(exchanges)))
	}

	return strings.Join(parts, " ")
}

// normalizeCommand strips arguments from a workflow command, keeping
// only the command token itself
func normalizeCommand(text string) string {
	if idx := strings.IndexAny(text, " \t\n"); idx >= 0 {
		return text[:idx]
	}
	return text
}

// firstSentence returns text up to and including the first sentence
// terminator, or the whole text when none is found
func firstSentence(text string) string {
	if idx := strings.IndexAny(text, ".!?\n"); idx >= 0 {
		return strings.TrimSpace(text[:idx+1])
	}
	return text
}

// truncate shortens text to limit runes, never splitting a multibyte
// character
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-3]) + "..."
}
