package capture_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/mnemo-lab/mnemo/pkg/domain/model"
	"github.com/mnemo-lab/mnemo/pkg/service/capture"
)

func testChunk(ts time.Time) *model.Chunk {
	exchanges := []*model.Exchange{
		{User: "Should we cache session tokens?", Assistant: "Yes, with a short TTL.", Timestamp: ts.UnixMilli()},
		{User: "What TTL works for phase 2 rollout?", Assistant: "Five minutes matches the gateway.", Timestamp: ts.Add(time.Minute).UnixMilli()},
	}
	return &model.Chunk{
		ID:        model.NewChunkID(exchanges),
		Title:     "Should we cache session tokens?",
		Summary:   "Caching discussion. 2 exchanges in this topic",
		Topic:     "session token caching",
		Exchanges: exchanges,
		StartTime: ts,
		EndTime:   ts.Add(time.Minute),
		Metadata: model.ChunkMetadata{
			Files:     []string{"internal/session/cache.go"},
			Commands:  []string{"/tlc:test"},
			Decisions: []string{"cache session tokens with short TTL"},
		},
	}
}

func TestWriteChunkRoundTrip(t *testing.T) {
	root := t.TempDir()
	w := capture.NewWriter()

	ts := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	chunk := testChunk(ts)

	path, err := w.WriteChunk(root, chunk)
	gt.NoError(t, err).Required()

	gt.Value(t, filepath.Base(path)).Equal("2026-03-14-session-token-caching.md")

	raw, err := os.ReadFile(path)
	gt.NoError(t, err).Required()
	content := string(raw)

	// Every exchange's user and assistant text must appear verbatim
	for _, x := range chunk.Exchanges {
		gt.String(t, content).Contains(x.User)
		gt.String(t, content).Contains(x.Assistant)
	}

	gt.String(t, content).Contains("## Decisions")
	gt.String(t, content).Contains("cache session tokens with short TTL")
	gt.String(t, content).Contains("## Related Files")
	gt.String(t, content).Contains("internal/session/cache.go")
	gt.String(t, content).Contains("## Commands")

	// Phase mention in the second exchange maps to a plan path
	gt.String(t, content).Contains("plans/phase-2.md")
}

func TestWriteChunkAppendsSameDayTopic(t *testing.T) {
	root := t.TempDir()
	w := capture.NewWriter()

	ts := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	first, err := w.WriteChunk(root, testChunk(ts))
	gt.NoError(t, err).Required()

	second, err := w.WriteChunk(root, testChunk(ts.Add(2*time.Hour)))
	gt.NoError(t, err).Required()

	gt.Value(t, second).Equal(first)

	raw, err := os.ReadFile(first)
	gt.NoError(t, err).Required()

	content := string(raw)
	gt.String(t, content).Contains("\n---\n")
	gt.Number(t, strings.Count(content, "# Should we cache session tokens?")).Equal(2)
}

func TestWriteDecisionPermanentFrontmatter(t *testing.T) {
	root := t.TempDir()
	w := capture.NewWriter()

	dec := &model.Decision{
		Title:        "Use Postgres for the event store",
		Reasoning:    "Postgres gives us transactional upserts and mature tooling.",
		Context:      "Evaluated during the storage review.",
		Alternatives: []string{"SQLite", "DynamoDB"},
		Permanent:    true,
		Date:         time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}

	path, err := w.WriteDecision(root, dec)
	gt.NoError(t, err).Required()

	raw, err := os.ReadFile(path)
	gt.NoError(t, err).Required()
	content := string(raw)

	gt.String(t, content).HasPrefix("---\npermanent: true\n---")
	gt.String(t, content).Contains("# Use Postgres for the event store")
	gt.String(t, content).Contains("## Reasoning")
	gt.String(t, content).Contains("- SQLite")
}

func TestWriteDecisionWithoutFrontmatter(t *testing.T) {
	root := t.TempDir()
	w := capture.NewWriter()

	dec := &model.Decision{
		Title:     "Pin the linter version",
		Reasoning: "Different versions disagree about formatting.",
		Date:      time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}

	path, err := w.WriteDecision(root, dec)
	gt.NoError(t, err).Required()

	raw, err := os.ReadFile(path)
	gt.NoError(t, err).Required()
	gt.String(t, string(raw)).HasPrefix("# Pin the linter version")
}

func TestSlugLength(t *testing.T) {
	root := t.TempDir()
	w := capture.NewWriter()

	long := strings.Repeat("very long topic name ", 10)
	chunk := testChunk(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	chunk.Topic = long

	path, err := w.WriteChunk(root, chunk)
	gt.NoError(t, err).Required()

	base := strings.TrimSuffix(filepath.Base(path), ".md")
	slug := strings.TrimPrefix(base, "2026-03-14-")
	gt.Number(t, len(slug)).LessOrEqual(60)
}
