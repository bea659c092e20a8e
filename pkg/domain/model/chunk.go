package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/mnemo-lab/mnemo/pkg/domain/types"
)

// ChunkID is a content-derived identifier for a conversation chunk
type ChunkID string

// NewChunkID derives a deterministic chunk ID from the ordered
// (timestamp, user text) pairs of the chunk's exchanges. Identical
// input always yields the same ID.
func NewChunkID(exchanges []*Exchange) ChunkID {
	h := sha256.New()
	for _, x := range exchanges {
		fmt.Fprintf(h, "%d\x00%s\x00", x.Timestamp, x.User)
	}
	return ChunkID(hex.EncodeToString(h.Sum(nil))[:16])
}

// ChunkMetadata holds the artifacts extracted from a chunk's exchanges.
// Projects, Files and Commands have set semantics; Decisions preserves
// first-seen order after removing exact duplicates.
type ChunkMetadata struct {
	Projects  []string
	Files     []string
	Commands  []string
	Decisions []string
}

// Chunk is a contiguous, topic-coherent group of exchanges with derived
// title, summary and metadata. A chunk always has at least one exchange
// and is immutable after creation.
type Chunk struct {
	ID        ChunkID
	Title     string
	Summary   string
	Topic     string
	Exchanges []*Exchange
	StartTime time.Time
	EndTime   time.Time
	Metadata  ChunkMetadata
}

// Boundary is the outcome of boundary detection between two exchanges
type Boundary struct {
	IsBoundary bool
	Type       types.BoundaryType
}

// PlainText renders the chunk as embedding input: title, summary and
// each exchange's user/assistant text.
func (c *Chunk) PlainText() string {
	var sb strings.Builder
	sb.WriteString(c.Title)
	if c.Summary != "" {
		sb.WriteString("\n")
		sb.WriteString(c.Summary)
	}
	for _, x := range c.Exchanges {
		sb.WriteString("\n")
		sb.WriteString(x.User)
		if x.Assistant != "" {
			sb.WriteString("\n")
			sb.WriteString(x.Assistant)
		}
	}
	return sb.String()
}
