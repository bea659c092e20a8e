package model

import (
	"time"

	"github.com/mnemo-lab/mnemo/pkg/domain/types"
)

// MemoryItem is a freeform memory item extracted from a conversation.
// Scope is derived by the classifier, not set by the producer.
type MemoryItem struct {
	Kind      types.MemoryKind
	Raw       string
	Reasoning string
	Context   string
	Scope     types.Scope
}

// CombinedText concatenates all textual fields for keyword matching
func (m *MemoryItem) CombinedText() string {
	return m.Raw + " " + m.Reasoning + " " + m.Context
}

// Decision is a decision record rendered into a dated markdown artifact.
// Permanent decisions are flagged with frontmatter and never evicted.
type Decision struct {
	Title        string
	Reasoning    string
	Context      string
	Alternatives []string
	Permanent    bool
	Date         time.Time
}
