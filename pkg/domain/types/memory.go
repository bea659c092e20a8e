package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// MemoryKind classifies a freeform memory item
type MemoryKind string

const (
	MemoryKindDecision   MemoryKind = "decision"
	MemoryKindGotcha     MemoryKind = "gotcha"
	MemoryKindPreference MemoryKind = "preference"
	MemoryKindReasoning  MemoryKind = "reasoning"
)

// Validate checks if the MemoryKind is one of the known kinds
func (m MemoryKind) Validate() error {
	switch m {
	case MemoryKindDecision, MemoryKindGotcha, MemoryKindPreference, MemoryKindReasoning:
		return nil
	}
	return goerr.New("unknown memory kind", goerr.V("kind", m))
}

// String returns the string representation of MemoryKind
func (m MemoryKind) String() string {
	return string(m)
}

// Scope is the derived sharing classification of a memory item
type Scope string

const (
	// ScopeTeam marks knowledge that should be shared with the whole team
	ScopeTeam Scope = "team"

	// ScopePersonal marks knowledge that stays with the individual
	ScopePersonal Scope = "personal"
)

// String returns the string representation of Scope
func (s Scope) String() string {
	return string(s)
}
