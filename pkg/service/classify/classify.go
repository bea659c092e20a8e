// Package classify labels freeform memory items as team- or
// personal-scoped knowledge using ordered keyword rule tables.
package classify

import (
	"regexp"
	"strings"

	"github.com/mnemo-lab/mnemo/pkg/domain/model"
	"github.com/mnemo-lab/mnemo/pkg/domain/model/config"
	"github.com/mnemo-lab/mnemo/pkg/domain/types"
)

var (
	pluralFirstPerson   = regexp.MustCompile(`(?i)\bwe\b`)
	singularFirstPerson = regexp.MustCompile(`(?i)\bI\b`)
)

// Classifier derives the sharing scope of memory items
type Classifier struct {
	cfg *config.ClassifyConfig
}

// New creates a classifier with the given keyword tables.
// A nil config falls back to the defaults.
func New(cfg *config.ClassifyConfig) *Classifier {
	if cfg == nil {
		cfg = config.DefaultClassifyConfig()
	}
	return &Classifier{cfg: cfg}
}

// Classify evaluates the scope rules in order; the first match wins.
func (c *Classifier) Classify(item *model.MemoryItem) types.Scope {
	if item == nil {
		return types.ScopePersonal
	}

	// Gotchas are inherently team knowledge
	if item.Kind == types.MemoryKindGotcha {
		return types.ScopeTeam
	}

	if pluralFirstPerson.MatchString(item.Raw) {
		return types.ScopeTeam
	}
	if singularFirstPerson.MatchString(item.Raw) {
		return types.ScopePersonal
	}

	switch item.Kind {
	case types.MemoryKindDecision:
		if c.matchesAny(item.Raw, c.cfg.PersonalKeywords) {
			return types.ScopePersonal
		}
		return types.ScopeTeam

	case types.MemoryKindPreference:
		if c.matchesAny(item.Raw, c.cfg.InfraKeywords) {
			return types.ScopeTeam
		}
		return types.ScopePersonal

	case types.MemoryKindReasoning:
		if c.matchesAny(item.Raw, c.cfg.InfraKeywords) {
			return types.ScopeTeam
		}
		if c.matchesAny(item.Raw, c.cfg.PersonalKeywords) {
			return types.ScopePersonal
		}
		return types.ScopeTeam
	}

	if c.matchesAny(item.CombinedText(), c.cfg.InfraKeywords) {
		return types.ScopeTeam
	}
	return types.ScopePersonal
}

func (c *Classifier) matchesAny(text string, keywords []string) bool {
	lowered := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
