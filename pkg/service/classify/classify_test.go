package classify_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mnemo-lab/mnemo/pkg/domain/model"
	"github.com/mnemo-lab/mnemo/pkg/domain/types"
	"github.com/mnemo-lab/mnemo/pkg/service/classify"
)

func TestClassifyNilItem(t *testing.T) {
	c := classify.New(nil)
	gt.Value(t, c.Classify(nil)).Equal(types.ScopePersonal)
}

func TestClassifyGotchaAlwaysTeam(t *testing.T) {
	c := classify.New(nil)

	item := &model.MemoryItem{
		Kind: types.MemoryKindGotcha,
		Raw:  "I prefer my own indent style here",
	}
	gt.Value(t, c.Classify(item)).Equal(types.ScopeTeam)
}

func TestClassifyFirstPersonMarkers(t *testing.T) {
	c := classify.New(nil)

	team := &model.MemoryItem{
		Kind: types.MemoryKindPreference,
		Raw:  "we always run the linter before pushing",
	}
	gt.Value(t, c.Classify(team)).Equal(types.ScopeTeam)

	personal := &model.MemoryItem{
		Kind: types.MemoryKindDecision,
		Raw:  "I switched to a darker terminal theme",
	}
	gt.Value(t, c.Classify(personal)).Equal(types.ScopePersonal)
}

func TestClassifyDecisionKeywords(t *testing.T) {
	c := classify.New(nil)

	personal := &model.MemoryItem{
		Kind: types.MemoryKindDecision,
		Raw:  "switched the naming convention to snake_case in local scripts",
	}
	gt.Value(t, c.Classify(personal)).Equal(types.ScopePersonal)

	team := &model.MemoryItem{
		Kind: types.MemoryKindDecision,
		Raw:  "switched the queue consumer to at-least-once delivery",
	}
	gt.Value(t, c.Classify(team)).Equal(types.ScopeTeam)
}

func TestClassifyPreferenceKeywords(t *testing.T) {
	c := classify.New(nil)

	team := &model.MemoryItem{
		Kind: types.MemoryKindPreference,
		Raw:  "always run deployment from the release branch",
	}
	gt.Value(t, c.Classify(team)).Equal(types.ScopeTeam)

	personal := &model.MemoryItem{
		Kind: types.MemoryKindPreference,
		Raw:  "dark mode in the terminal",
	}
	gt.Value(t, c.Classify(personal)).Equal(types.ScopePersonal)
}

func TestClassifyReasoningFallsBackToTeam(t *testing.T) {
	c := classify.New(nil)

	item := &model.MemoryItem{
		Kind: types.MemoryKindReasoning,
		Raw:  "retry loops need jitter to avoid thundering herds",
	}
	gt.Value(t, c.Classify(item)).Equal(types.ScopeTeam)
}

func TestClassifyFallbackUsesCombinedText(t *testing.T) {
	c := classify.New(nil)

	item := &model.MemoryItem{
		Raw:     "keep this in mind",
		Context: "applies to the database migration pipeline",
	}
	gt.Value(t, c.Classify(item)).Equal(types.ScopeTeam)

	plain := &model.MemoryItem{Raw: "sticky note to self"}
	gt.Value(t, c.Classify(plain)).Equal(types.ScopePersonal)
}
