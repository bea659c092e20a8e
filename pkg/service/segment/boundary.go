package segment

import (
	"regexp"
	"strings"

	"github.com/mnemo-lab/mnemo/pkg/domain/model"
	"github.com/mnemo-lab/mnemo/pkg/domain/model/config"
	"github.com/mnemo-lab/mnemo/pkg/domain/types"
)

// Detector decides whether a topic boundary exists between two
// consecutive exchanges. Exactly one boundary type is reported per
// call, in priority order hard > soft > semantic.
type Detector struct {
	cfg *config.SegmentConfig
}

// NewDetector creates a boundary detector with the given heuristics.
// A nil config falls back to the defaults.
func NewDetector(cfg *config.SegmentConfig) *Detector {
	if cfg == nil {
		cfg = config.DefaultSegmentConfig()
	}
	return &Detector{cfg: cfg}
}

// Detect evaluates the boundary between prev and curr. The first
// exchange in a sequence never starts a boundary.
func (d *Detector) Detect(curr, prev *model.Exchange) model.Boundary {
	if prev == nil {
		return model.Boundary{}
	}

	if strings.HasPrefix(curr.User, d.cfg.CommandPrefix) {
		return model.Boundary{IsBoundary: true, Type: types.BoundaryHard}
	}

	lowered := strings.ToLower(strings.TrimSpace(curr.User))
	for _, phrase := range d.cfg.TransitionPhrases {
		if strings.HasPrefix(lowered, phrase) {
			return model.Boundary{IsBoundary: true, Type: types.BoundarySoft}
		}
	}

	prevKeywords := significantKeywords(prev.User + " " + prev.Assistant)
	currKeywords := significantKeywords(curr.User + " " + curr.Assistant)

	// Short Q&A turns carry too few keywords for overlap to mean anything
	if len(prevKeywords) < d.cfg.MinKeywords || len(currKeywords) < d.cfg.MinKeywords {
		return model.Boundary{}
	}

	if overlapRatio(prevKeywords, currKeywords) < d.cfg.OverlapThreshold {
		return model.Boundary{IsBoundary: true, Type: types.BoundarySemantic}
	}

	return model.Boundary{}
}

var wordPattern = regexp.MustCompile(`[a-zA-Z0-9]+`)

// significantKeywords extracts the lowercased alphanumeric tokens of
// length greater than 3 from text
func significantKeywords(text string) map[string]struct{} {
	keywords := make(map[string]struct{})
	for _, token := range wordPattern.FindAllString(text, -1) {
		if len(token) > 3 {
			keywords[strings.ToLower(token)] = struct{}{}
		}
	}
	return keywords
}

// overlapRatio is |intersection| / min(|a|, |b|)
func overlapRatio(a, b map[string]struct{}) float64 {
	smaller, larger := a, b
	if len(b) < len(a) {
		smaller, larger = b, a
	}
	if len(smaller) == 0 {
		return 0
	}

	shared := 0
	for k := range smaller {
		if _, ok := larger[k]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(smaller))
}
