package config

// SegmentConfig holds the tunable heuristics of boundary detection and
// chunk building. The overlap threshold and minimum keyword count are
// empirically chosen defaults; they are configuration, not constants.
type SegmentConfig struct {
	// MinChunkSize is the minimum number of exchanges before a boundary
	// may flush the working buffer
	MinChunkSize int

	// MaxChunkSize is the hard buffer limit; reaching it always flushes
	MaxChunkSize int

	// MinKeywords is the minimum number of significant keywords both
	// exchanges must carry before semantic comparison is meaningful
	MinKeywords int

	// OverlapThreshold declares a semantic boundary when the keyword
	// overlap ratio falls below it
	OverlapThreshold float64

	// CommandPrefix marks a hard boundary when the user text starts
	// with it (workflow command marker)
	CommandPrefix string

	// TransitionPhrases are the soft boundary markers, checked in order
	// against the lowercased start of the user text
	TransitionPhrases []string

	// DecisionPatterns are ordered regular expressions whose first
	// capture group extracts a decision statement from exchange text
	DecisionPatterns []string
}

// DefaultSegmentConfig returns the segmentation defaults
func DefaultSegmentConfig() *SegmentConfig {
	return &SegmentConfig{
		MinChunkSize:     1,
		MaxChunkSize:     8,
		MinKeywords:      5,
		OverlapThreshold: 0.15,
		CommandPrefix:    "/tlc:",
		TransitionPhrases: []string{
			"ok, now",
			"okay, now",
			"next,",
			"moving on",
			"let's move on",
			"switching to",
			"now let's",
			"one more thing",
			"separately,",
			"unrelated,",
			"different topic",
		},
		// Capture stops at clause boundaries so trailing instructions
		// ("..., update the store") don't leak into the decision text
		DecisionPatterns: []string{
			`(?i)let'?s use ([^.,!?\n]+)`,
			`(?i)let'?s go with ([^.,!?\n]+)`,
			`(?i)we (?:decided|agreed) to ([^.,!?\n]+)`,
			`(?i)we(?:'ll| will) use ([^.,!?\n]+)`,
			`(?i)decision: ([^.,!?\n]+)`,
			`(?i)going with ([^.,!?\n]+)`,
		},
	}
}
