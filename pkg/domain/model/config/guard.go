package config

import "time"

// GuardConfig holds the ingestion safeguard limits of the capture guard
type GuardConfig struct {
	// RatePerSecond is the sustained per-project capture rate
	RatePerSecond float64

	// RateBurst is the per-project burst allowance
	RateBurst int

	// MaxBatchSize is the maximum number of exchanges per capture call
	MaxBatchSize int

	// MaxTextSize is the maximum byte length of a single exchange text
	MaxTextSize int

	// DedupWindow is how long a captured batch digest is remembered
	DedupWindow time.Duration

	// DedupCapacity bounds the per-project dedup window size
	DedupCapacity int

	// ProjectCapacity bounds how many projects keep live guard state
	ProjectCapacity int
}

// DefaultGuardConfig returns the capture guard defaults
func DefaultGuardConfig() *GuardConfig {
	return &GuardConfig{
		RatePerSecond:   2,
		RateBurst:       5,
		MaxBatchSize:    100,
		MaxTextSize:     64 * 1024,
		DedupWindow:     10 * time.Minute,
		DedupCapacity:   256,
		ProjectCapacity: 128,
	}
}
