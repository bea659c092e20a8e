package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	domainModel "github.com/mnemo-lab/mnemo/pkg/domain/model"
	domainConfig "github.com/mnemo-lab/mnemo/pkg/domain/model/config"
	"github.com/mnemo-lab/mnemo/pkg/domain/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// AppConfig represents the application configuration loaded from TOML
type AppConfig struct {
	path string

	Projects []Project        `toml:"project"`
	Segment  SegmentOverrides `toml:"segment"`
	Guard    GuardOverrides   `toml:"guard"`
}

// Project represents one registered project configuration
type Project struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
	Root string `toml:"root"`
}

// Validate checks if the Project is valid
func (p *Project) Validate() error {
	id := types.ProjectID(p.ID)
	if err := id.Validate(); err != nil {
		return goerr.Wrap(err, "invalid project ID")
	}
	if p.Name == "" {
		return goerr.New("project name is required", goerr.V("id", p.ID))
	}
	if p.Root == "" {
		return goerr.New("project root is required", goerr.V("id", p.ID))
	}
	return nil
}

// SegmentOverrides tunes the segmentation heuristics from the config file
type SegmentOverrides struct {
	MinChunkSize     int     `toml:"min_chunk_size"`
	MaxChunkSize     int     `toml:"max_chunk_size"`
	MinKeywords      int     `toml:"min_keywords"`
	OverlapThreshold float64 `toml:"overlap_threshold"`
}

// GuardOverrides tunes the capture guard limits from the config file
type GuardOverrides struct {
	RatePerSecond float64 `toml:"rate_per_second"`
	RateBurst     int     `toml:"rate_burst"`
	MaxBatchSize  int     `toml:"max_batch_size"`
}

// Flags returns CLI flags for app configuration
func (a *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to TOML configuration file",
			Sources:     cli.EnvVars("MNEMO_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	projectIDs := make(map[string]bool)
	for _, p := range a.Projects {
		if err := p.Validate(); err != nil {
			return goerr.Wrap(err, "invalid project")
		}
		if projectIDs[p.ID] {
			return goerr.New("duplicate project ID", goerr.V("id", p.ID))
		}
		projectIDs[p.ID] = true
	}

	s := a.Segment
	if s.MinChunkSize < 0 || s.MaxChunkSize < 0 {
		return goerr.New("chunk sizes must not be negative")
	}
	if s.MaxChunkSize > 0 && s.MinChunkSize > s.MaxChunkSize {
		return goerr.New("min_chunk_size must not exceed max_chunk_size",
			goerr.V("min", s.MinChunkSize), goerr.V("max", s.MaxChunkSize))
	}
	if s.OverlapThreshold < 0 || s.OverlapThreshold > 1 {
		return goerr.New("overlap_threshold must be within [0, 1]",
			goerr.V("threshold", s.OverlapThreshold))
	}

	return nil
}

// Load reads and validates the configuration file set by the --config
// flag. A missing flag yields an empty config.
func (a *AppConfig) Load() error {
	if a.path == "" {
		return nil
	}
	return a.LoadFile(a.path)
}

// LoadFile reads and validates a configuration file
func (a *AppConfig) LoadFile(path string) error {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	if err := toml.Unmarshal(data, a); err != nil {
		return goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", path))
	}

	if err := a.Validate(); err != nil {
		return goerr.Wrap(err, "config validation failed", goerr.V("path", path))
	}

	return nil
}

// Registry builds the project registry from the configuration
func (a *AppConfig) Registry() *domainModel.ProjectRegistry {
	registry := domainModel.NewProjectRegistry()
	for _, p := range a.Projects {
		registry.Register(&domainModel.Project{
			ID:   types.ProjectID(p.ID),
			Name: p.Name,
			Root: p.Root,
		})
	}
	return registry
}

// SegmentConfig merges the overrides onto the segmentation defaults
func (a *AppConfig) SegmentConfig() *domainConfig.SegmentConfig {
	cfg := domainConfig.DefaultSegmentConfig()
	if a.Segment.MinChunkSize > 0 {
		cfg.MinChunkSize = a.Segment.MinChunkSize
	}
	if a.Segment.MaxChunkSize > 0 {
		cfg.MaxChunkSize = a.Segment.MaxChunkSize
	}
	if a.Segment.MinKeywords > 0 {
		cfg.MinKeywords = a.Segment.MinKeywords
	}
	if a.Segment.OverlapThreshold > 0 {
		cfg.OverlapThreshold = a.Segment.OverlapThreshold
	}
	return cfg
}

// GuardConfig merges the overrides onto the capture guard defaults
func (a *AppConfig) GuardConfig() *domainConfig.GuardConfig {
	cfg := domainConfig.DefaultGuardConfig()
	if a.Guard.RatePerSecond > 0 {
		cfg.RatePerSecond = a.Guard.RatePerSecond
	}
	if a.Guard.RateBurst > 0 {
		cfg.RateBurst = a.Guard.RateBurst
	}
	if a.Guard.MaxBatchSize > 0 {
		cfg.MaxBatchSize = a.Guard.MaxBatchSize
	}
	return cfg
}
