package config

// ClassifyConfig holds the keyword tables used by the memory classifier.
// Tables are ordered; matching is case-insensitive substring search.
type ClassifyConfig struct {
	// PersonalKeywords mark formatting/naming/style vocabulary that
	// points at individual taste rather than team knowledge
	PersonalKeywords []string

	// InfraKeywords mark infrastructure and shared-system vocabulary
	// that points at team knowledge
	InfraKeywords []string
}

// DefaultClassifyConfig returns the classifier defaults
func DefaultClassifyConfig() *ClassifyConfig {
	return &ClassifyConfig{
		PersonalKeywords: []string{
			"formatting", "format", "indent", "naming", "style",
			"alias", "shortcut", "keybinding", "color scheme", "font",
			"my editor", "my setup", "prefer tabs", "prefer spaces",
		},
		InfraKeywords: []string{
			"database", "api", "deployment", "deploy", "infrastructure",
			"architecture", "schema", "migration", "security", "auth",
			"pipeline", "docker", "kubernetes", "server",
			"endpoint", "protocol", "cache", "queue", "monitoring",
		},
	}
}
