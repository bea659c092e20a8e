// Package frontmatter parses the leading YAML metadata block of
// markdown artifacts.
package frontmatter

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Split separates a leading `---` frontmatter block from the body.
// Missing or malformed frontmatter yields an empty map and the full
// content unchanged; this never fails.
func Split(content string) (map[string]any, string) {
	s := strings.TrimPrefix(content, "\uFEFF")
	if !strings.HasPrefix(s, "---") {
		return map[string]any{}, content
	}

	parts := strings.SplitN(s, "---", 3)
	if len(parts) < 3 {
		return map[string]any{}, content
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(strings.TrimSpace(parts[1])), &raw); err != nil || raw == nil {
		return map[string]any{}, content
	}

	return raw, strings.TrimPrefix(parts[2], "\n")
}

// IsPermanent reports whether the content carries an explicit
// `permanent: true` frontmatter marker
func IsPermanent(content string) bool {
	meta, _ := Split(content)
	v, ok := meta["permanent"].(bool)
	return ok && v
}
