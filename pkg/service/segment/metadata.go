package segment

import (
	"regexp"
	"sort"
	"strings"

	"github.com/mnemo-lab/mnemo/pkg/domain/model"
	"github.com/mnemo-lab/mnemo/pkg/domain/model/config"
)

var (
	filePattern = regexp.MustCompile(
		`\b[\w./-]*[\w-]+\.(?:go|md|ts|tsx|js|jsx|py|rs|rb|java|sql|sh|yaml|yml|json|toml|css|html|txt|proto)\b`)
	projectPattern = regexp.MustCompile(
		`\b([A-Z][A-Za-z0-9]+)\s+(?:project|module|service|repo|repository|package)\b`)
)

// extractor pulls structured metadata out of a chunk's exchanges
type extractor struct {
	commandPattern   *regexp.Regexp
	decisionPatterns []*regexp.Regexp
}

func newExtractor(cfg *config.SegmentConfig) *extractor {
	patterns := make([]*regexp.Regexp, 0, len(cfg.DecisionPatterns))
	for _, p := range cfg.DecisionPatterns {
		patterns = append(patterns, regexp.MustCompile(p))
	}

	return &extractor{
		commandPattern:   regexp.MustCompile(regexp.QuoteMeta(cfg.CommandPrefix) + `[a-z][a-z0-9-]*`),
		decisionPatterns: patterns,
	}
}

// extract scans the full exchange set. Projects, files and commands get
// set semantics; decisions preserve first-seen order without exact
// duplicates.
func (e *extractor) extract(exchanges []*model.Exchange) model.ChunkMetadata {
	projects := make(map[string]struct{})
	files := make(map[string]struct{})
	commands := make(map[string]struct{})
	seenDecisions := make(map[string]struct{})
	var decisions []string

	for _, x := range exchanges {
		text := x.User + "\n" + x.Assistant

		for _, f := range filePattern.FindAllString(text, -1) {
			files[f] = struct{}{}
		}

		for _, cmd := range e.commandPattern.FindAllString(text, -1) {
			commands[cmd] = struct{}{}
		}

		for _, m := range projectPattern.FindAllStringSubmatch(text, -1) {
			projects[m[1]] = struct{}{}
		}

		for _, p := range e.decisionPatterns {
			for _, m := range p.FindAllStringSubmatch(text, -1) {
				d := strings.TrimSpace(m[1])
				if d == "" {
					continue
				}
				if _, ok := seenDecisions[d]; ok {
					continue
				}
				seenDecisions[d] = struct{}{}
				decisions = append(decisions, d)
			}
		}
	}

	return model.ChunkMetadata{
		Projects:  sortedKeys(projects),
		Files:     sortedKeys(files),
		Commands:  sortedKeys(commands),
		Decisions: decisions,
	}
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
