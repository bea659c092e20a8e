package search

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mnemo-lab/mnemo/pkg/domain/model"
	"github.com/mnemo-lab/mnemo/pkg/domain/types"
)

const snippetMaxLen = 300

// scanFiles is the fallback retrieval tier: a case-insensitive keyword
// scan over the persisted markdown artifacts. Score is the fraction of
// query tokens present in the file.
func scanFiles(root, query string, limit int) ([]model.SearchHit, error) {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return []model.SearchHit{}, nil
	}

	var hits []model.SearchHit

	for _, entryType := range types.AllEntryTypes() {
		dir := filepath.Join(root, "memory", entryType.DirName())
		entries, err := os.ReadDir(dir)
		if err != nil {
			// Missing directories are expected before first capture
			continue
		}

		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
				continue
			}

			raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil || !utf8.Valid(raw) {
				continue
			}

			content := strings.ToLower(string(raw))
			matched := 0
			firstIdx := -1
			for _, tok := range tokens {
				if idx := strings.Index(content, tok); idx >= 0 {
					matched++
					if firstIdx < 0 || idx < firstIdx {
						firstIdx = idx
					}
				}
			}
			if matched == 0 {
				continue
			}

			hits = append(hits, model.SearchHit{
				Text:  snippet(string(raw), firstIdx),
				Score: float64(matched) / float64(len(tokens)),
				Type:  entryType,
			})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	if hits == nil {
		hits = []model.SearchHit{}
	}

	return hits, nil
}

func tokenize(query string) []string {
	parts := strings.Fields(strings.ToLower(strings.TrimSpace(query)))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// snippet cuts a window of the original content around the first match.
// Window edges are pulled onto rune boundaries so multibyte characters
// survive intact.
func snippet(content string, idx int) string {
	start := idx - snippetMaxLen/4
	if start < 0 {
		start = 0
	}
	for start > 0 && !utf8.RuneStart(content[start]) {
		start--
	}
	end := start + snippetMaxLen
	if end > len(content) {
		end = len(content)
	}
	for end < len(content) && !utf8.RuneStart(content[end]) {
		end++
	}

	s := strings.TrimSpace(content[start:end])
	if start > 0 {
		s = "..." + s
	}
	if end < len(content) {
		s += "..."
	}
	return s
}
