// Package capture renders conversation chunks and decisions into dated
// markdown artifacts beneath a project's memory root.
package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemo-lab/mnemo/pkg/domain/model"
	"github.com/mnemo-lab/mnemo/pkg/domain/types"
)

const (
	slugMaxLen = 60
	dirPerm    = 0o755
	filePerm   = 0o644
)

// Writer persists markdown artifacts. Same-day/topic chunks accumulate
// in one file: existing artifacts are appended to, never overwritten.
type Writer struct{}

// NewWriter creates a markdown artifact writer
func NewWriter() *Writer {
	return &Writer{}
}

// WriteChunk renders a conversation chunk to
// memory/conversations/{YYYY-MM-DD}-{slug}.md and returns the path.
func (w *Writer) WriteChunk(root string, chunk *model.Chunk) (string, error) {
	name := chunk.Topic
	if name == "" {
		name = chunk.Title
	}

	dir := filepath.Join(root, "memory", types.EntryTypeConversation.DirName())
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.md",
		chunk.StartTime.Format("2006-01-02"), slugify(name)))

	if err := appendArtifact(dir, path, renderChunk(chunk)); err != nil {
		return "", err
	}
	return path, nil
}

// WriteDecision renders a decision detail to
// memory/decisions/{YYYY-MM-DD}-{slug}.md and returns the path.
func (w *Writer) WriteDecision(root string, dec *model.Decision) (string, error) {
	dir := filepath.Join(root, "memory", types.EntryTypeDecision.DirName())
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.md",
		dec.Date.Format("2006-01-02"), slugify(dec.Title)))

	if err := appendArtifact(dir, path, renderDecision(dec)); err != nil {
		return "", err
	}
	return path, nil
}

// appendArtifact opens the artifact in append mode, creating the
// directory and file on demand. Appends to an existing file are
// preceded by a horizontal-rule separator. The file is closed on all
// paths.
func appendArtifact(dir, path, content string) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return goerr.Wrap(err, "failed to create artifact directory", goerr.V("dir", dir))
	}

	existing := false
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		existing = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return goerr.Wrap(err, "failed to open artifact", goerr.V("path", path))
	}

	if existing {
		content = "\n---\n\n" + content
	}

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return goerr.Wrap(err, "failed to write artifact", goerr.V("path", path))
	}

	if err := f.Close(); err != nil {
		return goerr.Wrap(err, "failed to close artifact", goerr.V("path", path))
	}
	return nil
}

func renderChunk(chunk *model.Chunk) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", chunk.Title)

	sb.WriteString("## Context\n\n")
	fmt.Fprintf(&sb, "- Date: %s\n", chunk.StartTime.Format("2006-01-02"))
	if chunk.Summary != "" {
		fmt.Fprintf(&sb, "- Summary: %s\n", chunk.Summary)
	}
	if len(chunk.Metadata.Projects) > 0 {
		fmt.Fprintf(&sb, "- Projects: %s\n", strings.Join(chunk.Metadata.Projects, ", "))
	}
	sb.WriteString("\n## Exchanges\n\n")

	for _, x := range chunk.Exchanges {
		fmt.Fprintf(&sb, "**User:** %s\n\n", x.User)
		if x.Assistant != "" {
			fmt.Fprintf(&sb, "**Assistant:** %s\n\n", x.Assistant)
		}
	}

	writeListSection(&sb, "Decisions", chunk.Metadata.Decisions)
	writeListSection(&sb, "Related Files", chunk.Metadata.Files)
	writeListSection(&sb, "Commands", chunk.Metadata.Commands)
	writeListSection(&sb, "Related Plans", relatedPlans(chunk))

	return sb.String()
}

func renderDecision(dec *model.Decision) string {
	var sb strings.Builder

	if dec.Permanent {
		sb.WriteString("---\npermanent: true\n---\n\n")
	}

	fmt.Fprintf(&sb, "# %s\n\n", dec.Title)
	fmt.Fprintf(&sb, "- Date: %s\n\n", dec.Date.Format("2006-01-02"))

	if dec.Context != "" {
		fmt.Fprintf(&sb, "## Context\n\n%s\n\n", dec.Context)
	}

	fmt.Fprintf(&sb, "## Reasoning\n\n%s\n", dec.Reasoning)

	if len(dec.Alternatives) > 0 {
		sb.WriteString("\n## Alternatives\n\n")
		for _, alt := range dec.Alternatives {
			fmt.Fprintf(&sb, "- %s\n", alt)
		}
	}

	return sb.String()
}

func writeListSection(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "## %s\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
	sb.WriteString("\n")
}

var phasePattern = regexp.MustCompile(`(?i)\bphase[ -](\d+)\b`)

// relatedPlans maps phase-number mentions in exchange text to the
// conventional plan file paths
func relatedPlans(chunk *model.Chunk) []string {
	seen := make(map[string]struct{})
	for _, x := range chunk.Exchanges {
		for _, m := range phasePattern.FindAllStringSubmatch(x.User+"\n"+x.Assistant, -1) {
			seen[fmt.Sprintf("plans/phase-%s.md", m[1])] = struct{}{}
		}
	}

	if len(seen) == 0 {
		return nil
	}
	plans := make([]string, 0, len(seen))
	for p := range seen {
		plans = append(plans, p)
	}
	sort.Strings(plans)
	return plans
}

var nonSlugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// slugify reduces text to lowercase alphanumerics and hyphens, at most
// slugMaxLen characters
func slugify(text string) string {
	s := nonSlugPattern.ReplaceAllString(strings.ToLower(text), "-")
	s = strings.Trim(s, "-")
	if len(s) > slugMaxLen {
		s = strings.Trim(s[:slugMaxLen], "-")
	}
	if s == "" {
		s = "untitled"
	}
	return s
}
