package indexer

import (
	"regexp"
	"strings"
)

var (
	codeFencePattern = regexp.MustCompile("(?s)```.*?```")
	inlineCodePat    = regexp.MustCompile("`([^`]*)`")
	headingPattern   = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	emphasisPattern  = regexp.MustCompile(`(\*\*|__|\*|_)([^*_]+?)(\*\*|__|\*|_)`)
	linkPattern      = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	listPattern      = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	rulePattern      = regexp.MustCompile(`(?m)^-{3,}\s*$`)
	blankRunPattern  = regexp.MustCompile(`\n{3,}`)
)

// cleanText strips markdown syntax while preserving the words, so the
// embedding sees prose rather than markup
func cleanText(markdown string) string {
	s := codeFencePattern.ReplaceAllString(markdown, " ")
	s = inlineCodePat.ReplaceAllString(s, "$1")
	s = linkPattern.ReplaceAllString(s, "$1")
	s = emphasisPattern.ReplaceAllString(s, "$2")
	s = headingPattern.ReplaceAllString(s, "")
	s = listPattern.ReplaceAllString(s, "")
	s = rulePattern.ReplaceAllString(s, "")
	s = blankRunPattern.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
