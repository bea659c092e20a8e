package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// EntryType classifies a vector store entry by its source category
type EntryType string

const (
	EntryTypeDecision     EntryType = "decision"
	EntryTypeGotcha       EntryType = "gotcha"
	EntryTypeConversation EntryType = "conversation"
)

// entryDirs maps entry types to their directory names beneath the memory root
var entryDirs = map[EntryType]string{
	EntryTypeDecision:     "decisions",
	EntryTypeGotcha:       "gotchas",
	EntryTypeConversation: "conversations",
}

// Validate checks if the EntryType is one of the known categories
func (e EntryType) Validate() error {
	if _, ok := entryDirs[e]; !ok {
		return goerr.New("unknown entry type", goerr.V("type", e))
	}
	return nil
}

// DirName returns the directory name for this entry type beneath the memory root
func (e EntryType) DirName() string {
	return entryDirs[e]
}

// EntryTypeFromDir resolves an entry type from a memory subdirectory name
func EntryTypeFromDir(dir string) (EntryType, bool) {
	for t, d := range entryDirs {
		if d == dir {
			return t, true
		}
	}
	return "", false
}

// AllEntryTypes returns the entry types in their canonical indexing order
func AllEntryTypes() []EntryType {
	return []EntryType{EntryTypeDecision, EntryTypeGotcha, EntryTypeConversation}
}

// String returns the string representation of EntryType
func (e EntryType) String() string {
	return string(e)
}
