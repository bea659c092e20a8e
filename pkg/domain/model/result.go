package model

import (
	"github.com/mnemo-lab/mnemo/pkg/domain/types"
)

// CaptureResult summarizes one capture call
type CaptureResult struct {
	Captured     int  `json:"captured"`
	Deduplicated bool `json:"deduplicated,omitempty"`
}

// IndexResult summarizes one indexing run. Indexed + Skipped + Errors
// always equals the number of candidate files processed.
type IndexResult struct {
	Indexed int `json:"indexed"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// Total returns the number of candidates accounted for by this result
func (r *IndexResult) Total() int {
	return r.Indexed + r.Skipped + r.Errors
}

// IndexProgress reports running progress of an indexing run
type IndexProgress struct {
	Indexed int
	Total   int
}

// FileResult is the outcome of indexing a single file or chunk
type FileResult struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

// SearchHit is one scored search result
type SearchHit struct {
	Text  string          `json:"text"`
	Score float64         `json:"score"`
	Type  types.EntryType `json:"type"`
}

// SearchResult is the response of the search service. Source records
// which retrieval tier answered; empty Results is not an error.
type SearchResult struct {
	Results []SearchHit        `json:"results"`
	Source  types.SearchSource `json:"source"`
}
