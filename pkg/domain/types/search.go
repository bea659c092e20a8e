package types

// SearchSource identifies which retrieval tier produced a search response
type SearchSource string

const (
	// SearchSourceVector means results came from semantic recall over the vector store
	SearchSourceVector SearchSource = "vector"

	// SearchSourceFile means results came from the plain-text file scan fallback
	SearchSourceFile SearchSource = "file"
)

// String returns the string representation of SearchSource
func (s SearchSource) String() string {
	return string(s)
}
