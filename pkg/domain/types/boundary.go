package types

// BoundaryType classifies a detected topic boundary between two exchanges
type BoundaryType string

const (
	// BoundaryHard is triggered by an explicit workflow command prefix
	BoundaryHard BoundaryType = "hard"

	// BoundarySoft is triggered by a recognized transition phrase
	BoundarySoft BoundaryType = "soft"

	// BoundarySemantic is triggered by low keyword overlap between exchanges
	BoundarySemantic BoundaryType = "semantic"
)

// String returns the string representation of BoundaryType
func (b BoundaryType) String() string {
	return string(b)
}
