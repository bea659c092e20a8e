package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// ProjectID represents a unique identifier for a registered project
type ProjectID string

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks if the ProjectID is valid
func (p ProjectID) Validate() error {
	if p == "" {
		return goerr.New("project ID cannot be empty")
	}
	if !idPattern.MatchString(string(p)) {
		return goerr.New("project ID must be lowercase alphanumeric with hyphens", goerr.V("id", p))
	}
	return nil
}

// String returns the string representation of ProjectID
func (p ProjectID) String() string {
	return string(p)
}
