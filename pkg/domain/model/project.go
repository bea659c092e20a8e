package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemo-lab/mnemo/pkg/domain/types"
)

// Project represents a registered project whose conversations are captured
type Project struct {
	ID   types.ProjectID
	Name string
	Root string // filesystem root holding the memory/ directory
}

// ErrProjectNotFound is returned when a project is not found in the registry
var ErrProjectNotFound = goerr.New("project not found")

// ProjectRegistry holds project configurations. It holds settings only,
// not repository or use case instances.
type ProjectRegistry struct {
	entries map[types.ProjectID]*Project
	order   []types.ProjectID // preserves registration order
}

// NewProjectRegistry creates a new empty ProjectRegistry
func NewProjectRegistry() *ProjectRegistry {
	return &ProjectRegistry{
		entries: make(map[types.ProjectID]*Project),
	}
}

// Register adds a project to the registry
func (r *ProjectRegistry) Register(p *Project) {
	if _, exists := r.entries[p.ID]; !exists {
		r.order = append(r.order, p.ID)
	}
	r.entries[p.ID] = p
}

// Get retrieves a project by ID
func (r *ProjectRegistry) Get(id types.ProjectID) (*Project, error) {
	p, ok := r.entries[id]
	if !ok {
		return nil, goerr.Wrap(ErrProjectNotFound, "project not found",
			goerr.V("project_id", id))
	}
	return p, nil
}

// List returns all registered projects in registration order
func (r *ProjectRegistry) List() []*Project {
	result := make([]*Project, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.entries[id])
	}
	return result
}
