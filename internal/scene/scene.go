// Package scene models the host editing environment: a triangle mesh with
// named vertex groups and a single global "current selection".
package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/duneboard/exporter/internal/geometry"
)

// ErrUnknownGroup is returned when a named vertex group does not exist.
var ErrUnknownGroup = errors.New("unknown vertex group")

// Scene owns a mesh and the host's single mutable selection state. All
// selection operations lock internally, but a full resolve sequence
// (deselect, select, read back) spans several calls; callers performing one
// must hold their own serialization discipline so that two sequences never
// interleave.
type Scene struct {
	mu       sync.Mutex
	mesh     *geometry.Mesh
	selected map[int]bool
	active   string
}

// New constructs a Scene around a validated mesh.
//
// Precondition: mesh must be non-nil.
// Postcondition: returns a Scene with an empty selection, or a validation error.
func New(mesh *geometry.Mesh) (*Scene, error) {
	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("validating mesh: %w", err)
	}
	return &Scene{
		mesh:     mesh,
		selected: make(map[int]bool),
	}, nil
}

// Mesh returns the underlying mesh. Callers must treat it as read-only.
func (s *Scene) Mesh() *geometry.Mesh {
	return s.mesh
}

// Groups returns the group names in declaration order. This is the processing
// order for the export pipeline.
func (s *Scene) Groups() []string {
	names := make([]string, len(s.mesh.Groups))
	for i, g := range s.mesh.Groups {
		names[i] = g.Name
	}
	return names
}

// DeselectAll clears the current selection and the active group.
func (s *Scene) DeselectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[int]bool)
	s.active = ""
}

// SelectGroup marks the named group's vertices selected on top of whatever is
// already selected. Callers wanting exactly one group's selection must call
// DeselectAll first.
//
// Postcondition: returns ErrUnknownGroup (wrapped) if no such group exists.
func (s *Scene) SelectGroup(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.mesh.GroupByName(name)
	if !ok {
		return fmt.Errorf("selecting group %q: %w", name, ErrUnknownGroup)
	}
	for _, v := range g.Vertices {
		s.selected[v] = true
	}
	s.active = name
	return nil
}

// SelectedVertices returns the global indices of all selected vertices in the
// mesh's native iteration order. Downstream local index numbering depends on
// this order; it is never re-sorted.
func (s *Scene) SelectedVertices() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []int
	for i := range s.mesh.Vertices {
		if s.selected[i] {
			out = append(out, i)
		}
	}
	return out
}

// SelectedFaces returns the faces the host marks selected. If the active
// group carries an explicit face list, that list is returned verbatim even
// when it disagrees with the vertex selection; otherwise the face selection
// is derived as every mesh face whose vertices are all selected.
func (s *Scene) SelectedFaces() []geometry.Face {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != "" {
		if g, ok := s.mesh.GroupByName(s.active); ok && len(g.Faces) > 0 {
			out := make([]geometry.Face, len(g.Faces))
			copy(out, g.Faces)
			return out
		}
	}

	var out []geometry.Face
	for _, f := range s.mesh.Faces {
		if s.selected[f[0]] && s.selected[f[1]] && s.selected[f[2]] {
			out = append(out, f)
		}
	}
	return out
}
