package exporter

import (
	"fmt"
	"sync"

	"github.com/duneboard/exporter/internal/geometry"
	"github.com/duneboard/exporter/internal/scene"
)

// ResolvedGroup is an immutable snapshot of one group's selection: the
// selected vertex positions in read-back order, the global-to-local index
// map derived from that order, and the faces the host marked selected.
type ResolvedGroup struct {
	// Name is the source group name, including any sector suffix.
	Name string
	// Positions are the selected vertices' positions; local index i is the
	// i-th entry.
	Positions []geometry.Vec3
	// LocalIndex maps a global vertex index to its local index.
	LocalIndex map[int]int
	// Faces are the host-selected faces, as global index triples.
	Faces []geometry.Face
}

// Resolver activates one group at a time as the host's sole selection and
// snapshots the result. The host exposes a single global selection, so the
// full deselect/select/read-back sequence for one group must complete before
// the next begins; the Resolver's own lock enforces that.
type Resolver struct {
	mu    sync.Mutex
	scene *scene.Scene
}

// NewResolver constructs a Resolver over the given scene.
//
// Precondition: s must be non-nil.
func NewResolver(s *scene.Scene) *Resolver {
	return &Resolver{scene: s}
}

// Resolve deselects everything, selects the named group, and reads back the
// selection as an immutable snapshot. Deselect-all must precede the group
// select so no prior selection leaks into the read-back.
//
// Postcondition: returns a snapshot whose LocalIndex covers exactly the
// returned Positions, or a non-nil error for an unknown group.
func (r *Resolver) Resolve(name string) (*ResolvedGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scene.DeselectAll()
	if err := r.scene.SelectGroup(name); err != nil {
		return nil, fmt.Errorf("resolving group %q: %w", name, err)
	}

	globals := r.scene.SelectedVertices()
	mesh := r.scene.Mesh()

	rg := &ResolvedGroup{
		Name:       name,
		Positions:  make([]geometry.Vec3, len(globals)),
		LocalIndex: make(map[int]int, len(globals)),
		Faces:      r.scene.SelectedFaces(),
	}
	for local, global := range globals {
		rg.Positions[local] = mesh.Vertices[global]
		rg.LocalIndex[global] = local
	}
	return rg, nil
}
