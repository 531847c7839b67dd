// Package geometry provides the mesh, face, and vertex-group types shared by
// the scene host and the export pipeline.
package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is a 3D position in board space. Positions carry the authoring tool's
// native float32 precision end to end; the pipeline never rounds them.
type Vec3 = mgl32.Vec3

// Face is one triangle, referencing mesh vertices by global index.
type Face [3]int

// VertexGroup is a named, ordered subset of a mesh's vertices designated for
// export. Faces is the host's face-selection state for the group; when empty,
// the face selection is derived as the faces fully contained in Vertices.
type VertexGroup struct {
	// Name encodes the target location, optionally with a sector suffix
	// (e.g. "Arrakeen" or "Arrakeen;2").
	Name string
	// Vertices lists global vertex indices in mesh iteration order.
	Vertices []int
	// Faces optionally lists the faces the host marks selected for this
	// group. It is allowed to disagree with Vertices; see the topology
	// extraction policies for how a disagreement is handled.
	Faces []Face
}

// Mesh is a triangle mesh with named vertex groups.
type Mesh struct {
	// Vertices holds all positions, in the host's native iteration order.
	Vertices []Vec3
	// Faces holds all triangles as global vertex index triples.
	Faces []Face
	// Groups holds the named selection groups, in declaration order.
	Groups []VertexGroup
}

// Validate checks internal consistency of the mesh.
//
// Postcondition: returns nil iff every face and group vertex index is a valid
// offset into Vertices, every group face index triple is in range, and group
// names are unique and non-empty.
func (m *Mesh) Validate() error {
	for i, f := range m.Faces {
		for _, v := range f {
			if v < 0 || v >= len(m.Vertices) {
				return fmt.Errorf("face %d references vertex %d, mesh has %d vertices", i, v, len(m.Vertices))
			}
		}
	}

	seen := make(map[string]bool, len(m.Groups))
	for _, g := range m.Groups {
		if g.Name == "" {
			return fmt.Errorf("vertex group with empty name")
		}
		if seen[g.Name] {
			return fmt.Errorf("duplicate vertex group %q", g.Name)
		}
		seen[g.Name] = true

		for _, v := range g.Vertices {
			if v < 0 || v >= len(m.Vertices) {
				return fmt.Errorf("group %q references vertex %d, mesh has %d vertices", g.Name, v, len(m.Vertices))
			}
		}
		for j, f := range g.Faces {
			for _, v := range f {
				if v < 0 || v >= len(m.Vertices) {
					return fmt.Errorf("group %q face %d references vertex %d, mesh has %d vertices", g.Name, j, v, len(m.Vertices))
				}
			}
		}
	}
	return nil
}

// GroupByName returns the vertex group with the given name, if one exists.
//
// Postcondition: returns (group, true) if found, or (nil, false) otherwise.
func (m *Mesh) GroupByName(name string) (*VertexGroup, bool) {
	for i := range m.Groups {
		if m.Groups[i].Name == name {
			return &m.Groups[i], true
		}
	}
	return nil, false
}
