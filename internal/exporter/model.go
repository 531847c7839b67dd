// Package exporter derives the location/sector data model from a scene's
// vertex groups and marker hierarchy, and serializes it as the engine's RON
// board description.
package exporter

import (
	"github.com/duneboard/exporter/internal/geometry"
)

// Terrain classifies a location. Classification is total: every location
// name falls into exactly one class.
type Terrain string

// The three terrain classes.
const (
	TerrainRock       Terrain = "Rock"
	TerrainStronghold Terrain = "Stronghold"
	TerrainSand       Terrain = "Sand"
)

// UngroupedSector is the sector id for groups whose name carries no explicit
// sector suffix.
const UngroupedSector = -1

// SectorRecord holds one sector's geometry and spawn markers.
type SectorRecord struct {
	// Vertices are the sector's positions, in the host's selection
	// read-back order. Local indices are offsets into this sequence.
	Vertices []geometry.Vec3
	// Indices are flattened face-vertex local indices, three per triangle.
	Indices []int
	// Fighters are the fighter spawn positions for this sector.
	Fighters []geometry.Vec3
}

// LocationRecord holds one location's terrain class, optional spice marker,
// and sectors.
type LocationRecord struct {
	Name    string
	Terrain Terrain
	// Spice is the location's single resource marker position; nil means
	// the location has none.
	Spice   *geometry.Vec3
	Sectors *SectorMap
}

// SectorMap maps sector ids to records, preserving first-insertion order.
// Re-inserting an existing id overwrites the record without changing its
// position in the order.
type SectorMap struct {
	ids     []int
	records map[int]*SectorRecord
}

// NewSectorMap constructs an empty SectorMap.
func NewSectorMap() *SectorMap {
	return &SectorMap{records: make(map[int]*SectorRecord)}
}

// Put inserts or overwrites the record for the given sector id.
func (m *SectorMap) Put(id int, rec *SectorRecord) {
	if _, ok := m.records[id]; !ok {
		m.ids = append(m.ids, id)
	}
	m.records[id] = rec
}

// Get returns the record for the given sector id, if present.
func (m *SectorMap) Get(id int) (*SectorRecord, bool) {
	rec, ok := m.records[id]
	return rec, ok
}

// IDs returns the sector ids in first-insertion order.
func (m *SectorMap) IDs() []int {
	out := make([]int, len(m.ids))
	copy(out, m.ids)
	return out
}

// Len returns the number of sectors.
func (m *SectorMap) Len() int {
	return len(m.ids)
}

// Model is the completed export model: locations keyed by name, preserving
// first-insertion order. The serializer walks it in exactly this order, which
// makes output deterministic for identical input.
type Model struct {
	names   []string
	records map[string]*LocationRecord
}

// NewModel constructs an empty Model.
func NewModel() *Model {
	return &Model{records: make(map[string]*LocationRecord)}
}

// Put inserts or overwrites the record for the given location name.
func (m *Model) Put(rec *LocationRecord) {
	if _, ok := m.records[rec.Name]; !ok {
		m.names = append(m.names, rec.Name)
	}
	m.records[rec.Name] = rec
}

// Get returns the record for the given location name, if present.
func (m *Model) Get(name string) (*LocationRecord, bool) {
	rec, ok := m.records[name]
	return rec, ok
}

// Names returns the location names in first-insertion order.
func (m *Model) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Len returns the number of locations.
func (m *Model) Len() int {
	return len(m.names)
}

// Equal reports whether two models are field-for-field identical, including
// location and sector ordering.
func (m *Model) Equal(other *Model) bool {
	if m.Len() != other.Len() {
		return false
	}
	for i, name := range m.names {
		if other.names[i] != name {
			return false
		}
		a := m.records[name]
		b := other.records[name]
		if !a.equal(b) {
			return false
		}
	}
	return true
}

func (r *LocationRecord) equal(other *LocationRecord) bool {
	if r.Name != other.Name || r.Terrain != other.Terrain {
		return false
	}
	if (r.Spice == nil) != (other.Spice == nil) {
		return false
	}
	if r.Spice != nil && *r.Spice != *other.Spice {
		return false
	}
	if r.Sectors.Len() != other.Sectors.Len() {
		return false
	}
	for i, id := range r.Sectors.ids {
		if other.Sectors.ids[i] != id {
			return false
		}
		if !r.Sectors.records[id].equal(other.Sectors.records[id]) {
			return false
		}
	}
	return true
}

func (s *SectorRecord) equal(other *SectorRecord) bool {
	if len(s.Vertices) != len(other.Vertices) ||
		len(s.Indices) != len(other.Indices) ||
		len(s.Fighters) != len(other.Fighters) {
		return false
	}
	for i, v := range s.Vertices {
		if other.Vertices[i] != v {
			return false
		}
	}
	for i, idx := range s.Indices {
		if other.Indices[i] != idx {
			return false
		}
	}
	for i, f := range s.Fighters {
		if other.Fighters[i] != f {
			return false
		}
	}
	return true
}
