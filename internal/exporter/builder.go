package exporter

import (
	"fmt"
	"strconv"
	"strings"
)

// TerrainSets holds the static location-name sets driving terrain
// classification. Names absent from both sets classify as Sand.
type TerrainSets struct {
	Strongholds []string
	Rock        []string
}

// Classify returns the terrain class for a location name.
//
// Postcondition: returns exactly one of the three terrain classes; the
// Stronghold set takes precedence if a name appears in both.
func (t TerrainSets) Classify(name string) Terrain {
	for _, s := range t.Strongholds {
		if s == name {
			return TerrainStronghold
		}
	}
	for _, r := range t.Rock {
		if r == name {
			return TerrainRock
		}
	}
	return TerrainSand
}

// ParseGroupName splits a group name into its location name and sector id.
// A name without a ";" suffix maps to UngroupedSector.
//
// Postcondition: returns a non-empty location name and a sector id, or a
// non-nil error for an empty location or malformed sector suffix.
func ParseGroupName(name string) (string, int, error) {
	location, suffix, found := strings.Cut(name, ";")
	if location == "" {
		return "", 0, fmt.Errorf("group name %q has no location", name)
	}
	if !found {
		return location, UngroupedSector, nil
	}
	sector, err := strconv.Atoi(suffix)
	if err != nil {
		return "", 0, fmt.Errorf("group name %q has malformed sector %q: %w", name, suffix, err)
	}
	return location, sector, nil
}

// Builder accumulates resolved groups into the export model. Groups sharing
// a location name feed the same record; re-processing a sector id overwrites
// that sector's record.
type Builder struct {
	model *Model
	sets  TerrainSets
}

// NewBuilder constructs a Builder classifying terrain with the given sets.
func NewBuilder(sets TerrainSets) *Builder {
	return &Builder{
		model: NewModel(),
		sets:  sets,
	}
}

// Add folds one group's resolved geometry into the model.
//
// Precondition: every value in indices must be a valid offset into
// rg.Positions.
// Postcondition: the group's location record exists with its terrain class
// assigned, and the group's sector record holds rg.Positions and indices.
func (b *Builder) Add(rg *ResolvedGroup, indices []int) error {
	location, sector, err := ParseGroupName(rg.Name)
	if err != nil {
		return fmt.Errorf("adding group: %w", err)
	}

	rec, ok := b.model.Get(location)
	if !ok {
		rec = &LocationRecord{
			Name:    location,
			Terrain: b.sets.Classify(location),
			Sectors: NewSectorMap(),
		}
		b.model.Put(rec)
	}

	rec.Sectors.Put(sector, &SectorRecord{
		Vertices: rg.Positions,
		Indices:  indices,
	})
	return nil
}

// Model returns the accumulated model. The builder retains ownership until
// the caller stops adding groups; after that the model must be treated as
// read-only.
func (b *Builder) Model() *Model {
	return b.model
}
