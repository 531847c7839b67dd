package exporter

import (
	"errors"
	"fmt"

	"github.com/duneboard/exporter/internal/markers"
)

// ErrLocationNotFound is returned when a location present in the model has no
// top-level collection in the marker hierarchy. Unlike a missing child
// collection, this is fatal and aborts the run.
var ErrLocationNotFound = errors.New("location has no marker collection")

// CrossReferencer fills a location record's fighter and spice positions from
// the marker hierarchy.
type CrossReferencer struct {
	hierarchy *markers.Hierarchy
}

// NewCrossReferencer constructs a CrossReferencer over the given hierarchy.
//
// Precondition: h must be non-nil.
func NewCrossReferencer(h *markers.Hierarchy) *CrossReferencer {
	return &CrossReferencer{hierarchy: h}
}

// Apply resolves markers for every sector of a completed location record.
// Per sector, fighters come from the child collection "<location> <sector>"
// and the location's spice marker from "<location> Spice"; a missing child is
// a soft outcome yielding no fighters or no spice. The spice lookup runs once
// per sector pass and overwrites the previous result, so a multi-sector
// location writes the same value repeatedly.
//
// Postcondition: returns ErrLocationNotFound (wrapped) if the hierarchy has
// no top-level collection for the location; the record is partially updated
// in that case only if earlier sectors succeeded, and callers must discard it.
func (x *CrossReferencer) Apply(rec *LocationRecord) error {
	for _, sector := range rec.Sectors.IDs() {
		top, ok := x.hierarchy.Location(rec.Name)
		if !ok {
			return fmt.Errorf("cross-referencing %q sector %d: %w", rec.Name, sector, ErrLocationNotFound)
		}

		sectorRec, _ := rec.Sectors.Get(sector)
		if fighters, ok := top.Child(fmt.Sprintf("%s %d", rec.Name, sector)); ok {
			sectorRec.Fighters = fighters.Objects
		} else {
			sectorRec.Fighters = nil
		}

		rec.Spice = nil
		if spice, ok := top.Child(rec.Name + " Spice"); ok && len(spice.Objects) > 0 {
			first := spice.Objects[0]
			rec.Spice = &first
		}
	}
	return nil
}
