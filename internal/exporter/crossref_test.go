package exporter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duneboard/exporter/internal/exporter"
	"github.com/duneboard/exporter/internal/geometry"
	"github.com/duneboard/exporter/internal/markers"
)

func locationWithSectors(name string, terrain exporter.Terrain, ids ...int) *exporter.LocationRecord {
	sectors := exporter.NewSectorMap()
	for _, id := range ids {
		sectors.Put(id, &exporter.SectorRecord{})
	}
	return &exporter.LocationRecord{Name: name, Terrain: terrain, Sectors: sectors}
}

func TestApplyFillsFightersAndSpice(t *testing.T) {
	top := &markers.Collection{Name: "Arrakeen"}
	top.AddChild(&markers.Collection{
		Name:    "Arrakeen 9",
		Objects: []geometry.Vec3{{0.1, 0, 0.2}, {0.3, 0, 0.4}},
	})
	top.AddChild(&markers.Collection{
		Name:    "Arrakeen Spice",
		Objects: []geometry.Vec3{{0.5, 0, 0.6}, {0.7, 0, 0.8}},
	})
	h := markers.NewHierarchy()
	h.Add(top)

	rec := locationWithSectors("Arrakeen", exporter.TerrainStronghold, 9)
	require.NoError(t, exporter.NewCrossReferencer(h).Apply(rec))

	sec, _ := rec.Sectors.Get(9)
	assert.Equal(t, []geometry.Vec3{{0.1, 0, 0.2}, {0.3, 0, 0.4}}, sec.Fighters)

	// Only the first spice object is retained.
	require.NotNil(t, rec.Spice)
	assert.Equal(t, geometry.Vec3{0.5, 0, 0.6}, *rec.Spice)
}

func TestApplyMissingChildrenAreSoft(t *testing.T) {
	h := markers.NewHierarchy()
	h.Add(&markers.Collection{Name: "Carthag"})

	rec := locationWithSectors("Carthag", exporter.TerrainStronghold, 0)
	require.NoError(t, exporter.NewCrossReferencer(h).Apply(rec))

	sec, _ := rec.Sectors.Get(0)
	assert.Empty(t, sec.Fighters)
	assert.Nil(t, rec.Spice)
}

func TestApplyEmptySpiceCollectionIsNone(t *testing.T) {
	top := &markers.Collection{Name: "Carthag"}
	top.AddChild(&markers.Collection{Name: "Carthag Spice"})
	h := markers.NewHierarchy()
	h.Add(top)

	rec := locationWithSectors("Carthag", exporter.TerrainStronghold, 0)
	require.NoError(t, exporter.NewCrossReferencer(h).Apply(rec))
	assert.Nil(t, rec.Spice)
}

func TestApplyMissingLocationIsFatal(t *testing.T) {
	h := markers.NewHierarchy()
	h.Add(&markers.Collection{Name: "Arrakeen"})

	rec := locationWithSectors("Carthag", exporter.TerrainStronghold, 0)
	err := exporter.NewCrossReferencer(h).Apply(rec)
	assert.ErrorIs(t, err, exporter.ErrLocationNotFound)
}

func TestApplySpiceRecomputedPerSectorPass(t *testing.T) {
	top := &markers.Collection{Name: "Cielago North"}
	top.AddChild(&markers.Collection{
		Name:    "Cielago North Spice",
		Objects: []geometry.Vec3{{1, 0, 1}},
	})
	top.AddChild(&markers.Collection{
		Name:    "Cielago North 1",
		Objects: []geometry.Vec3{{0, 0, 0}},
	})
	h := markers.NewHierarchy()
	h.Add(top)

	rec := locationWithSectors("Cielago North", exporter.TerrainSand, 0, 1, 2)
	require.NoError(t, exporter.NewCrossReferencer(h).Apply(rec))

	// Each sector pass overwrites spice with the same value.
	require.NotNil(t, rec.Spice)
	assert.Equal(t, geometry.Vec3{1, 0, 1}, *rec.Spice)

	sec0, _ := rec.Sectors.Get(0)
	assert.Empty(t, sec0.Fighters)
	sec1, _ := rec.Sectors.Get(1)
	assert.Equal(t, []geometry.Vec3{{0, 0, 0}}, sec1.Fighters)

	// Sector -1 style lookups use the literal id in the child name.
	rec = locationWithSectors("Cielago North", exporter.TerrainSand, exporter.UngroupedSector)
	require.NoError(t, exporter.NewCrossReferencer(h).Apply(rec))
	sec, _ := rec.Sectors.Get(exporter.UngroupedSector)
	assert.Empty(t, sec.Fighters)
}
