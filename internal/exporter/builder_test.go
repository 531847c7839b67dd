package exporter_test

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/duneboard/exporter/internal/exporter"
	"github.com/duneboard/exporter/internal/geometry"
)

func testTerrainSets() exporter.TerrainSets {
	return exporter.TerrainSets{
		Strongholds: []string{"Arrakeen", "Carthag", "Habbanya Sietch", "Sietch Tabr", "Tuek's Sietch"},
		Rock:        []string{"Shield Wall", "Pasty Mesa", "False Wall East"},
	}
}

func TestParseGroupName(t *testing.T) {
	cases := []struct {
		input    string
		location string
		sector   int
	}{
		{"Arrakeen", "Arrakeen", exporter.UngroupedSector},
		{"Arrakeen;2", "Arrakeen", 2},
		{"Cielago North;0", "Cielago North", 0},
		{"Odd;-3", "Odd", -3},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			location, sector, err := exporter.ParseGroupName(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.location, location)
			assert.Equal(t, tc.sector, sector)
		})
	}
}

func TestParseGroupNameRejectsMalformed(t *testing.T) {
	for _, input := range []string{"", ";2", "Arrakeen;", "Arrakeen;two", "Arrakeen;2;3"} {
		t.Run(input, func(t *testing.T) {
			_, _, err := exporter.ParseGroupName(input)
			assert.Error(t, err)
		})
	}
}

func TestClassifyKnownNames(t *testing.T) {
	sets := testTerrainSets()
	assert.Equal(t, exporter.TerrainStronghold, sets.Classify("Carthag"))
	assert.Equal(t, exporter.TerrainRock, sets.Classify("Shield Wall"))
	assert.Equal(t, exporter.TerrainSand, sets.Classify("The Great Flat"))
}

func TestClassifyIsTotalAndExclusive(t *testing.T) {
	sets := testTerrainSets()
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringOf(rapid.RuneFrom(nil, unicode.Letter, unicode.Space)).Draw(t, "name")
		terrain := sets.Classify(name)
		assert.Contains(t, []exporter.Terrain{
			exporter.TerrainRock,
			exporter.TerrainStronghold,
			exporter.TerrainSand,
		}, terrain)
	})
}

func resolved(name string, positions ...geometry.Vec3) *exporter.ResolvedGroup {
	return &exporter.ResolvedGroup{Name: name, Positions: positions}
}

func TestBuilderGroupsSectorsUnderOneLocation(t *testing.T) {
	b := exporter.NewBuilder(testTerrainSets())

	require.NoError(t, b.Add(resolved("Arrakeen", geometry.Vec3{0, 0, 0}), nil))
	require.NoError(t, b.Add(resolved("Arrakeen;2", geometry.Vec3{1, 0, 0}), nil))

	model := b.Model()
	require.Equal(t, 1, model.Len())

	rec, ok := model.Get("Arrakeen")
	require.True(t, ok)
	assert.Equal(t, "Arrakeen", rec.Name)
	assert.Equal(t, exporter.TerrainStronghold, rec.Terrain)
	assert.Equal(t, []int{exporter.UngroupedSector, 2}, rec.Sectors.IDs())
}

func TestBuilderOverwritesReprocessedSector(t *testing.T) {
	b := exporter.NewBuilder(testTerrainSets())

	require.NoError(t, b.Add(resolved("Carthag;0", geometry.Vec3{0, 0, 0}), []int{}))
	require.NoError(t, b.Add(resolved("Carthag;0", geometry.Vec3{5, 5, 5}), []int{}))

	rec, _ := b.Model().Get("Carthag")
	require.Equal(t, 1, rec.Sectors.Len())
	sec, _ := rec.Sectors.Get(0)
	assert.Equal(t, []geometry.Vec3{{5, 5, 5}}, sec.Vertices)
}

func TestBuilderPreservesFirstSeenLocationOrder(t *testing.T) {
	b := exporter.NewBuilder(testTerrainSets())

	require.NoError(t, b.Add(resolved("Cielago North;0"), nil))
	require.NoError(t, b.Add(resolved("Arrakeen"), nil))
	require.NoError(t, b.Add(resolved("Cielago North;1"), nil))

	assert.Equal(t, []string{"Cielago North", "Arrakeen"}, b.Model().Names())
}

func TestBuilderRejectsMalformedGroupName(t *testing.T) {
	b := exporter.NewBuilder(testTerrainSets())
	assert.Error(t, b.Add(resolved("Arrakeen;east"), nil))
}
