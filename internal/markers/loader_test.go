package markers_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duneboard/exporter/internal/geometry"
	"github.com/duneboard/exporter/internal/markers"
)

const markersYAML = `
collections:
  - name: Arrakeen
    children:
      - name: "Arrakeen 9"
        objects:
          - [0.1, 0.0, 0.2]
          - [0.3, 0.0, 0.4]
      - name: "Arrakeen Spice"
        objects:
          - [0.5, 0.0, 0.6]
  - name: Carthag
`

func TestLoadBytes(t *testing.T) {
	h, err := markers.LoadBytes([]byte(markersYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"Arrakeen", "Carthag"}, h.Locations())

	top, ok := h.Location("Arrakeen")
	require.True(t, ok)

	fighters, ok := top.Child("Arrakeen 9")
	require.True(t, ok)
	assert.Equal(t, []geometry.Vec3{{0.1, 0, 0.2}, {0.3, 0, 0.4}}, fighters.Objects)

	spice, ok := top.Child("Arrakeen Spice")
	require.True(t, ok)
	assert.Equal(t, []geometry.Vec3{{0.5, 0, 0.6}}, spice.Objects)

	carthag, ok := h.Location("Carthag")
	require.True(t, ok)
	assert.Empty(t, carthag.Children())
}

func TestLoadBytesRejectsEmptyNames(t *testing.T) {
	_, err := markers.LoadBytes([]byte(`
collections:
  - name: ""
`))
	assert.Error(t, err)

	_, err = markers.LoadBytes([]byte(`
collections:
  - name: Arrakeen
    children:
      - name: ""
`))
	assert.Error(t, err)
}

func TestLoadBytesRejectsMalformedYAML(t *testing.T) {
	_, err := markers.LoadBytes([]byte("collections: [broken"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "markers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(markersYAML), 0644))

	h, err := markers.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, h.Locations(), 2)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := markers.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
