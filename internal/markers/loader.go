package markers

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/duneboard/exporter/internal/geometry"
)

// yamlMarkersFile is the top-level YAML structure for marker files.
type yamlMarkersFile struct {
	Collections []yamlCollection `yaml:"collections"`
}

// yamlCollection is the YAML representation of a top-level collection.
type yamlCollection struct {
	Name     string       `yaml:"name"`
	Objects  [][3]float32 `yaml:"objects"`
	Children []yamlChild  `yaml:"children"`
}

// yamlChild is the YAML representation of a child collection. Children nest
// only one level deep; the hierarchy has no deeper structure.
type yamlChild struct {
	Name    string       `yaml:"name"`
	Objects [][3]float32 `yaml:"objects"`
}

// LoadFile reads and validates a markers YAML file.
//
// Precondition: path must point to a valid YAML markers file.
// Postcondition: returns a Hierarchy or a non-nil error.
func LoadFile(path string) (*Hierarchy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading markers file %s: %w", path, err)
	}
	h, err := LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading markers from %s: %w", path, err)
	}
	return h, nil
}

// LoadBytes parses a marker hierarchy from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the markers schema.
// Postcondition: returns a non-nil Hierarchy or a non-nil error.
func LoadBytes(data []byte) (*Hierarchy, error) {
	var file yamlMarkersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing markers YAML: %w", err)
	}

	h := NewHierarchy()
	for _, yc := range file.Collections {
		if yc.Name == "" {
			return nil, fmt.Errorf("top-level collection with empty name")
		}
		c := &Collection{
			Name:    yc.Name,
			Objects: convertPositions(yc.Objects),
		}
		for _, child := range yc.Children {
			if child.Name == "" {
				return nil, fmt.Errorf("collection %q has a child with empty name", yc.Name)
			}
			c.AddChild(&Collection{
				Name:    child.Name,
				Objects: convertPositions(child.Objects),
			})
		}
		h.Add(c)
	}
	return h, nil
}

func convertPositions(raw [][3]float32) []geometry.Vec3 {
	if len(raw) == 0 {
		return nil
	}
	out := make([]geometry.Vec3, len(raw))
	for i, p := range raw {
		out[i] = geometry.Vec3{p[0], p[1], p[2]}
	}
	return out
}
