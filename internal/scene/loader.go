package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/duneboard/exporter/internal/geometry"
)

// yamlSceneFile is the top-level YAML structure for scene files.
type yamlSceneFile struct {
	Mesh   yamlMesh    `yaml:"mesh"`
	Groups []yamlGroup `yaml:"groups"`
}

// yamlMesh is the YAML representation of the triangle mesh.
type yamlMesh struct {
	Vertices [][3]float32 `yaml:"vertices"`
	Faces    [][3]int     `yaml:"faces"`
}

// yamlGroup is the YAML representation of one vertex group.
type yamlGroup struct {
	Name     string   `yaml:"name"`
	Vertices []int    `yaml:"vertices"`
	Faces    [][3]int `yaml:"faces"`
}

// LoadFile reads and validates a scene YAML file.
//
// Precondition: path must point to a valid YAML scene file.
// Postcondition: returns a validated Scene or a non-nil error.
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file %s: %w", path, err)
	}
	s, err := LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading scene from %s: %w", path, err)
	}
	return s, nil
}

// LoadBytes parses and validates a scene from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the scene schema.
// Postcondition: returns a validated Scene or a non-nil error.
func LoadBytes(data []byte) (*Scene, error) {
	var file yamlSceneFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing scene YAML: %w", err)
	}
	return New(convertYAMLScene(file))
}

func convertYAMLScene(file yamlSceneFile) *geometry.Mesh {
	mesh := &geometry.Mesh{
		Vertices: make([]geometry.Vec3, len(file.Mesh.Vertices)),
		Faces:    make([]geometry.Face, len(file.Mesh.Faces)),
		Groups:   make([]geometry.VertexGroup, len(file.Groups)),
	}
	for i, v := range file.Mesh.Vertices {
		mesh.Vertices[i] = geometry.Vec3{v[0], v[1], v[2]}
	}
	for i, f := range file.Mesh.Faces {
		mesh.Faces[i] = geometry.Face(f)
	}
	for i, g := range file.Groups {
		group := geometry.VertexGroup{
			Name:     g.Name,
			Vertices: g.Vertices,
		}
		for _, f := range g.Faces {
			group.Faces = append(group.Faces, geometry.Face(f))
		}
		mesh.Groups[i] = group
	}
	return mesh
}
