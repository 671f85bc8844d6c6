package scene

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/stilllife/internal/engine/lighting"
	"github.com/Faultbox/stilllife/internal/engine/mesh"
)

//go:embed desk.yaml
var deskYAML []byte

// TextureFile names an image to load under a tag.
type TextureFile struct {
	Tag  string `yaml:"tag"`
	File string `yaml:"file"`
}

// Element is one drawn object of the scene.
type Element struct {
	Name      string    `yaml:"name"`
	Mesh      mesh.Kind `yaml:"mesh"`
	Transform `yaml:",inline"`

	Texture  string      `yaml:"texture,omitempty"`
	UVScale  *mgl32.Vec2 `yaml:"uv_scale,omitempty"`
	Material string      `yaml:"material,omitempty"`
	Color    *mgl32.Vec4 `yaml:"color,omitempty"`
}

// State returns the shader state for drawing e.
func (e *Element) State() ObjectState {
	return ObjectState{
		Transform: e.Transform,
		Color:     e.Color,
		Texture:   e.Texture,
		Material:  e.Material,
		UVScale:   e.UVScale,
	}
}

// Description is a complete static scene: the resources to load and the
// ordered list of elements to draw each frame.
type Description struct {
	Textures  []TextureFile `yaml:"textures"`
	Materials []Material    `yaml:"materials"`
	Lights    lighting.Rig  `yaml:"lights"`
	Meshes    []mesh.Kind   `yaml:"meshes"`
	Elements  []Element     `yaml:"elements"`
}

// ErrInvalidDescription is wrapped by every validation failure.
var ErrInvalidDescription = errors.New("invalid scene description")

// DefaultDescription returns the built-in desk scene.
func DefaultDescription() (*Description, error) {
	return ParseDescription(deskYAML)
}

// LoadDescription reads a scene description from a YAML file.
func LoadDescription(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	desc, err := ParseDescription(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return desc, nil
}

// ParseDescription decodes YAML. Elements without a scale get (1, 1, 1).
func ParseDescription(data []byte) (*Description, error) {
	var desc Description
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	for i := range desc.Elements {
		if desc.Elements[i].Scale == (mgl32.Vec3{}) {
			desc.Elements[i].Scale = mgl32.Vec3{1, 1, 1}
		}
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &desc, nil
}

// Validate checks that the description fits the renderer's fixed limits.
// Unknown texture and material tags are allowed; they degrade shading only.
func (d *Description) Validate() error {
	if len(d.Textures) > MaxTextures {
		return fmt.Errorf("%w: %d textures, at most %d", ErrInvalidDescription, len(d.Textures), MaxTextures)
	}
	if err := d.Lights.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDescription, err)
	}
	for _, k := range d.Meshes {
		if !k.Valid() {
			return fmt.Errorf("%w: %v", ErrInvalidDescription, k)
		}
	}
	for i, e := range d.Elements {
		if !e.Mesh.Valid() {
			return fmt.Errorf("%w: element %d (%s): %v", ErrInvalidDescription, i, e.Name, e.Mesh)
		}
	}
	return nil
}
