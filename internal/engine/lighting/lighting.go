// Package lighting holds the Phong light rig uploaded once per scene.
package lighting

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPointLights is the number of point light slots declared in the shader.
const MaxPointLights = 4

// ErrTooManyLights is returned by Validate when a rig exceeds the shader.
var ErrTooManyLights = errors.New("too many point lights")

// Uniforms is the part of a shader program the rig writes to.
type Uniforms interface {
	SetVec3(name string, v mgl32.Vec3)
	SetFloat(name string, f float32)
}

// PointLight is one entry of the shader's lightSources array.
type PointLight struct {
	Position          mgl32.Vec3 `yaml:"position"`
	AmbientColor      mgl32.Vec3 `yaml:"ambient"`
	DiffuseColor      mgl32.Vec3 `yaml:"diffuse"`
	SpecularColor     mgl32.Vec3 `yaml:"specular"`
	FocalStrength     float32    `yaml:"focal_strength"`
	SpecularIntensity float32    `yaml:"specular_intensity"`
}

// DirectionalLight is a light infinitely far away, like the sun.
type DirectionalLight struct {
	Direction mgl32.Vec3 `yaml:"direction"`
	Ambient   mgl32.Vec3 `yaml:"ambient"`
	Diffuse   mgl32.Vec3 `yaml:"diffuse"`
	Specular  mgl32.Vec3 `yaml:"specular"`
}

// Rig is the complete set of lights for a scene.
type Rig struct {
	Points      []PointLight     `yaml:"point"`
	Directional DirectionalLight `yaml:"directional"`
}

// Validate reports a rig that does not fit the shader.
func (r *Rig) Validate() error {
	if len(r.Points) > MaxPointLights {
		return fmt.Errorf("%w: %d, shader supports %d", ErrTooManyLights, len(r.Points), MaxPointLights)
	}
	return nil
}

// Apply writes every light slot. Slots without a light are zeroed so a
// previous scene cannot leave a stale light behind. Lights beyond
// MaxPointLights are ignored.
func (r *Rig) Apply(u Uniforms) {
	for i := 0; i < MaxPointLights; i++ {
		var l PointLight
		if i < len(r.Points) {
			l = r.Points[i]
		}
		prefix := fmt.Sprintf("lightSources[%d].", i)
		u.SetVec3(prefix+"position", l.Position)
		u.SetVec3(prefix+"ambientColor", l.AmbientColor)
		u.SetVec3(prefix+"diffuseColor", l.DiffuseColor)
		u.SetVec3(prefix+"specularColor", l.SpecularColor)
		u.SetFloat(prefix+"focalStrength", l.FocalStrength)
		u.SetFloat(prefix+"specularIntensity", l.SpecularIntensity)
	}

	u.SetVec3("dirLight.direction", r.Directional.Direction)
	u.SetVec3("dirLight.ambient", r.Directional.Ambient)
	u.SetVec3("dirLight.diffuse", r.Directional.Diffuse)
	u.SetVec3("dirLight.specular", r.Directional.Specular)
}
