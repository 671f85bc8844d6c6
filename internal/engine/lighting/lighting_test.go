package lighting

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

type recorder struct {
	vec3s  map[string]mgl32.Vec3
	floats map[string]float32
}

func newRecorder() *recorder {
	return &recorder{vec3s: map[string]mgl32.Vec3{}, floats: map[string]float32{}}
}

func (r *recorder) SetVec3(name string, v mgl32.Vec3) { r.vec3s[name] = v }
func (r *recorder) SetFloat(name string, f float32)   { r.floats[name] = f }

func TestApplyWritesAllSlots(t *testing.T) {
	rig := Rig{
		Points: []PointLight{{
			Position:          mgl32.Vec3{-2.5, 4.5, 6.5},
			AmbientColor:      mgl32.Vec3{0.2, 0.15, 0.1},
			DiffuseColor:      mgl32.Vec3{0.7, 0.5, 0.3},
			SpecularColor:     mgl32.Vec3{0.25, 0.2, 0.1},
			FocalStrength:     1,
			SpecularIntensity: 0.5,
		}},
		Directional: DirectionalLight{Direction: mgl32.Vec3{1, -1, 0}},
	}

	rec := newRecorder()
	rig.Apply(rec)

	// 4 slots * 4 vectors + 4 directional vectors
	if len(rec.vec3s) != 20 {
		t.Errorf("wrote %d vec3 uniforms, want 20", len(rec.vec3s))
	}
	if len(rec.floats) != 8 {
		t.Errorf("wrote %d float uniforms, want 8", len(rec.floats))
	}

	if got := rec.vec3s["lightSources[0].position"]; got != (mgl32.Vec3{-2.5, 4.5, 6.5}) {
		t.Errorf("light 0 position = %v", got)
	}
	if got := rec.floats["lightSources[0].specularIntensity"]; got != 0.5 {
		t.Errorf("light 0 specular intensity = %v", got)
	}
	if got := rec.vec3s["lightSources[3].diffuseColor"]; got != (mgl32.Vec3{}) {
		t.Errorf("unused slot should be zeroed, got %v", got)
	}
	if got := rec.vec3s["dirLight.direction"]; got != (mgl32.Vec3{1, -1, 0}) {
		t.Errorf("directional light = %v", got)
	}
}

func TestValidate(t *testing.T) {
	rig := Rig{Points: make([]PointLight, MaxPointLights)}
	if err := rig.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	rig.Points = append(rig.Points, PointLight{})
	if err := rig.Validate(); !errors.Is(err, ErrTooManyLights) {
		t.Errorf("Validate() = %v, want ErrTooManyLights", err)
	}
}

func TestRigFromYAML(t *testing.T) {
	src := `
point:
  - position: [-0.21, 3.29, 0.6]
    diffuse: [0.85, 0.7, 0.5]
    focal_strength: 1
directional:
  direction: [1, -1, 0]
`
	var rig Rig
	if err := yaml.Unmarshal([]byte(src), &rig); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(rig.Points) != 1 {
		t.Fatalf("got %d point lights, want 1", len(rig.Points))
	}
	if rig.Points[0].Position != (mgl32.Vec3{-0.21, 3.29, 0.6}) {
		t.Errorf("position = %v", rig.Points[0].Position)
	}
	if rig.Directional.Direction != (mgl32.Vec3{1, -1, 0}) {
		t.Errorf("direction = %v", rig.Directional.Direction)
	}
}
