package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform places one object. Rotation is in degrees about X, Y then Z.
type Transform struct {
	Scale    mgl32.Vec3 `yaml:"scale"`
	Rotation mgl32.Vec3 `yaml:"rotation"`
	Position mgl32.Vec3 `yaml:"position"`
}

// Matrix returns translate * rotX * rotY * rotZ * scale.
func (t Transform) Matrix() mgl32.Mat4 {
	translation := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotX := mgl32.HomogRotate3DX(mgl32.DegToRad(t.Rotation.X()))
	rotY := mgl32.HomogRotate3DY(mgl32.DegToRad(t.Rotation.Y()))
	rotZ := mgl32.HomogRotate3DZ(mgl32.DegToRad(t.Rotation.Z()))
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translation.Mul4(rotX).Mul4(rotY).Mul4(rotZ).Mul4(scale)
}

// ObjectState is everything the shader needs for one draw.
type ObjectState struct {
	Transform Transform

	// Color is the flat colour used when no texture applies.
	Color *mgl32.Vec4

	// Texture and Material are tags. Empty means none.
	Texture  string
	Material string

	// UVScale defaults to (1, 1) when nil.
	UVScale *mgl32.Vec2
}
