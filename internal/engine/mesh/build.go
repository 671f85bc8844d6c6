package mesh

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Tessellation levels for curved primitives.
const (
	RadialSegments = 36
	SphereStacks   = 18
	TorusRings     = 36
	TorusSides     = 18

	TorusMajorRadius = 1.0
	TorusMinorRadius = 0.25
	TaperedTopRadius = 0.5
)

// Build generates the geometry for a primitive kind in its unit frame:
//   - box, prism, pyramid4: centered, edge length 1
//   - plane: XZ square from -1 to 1 facing +Y
//   - cylinder, cone, tapered cylinder: base on y=0, height 1, base radius 1
//   - sphere: radius 1 at the origin
//   - torus: ring in the XZ plane around the Y axis
//
// Build returns nil for an unknown kind.
func Build(kind Kind) *Mesh {
	switch kind {
	case Box:
		return buildBox()
	case Plane:
		return buildPlane()
	case Cylinder:
		return buildFrustum(Cylinder, 1, 1)
	case Cone:
		return buildFrustum(Cone, 1, 0)
	case TaperedCylinder:
		return buildFrustum(TaperedCylinder, 1, TaperedTopRadius)
	case Prism:
		return buildPrism()
	case Pyramid4:
		return buildPyramid4()
	case Sphere:
		return buildSphere()
	case Torus:
		return buildTorus()
	}
	return nil
}

type builder struct {
	m *Mesh
}

func newBuilder(kind Kind) *builder {
	return &builder{m: &Mesh{
		Kind: kind,
		Bounds: Bounds{
			Min: [3]float32{1e10, 1e10, 1e10},
			Max: [3]float32{-1e10, -1e10, -1e10},
		},
	}}
}

func (b *builder) vertex(pos, normal mgl32.Vec3, u, v float32) uint32 {
	idx := uint32(len(b.m.Vertices))
	b.m.Vertices = append(b.m.Vertices, Vertex{
		Position: pos,
		Normal:   normal,
		TexCoord: [2]float32{u, v},
	})
	for i := 0; i < 3; i++ {
		if pos[i] < b.m.Bounds.Min[i] {
			b.m.Bounds.Min[i] = pos[i]
		}
		if pos[i] > b.m.Bounds.Max[i] {
			b.m.Bounds.Max[i] = pos[i]
		}
	}
	return idx
}

func (b *builder) tri(i0, i1, i2 uint32) {
	b.m.Indices = append(b.m.Indices, i0, i1, i2)
}

// quad adds a flat face. Corners are counter-clockwise seen from outside.
func (b *builder) quad(p0, p1, p2, p3 mgl32.Vec3) {
	n := faceNormal(p0, p1, p2)
	i0 := b.vertex(p0, n, 0, 0)
	i1 := b.vertex(p1, n, 1, 0)
	i2 := b.vertex(p2, n, 1, 1)
	i3 := b.vertex(p3, n, 0, 1)
	b.tri(i0, i1, i2)
	b.tri(i0, i2, i3)
}

// triangle adds a flat triangular face, counter-clockwise seen from outside.
func (b *builder) triangle(p0, p1, p2 mgl32.Vec3) {
	n := faceNormal(p0, p1, p2)
	i0 := b.vertex(p0, n, 0, 0)
	i1 := b.vertex(p1, n, 1, 0)
	i2 := b.vertex(p2, n, 0.5, 1)
	b.tri(i0, i1, i2)
}

func faceNormal(p0, p1, p2 mgl32.Vec3) mgl32.Vec3 {
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}

func buildBox() *Mesh {
	const h = 0.5
	b := newBuilder(Box)
	// +Z, -Z, +X, -X, +Y, -Y
	b.quad(mgl32.Vec3{-h, -h, h}, mgl32.Vec3{h, -h, h}, mgl32.Vec3{h, h, h}, mgl32.Vec3{-h, h, h})
	b.quad(mgl32.Vec3{h, -h, -h}, mgl32.Vec3{-h, -h, -h}, mgl32.Vec3{-h, h, -h}, mgl32.Vec3{h, h, -h})
	b.quad(mgl32.Vec3{h, -h, h}, mgl32.Vec3{h, -h, -h}, mgl32.Vec3{h, h, -h}, mgl32.Vec3{h, h, h})
	b.quad(mgl32.Vec3{-h, -h, -h}, mgl32.Vec3{-h, -h, h}, mgl32.Vec3{-h, h, h}, mgl32.Vec3{-h, h, -h})
	b.quad(mgl32.Vec3{-h, h, h}, mgl32.Vec3{h, h, h}, mgl32.Vec3{h, h, -h}, mgl32.Vec3{-h, h, -h})
	b.quad(mgl32.Vec3{-h, -h, -h}, mgl32.Vec3{h, -h, -h}, mgl32.Vec3{h, -h, h}, mgl32.Vec3{-h, -h, h})
	return b.m
}

func buildPlane() *Mesh {
	b := newBuilder(Plane)
	b.quad(mgl32.Vec3{-1, 0, 1}, mgl32.Vec3{1, 0, 1}, mgl32.Vec3{1, 0, -1}, mgl32.Vec3{-1, 0, -1})
	return b.m
}

// buildFrustum covers cylinder, cone and tapered cylinder: a capped solid of
// revolution from radius bottom at y=0 to radius top at y=1.
func buildFrustum(kind Kind, bottom, top float32) *Mesh {
	b := newBuilder(kind)
	n := RadialSegments

	// Side normals tilt upward when the top is narrower.
	slope := bottom - top
	for i := 0; i < n; i++ {
		t0 := 2 * math32.Pi * float32(i) / float32(n)
		t1 := 2 * math32.Pi * float32(i+1) / float32(n)
		c0, s0 := math32.Cos(t0), math32.Sin(t0)
		c1, s1 := math32.Cos(t1), math32.Sin(t1)
		n0 := mgl32.Vec3{c0, slope, s0}.Normalize()
		n1 := mgl32.Vec3{c1, slope, s1}.Normalize()
		u0 := float32(i) / float32(n)
		u1 := float32(i+1) / float32(n)

		b0 := b.vertex(mgl32.Vec3{bottom * c0, 0, bottom * s0}, n0, u0, 0)
		b1 := b.vertex(mgl32.Vec3{bottom * c1, 0, bottom * s1}, n1, u1, 0)
		t0i := b.vertex(mgl32.Vec3{top * c0, 1, top * s0}, n0, u0, 1)
		if top == 0 {
			b.tri(b0, t0i, b1)
			continue
		}
		t1i := b.vertex(mgl32.Vec3{top * c1, 1, top * s1}, n1, u1, 1)
		b.tri(b0, t0i, t1i)
		b.tri(b0, t1i, b1)
	}

	b.cap(0, bottom, false)
	if top > 0 {
		b.cap(1, top, true)
	}
	return b.m
}

// cap adds a disc at height y. Top caps face +Y, bottom caps face -Y.
func (b *builder) cap(y, radius float32, up bool) {
	normal := mgl32.Vec3{0, -1, 0}
	if up {
		normal = mgl32.Vec3{0, 1, 0}
	}
	center := b.vertex(mgl32.Vec3{0, y, 0}, normal, 0.5, 0.5)
	first := uint32(len(b.m.Vertices))
	for i := 0; i <= RadialSegments; i++ {
		t := 2 * math32.Pi * float32(i) / float32(RadialSegments)
		c, s := math32.Cos(t), math32.Sin(t)
		b.vertex(mgl32.Vec3{radius * c, y, radius * s}, normal, 0.5+0.5*c, 0.5+0.5*s)
	}
	for i := uint32(0); i < RadialSegments; i++ {
		if up {
			b.tri(center, first+i+1, first+i)
		} else {
			b.tri(center, first+i, first+i+1)
		}
	}
}

func buildPrism() *Mesh {
	const h = 0.5
	b := newBuilder(Prism)
	b.triangle(mgl32.Vec3{-h, -h, h}, mgl32.Vec3{h, -h, h}, mgl32.Vec3{0, h, h})
	b.triangle(mgl32.Vec3{h, -h, -h}, mgl32.Vec3{-h, -h, -h}, mgl32.Vec3{0, h, -h})
	b.quad(mgl32.Vec3{-h, -h, -h}, mgl32.Vec3{h, -h, -h}, mgl32.Vec3{h, -h, h}, mgl32.Vec3{-h, -h, h})
	b.quad(mgl32.Vec3{h, -h, h}, mgl32.Vec3{h, -h, -h}, mgl32.Vec3{0, h, -h}, mgl32.Vec3{0, h, h})
	b.quad(mgl32.Vec3{0, h, h}, mgl32.Vec3{0, h, -h}, mgl32.Vec3{-h, -h, -h}, mgl32.Vec3{-h, -h, h})
	return b.m
}

func buildPyramid4() *Mesh {
	const h = 0.5
	b := newBuilder(Pyramid4)
	apex := mgl32.Vec3{0, h, 0}
	b.quad(mgl32.Vec3{-h, -h, -h}, mgl32.Vec3{h, -h, -h}, mgl32.Vec3{h, -h, h}, mgl32.Vec3{-h, -h, h})
	b.triangle(mgl32.Vec3{-h, -h, h}, mgl32.Vec3{h, -h, h}, apex)
	b.triangle(mgl32.Vec3{h, -h, h}, mgl32.Vec3{h, -h, -h}, apex)
	b.triangle(mgl32.Vec3{h, -h, -h}, mgl32.Vec3{-h, -h, -h}, apex)
	b.triangle(mgl32.Vec3{-h, -h, -h}, mgl32.Vec3{-h, -h, h}, apex)
	return b.m
}

func buildSphere() *Mesh {
	b := newBuilder(Sphere)
	for i := 0; i <= SphereStacks; i++ {
		phi := math32.Pi * float32(i) / float32(SphereStacks)
		y, r := math32.Cos(phi), math32.Sin(phi)
		for j := 0; j <= RadialSegments; j++ {
			theta := 2 * math32.Pi * float32(j) / float32(RadialSegments)
			p := mgl32.Vec3{r * math32.Cos(theta), y, r * math32.Sin(theta)}
			b.vertex(p, p.Normalize(), float32(j)/float32(RadialSegments), 1-float32(i)/float32(SphereStacks))
		}
	}
	b.grid(SphereStacks, RadialSegments)
	return b.m
}

func buildTorus() *Mesh {
	b := newBuilder(Torus)
	for i := 0; i <= TorusRings; i++ {
		u := 2 * math32.Pi * float32(i) / float32(TorusRings)
		cu, su := math32.Cos(u), math32.Sin(u)
		for j := 0; j <= TorusSides; j++ {
			v := 2 * math32.Pi * float32(j) / float32(TorusSides)
			cv, sv := math32.Cos(v), math32.Sin(v)
			ring := TorusMajorRadius + TorusMinorRadius*cv
			p := mgl32.Vec3{ring * cu, TorusMinorRadius * sv, ring * su}
			n := mgl32.Vec3{cv * cu, sv, cv * su}
			b.vertex(p, n, float32(i)/float32(TorusRings), float32(j)/float32(TorusSides))
		}
	}
	b.grid(TorusRings, TorusSides)
	return b.m
}

// grid indexes a (rows+1) x (cols+1) vertex lattice laid out row-major.
func (b *builder) grid(rows, cols int) {
	stride := uint32(cols + 1)
	for i := uint32(0); i < uint32(rows); i++ {
		for j := uint32(0); j < uint32(cols); j++ {
			a := i*stride + j
			next := a + stride
			b.tri(a, a+1, next)
			b.tri(a+1, next+1, next)
		}
	}
}
