package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/stilllife/internal/engine/mesh"
	"github.com/Faultbox/stilllife/internal/engine/texture"
)

// journal records calls across all fakes in order.
type journal struct {
	entries []string
}

func (j *journal) add(format string, args ...any) {
	j.entries = append(j.entries, fmt.Sprintf(format, args...))
}

type fakeUniforms struct {
	j      *journal
	mat4s  map[string]mgl32.Mat4
	vec2s  map[string]mgl32.Vec2
	vec3s  map[string]mgl32.Vec3
	vec4s  map[string]mgl32.Vec4
	bools  map[string]bool
	ints   map[string]int32
	floats map[string]float32
}

func newFakeUniforms(j *journal) *fakeUniforms {
	return &fakeUniforms{
		j:      j,
		mat4s:  map[string]mgl32.Mat4{},
		vec2s:  map[string]mgl32.Vec2{},
		vec3s:  map[string]mgl32.Vec3{},
		vec4s:  map[string]mgl32.Vec4{},
		bools:  map[string]bool{},
		ints:   map[string]int32{},
		floats: map[string]float32{},
	}
}

func (u *fakeUniforms) SetMat4(name string, m mgl32.Mat4) {
	u.mat4s[name] = m
	u.j.add("set %s", name)
}

func (u *fakeUniforms) SetVec2(name string, v mgl32.Vec2) { u.vec2s[name] = v }
func (u *fakeUniforms) SetVec3(name string, v mgl32.Vec3) { u.vec3s[name] = v }
func (u *fakeUniforms) SetVec4(name string, v mgl32.Vec4) { u.vec4s[name] = v }
func (u *fakeUniforms) SetBool(name string, b bool)       { u.bools[name] = b }
func (u *fakeUniforms) SetInt(name string, i int32)       { u.ints[name] = i }
func (u *fakeUniforms) SetFloat(name string, f float32)   { u.floats[name] = f }

// fakeDecoder returns an image with the channel count registered for a
// path, or ErrDecode for unknown paths.
type fakeDecoder struct {
	channels map[string]int
	decoded  []*texture.Image
}

func newFakeDecoder() *fakeDecoder {
	return &fakeDecoder{channels: map[string]int{}}
}

func (d *fakeDecoder) Decode(path string) (*texture.Image, error) {
	ch, ok := d.channels[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s: no such file", texture.ErrDecode, path)
	}
	img := &texture.Image{Width: 2, Height: 2, Channels: ch, Pix: make([]byte, 4*ch)}
	d.decoded = append(d.decoded, img)
	return img, nil
}

type fakeStore struct {
	j       *journal
	next    uint32
	bound   map[int]uint32
	deleted []uint32
	fail    error
}

func newFakeStore(j *journal) *fakeStore {
	return &fakeStore{j: j, next: 100, bound: map[int]uint32{}}
}

func (s *fakeStore) Upload(img *texture.Image) (uint32, error) {
	if s.fail != nil {
		return 0, s.fail
	}
	s.next++
	s.j.add("upload %d", s.next)
	return s.next, nil
}

func (s *fakeStore) Bind(unit int, handle uint32) {
	s.bound[unit] = handle
	s.j.add("bind %d=%d", unit, handle)
}

func (s *fakeStore) Delete(handles ...uint32) {
	s.deleted = append(s.deleted, handles...)
}

type fakeMeshes struct {
	j     *journal
	loads map[mesh.Kind]int
	draws []mesh.Kind
}

func newFakeMeshes(j *journal) *fakeMeshes {
	return &fakeMeshes{j: j, loads: map[mesh.Kind]int{}}
}

func (f *fakeMeshes) Load(kind mesh.Kind) error {
	f.loads[kind]++
	f.j.add("load %s", kind)
	return nil
}

func (f *fakeMeshes) Draw(kind mesh.Kind) {
	f.draws = append(f.draws, kind)
	f.j.add("draw %s", kind)
}

type fixture struct {
	j        *journal
	uniforms *fakeUniforms
	decoder  *fakeDecoder
	store    *fakeStore
	meshes   *fakeMeshes
	m        *Manager
}

func newFixture() *fixture {
	j := &journal{}
	f := &fixture{
		j:        j,
		uniforms: newFakeUniforms(j),
		decoder:  newFakeDecoder(),
		store:    newFakeStore(j),
		meshes:   newFakeMeshes(j),
	}
	f.m = New(Config{
		Uniforms: f.uniforms,
		Decoder:  f.decoder,
		Textures: f.store,
		Meshes:   f.meshes,
	})
	return f
}

// image registers path as a decodable image with the given channels.
func (f *fixture) image(path string, channels int) {
	f.decoder.channels[path] = channels
}
