// Package scene owns the GPU resources of the still-life scene and turns the
// scene description into per-draw shader state.
//
// Textures and materials are insertion-ordered lists looked up by tag.
// Lookup is first match wins: a tag defined twice keeps resolving to its
// first definition.
package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/stilllife/internal/engine/lighting"
	"github.com/Faultbox/stilllife/internal/engine/mesh"
	"github.com/Faultbox/stilllife/internal/engine/texture"
)

// MaxTextures is the number of texture units available to the scene.
const MaxTextures = 16

// NoSlot is returned by FindTextureSlot for an unknown tag.
const NoSlot = -1

// UnsetTag is the tag of a slot that has never been filled.
const UnsetTag = "unset"

// Shader uniform names.
const (
	uniformModel        = "model"
	uniformColor        = "objectColor"
	uniformTexture      = "objectTexture"
	uniformUseTexture   = "bUseTexture"
	uniformUseLighting  = "bUseLighting"
	uniformUVScale      = "UVscale"
	uniformMatAmbient   = "material.ambientColor"
	uniformMatStrength  = "material.ambientStrength"
	uniformMatDiffuse   = "material.diffuseColor"
	uniformMatSpecular  = "material.specularColor"
	uniformMatShininess = "material.shininess"
)

// Errors returned by LoadTexture.
var (
	ErrDecode            = texture.ErrDecode
	ErrUnsupportedFormat = errors.New("unsupported texture format")
	ErrTextureTableFull  = errors.New("texture table full")
)

// FallbackColor is used for objects whose texture cannot be resolved and
// that carry no colour of their own.
var FallbackColor = mgl32.Vec4{1, 1, 1, 1}

// Uniforms is the shader parameter sink.
type Uniforms interface {
	SetMat4(name string, m mgl32.Mat4)
	SetVec2(name string, v mgl32.Vec2)
	SetVec3(name string, v mgl32.Vec3)
	SetVec4(name string, v mgl32.Vec4)
	SetBool(name string, b bool)
	SetInt(name string, i int32)
	SetFloat(name string, f float32)
}

// Decoder reads an image file into raw pixels.
type Decoder interface {
	Decode(path string) (*texture.Image, error)
}

// TextureStore owns GPU texture objects.
type TextureStore interface {
	Upload(img *texture.Image) (uint32, error)
	Bind(unit int, handle uint32)
	Delete(handles ...uint32)
}

// MeshLibrary owns the GPU buffers of the primitive shapes.
type MeshLibrary interface {
	Load(kind mesh.Kind) error
	Draw(kind mesh.Kind)
}

// TextureSlot associates a tag with a GPU texture. The slot index is also
// the texture unit it is bound to.
type TextureSlot struct {
	Tag    string
	Handle uint32
}

// Material holds Phong material parameters.
type Material struct {
	Tag             string     `yaml:"tag"`
	AmbientColor    mgl32.Vec3 `yaml:"ambient_color"`
	AmbientStrength float32    `yaml:"ambient_strength"`
	DiffuseColor    mgl32.Vec3 `yaml:"diffuse_color"`
	SpecularColor   mgl32.Vec3 `yaml:"specular_color"`
	Shininess       float32    `yaml:"shininess"`
}

// Config wires the manager to its collaborators.
type Config struct {
	Uniforms Uniforms
	Decoder  Decoder
	Textures TextureStore
	Meshes   MeshLibrary

	// ResolvePath maps a texture file named by the description to a path
	// on disk. Nil leaves names unchanged.
	ResolvePath func(file string) string

	Logger *zap.Logger
}

// Stats summarises the loaded resources.
type Stats struct {
	Textures  int
	Materials int
	Meshes    int
	Elements  int
}

// Manager is the resource and scene manager.
type Manager struct {
	uniforms Uniforms
	decoder  Decoder
	store    TextureStore
	meshes   MeshLibrary
	resolve  func(file string) string
	log      *zap.Logger

	// Texture table
	slots  [MaxTextures]TextureSlot
	loaded int

	materials []Material

	// Kinds already uploaded
	meshKinds map[mesh.Kind]bool

	elements []Element
}

// New creates a manager with an empty texture table.
func New(cfg Config) *Manager {
	m := &Manager{
		uniforms:  cfg.Uniforms,
		decoder:   cfg.Decoder,
		store:     cfg.Textures,
		meshes:    cfg.Meshes,
		log:       cfg.Logger,
		meshKinds: make(map[mesh.Kind]bool),
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	m.resolve = cfg.ResolvePath
	if m.resolve == nil {
		m.resolve = func(file string) string { return file }
	}
	m.resetSlots()
	return m
}

func (m *Manager) resetSlots() {
	for i := range m.slots {
		m.slots[i] = TextureSlot{Tag: UnsetTag}
	}
	m.loaded = 0
}

// LoadTexture decodes the image at path, uploads it and appends a slot for
// tag. Only 3 and 4 channel images are accepted. The decoded pixels are
// released whether or not the upload succeeds.
func (m *Manager) LoadTexture(path, tag string) error {
	if m.loaded >= MaxTextures {
		m.log.Warn("texture table full", zap.String("tag", tag), zap.String("path", path))
		return fmt.Errorf("texture %q: %w", tag, ErrTextureTableFull)
	}

	img, err := m.decoder.Decode(path)
	if err != nil {
		m.log.Warn("could not load image", zap.String("path", path), zap.Error(err))
		if !errors.Is(err, ErrDecode) {
			err = fmt.Errorf("%w: %v", ErrDecode, err)
		}
		return fmt.Errorf("texture %q: %w", tag, err)
	}
	defer img.Release()

	if img.Channels != 3 && img.Channels != 4 {
		m.log.Warn("unsupported channel count",
			zap.String("path", path),
			zap.Int("channels", img.Channels),
		)
		return fmt.Errorf("texture %q has %d channels: %w", tag, img.Channels, ErrUnsupportedFormat)
	}

	handle, err := m.store.Upload(img)
	if err != nil {
		return fmt.Errorf("uploading texture %q: %w", tag, err)
	}

	m.slots[m.loaded] = TextureSlot{Tag: tag, Handle: handle}
	m.loaded++

	m.log.Info("loaded image",
		zap.String("path", path),
		zap.String("tag", tag),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
		zap.Int("channels", img.Channels),
	)
	return nil
}

// BindAllTextures binds slot i to texture unit i for every loaded slot.
func (m *Manager) BindAllTextures() {
	for i := 0; i < m.loaded; i++ {
		m.store.Bind(i, m.slots[i].Handle)
	}
}

// FindTextureSlot returns the slot of the first texture loaded with tag,
// or NoSlot.
func (m *Manager) FindTextureSlot(tag string) int {
	for i := 0; i < m.loaded; i++ {
		if m.slots[i].Tag == tag {
			return i
		}
	}
	return NoSlot
}

// FindTextureID returns the GPU handle of the first texture loaded with tag.
func (m *Manager) FindTextureID(tag string) (uint32, bool) {
	slot := m.FindTextureSlot(tag)
	if slot == NoSlot {
		return 0, false
	}
	return m.slots[slot].Handle, true
}

// Slots returns a copy of the loaded texture slots in slot order.
func (m *Manager) Slots() []TextureSlot {
	out := make([]TextureSlot, m.loaded)
	copy(out, m.slots[:m.loaded])
	return out
}

// DestroyTextures deletes every loaded GPU texture and empties the table.
func (m *Manager) DestroyTextures() {
	if m.loaded == 0 {
		return
	}
	handles := make([]uint32, 0, m.loaded)
	for i := 0; i < m.loaded; i++ {
		handles = append(handles, m.slots[i].Handle)
	}
	m.store.Delete(handles...)
	m.resetSlots()
}

// DefineMaterial appends mat. A tag that already exists stays bound to its
// first definition.
func (m *Manager) DefineMaterial(mat Material) {
	if _, ok := m.FindMaterial(mat.Tag); ok {
		m.log.Warn("material redefined, first definition stays in effect", zap.String("tag", mat.Tag))
	}
	m.materials = append(m.materials, mat)
}

// FindMaterial returns the first material defined with tag.
func (m *Manager) FindMaterial(tag string) (Material, bool) {
	for _, mat := range m.materials {
		if mat.Tag == tag {
			return mat, true
		}
	}
	return Material{}, false
}

// LoadMesh uploads the geometry for kind unless it is already loaded.
func (m *Manager) LoadMesh(kind mesh.Kind) error {
	if m.meshKinds[kind] {
		m.log.Debug("mesh already loaded", zap.Stringer("kind", kind))
		return nil
	}
	if err := m.meshes.Load(kind); err != nil {
		return fmt.Errorf("loading %s mesh: %w", kind, err)
	}
	m.meshKinds[kind] = true
	return nil
}

// SetObjectState writes the uniforms for the next draw. Texture and flat
// colour shading are exclusive and decided per call: the object is textured
// only when its texture tag resolves.
func (m *Manager) SetObjectState(s ObjectState) {
	u := m.uniforms
	u.SetMat4(uniformModel, s.Transform.Matrix())

	slot := NoSlot
	if s.Texture != "" {
		slot = m.FindTextureSlot(s.Texture)
		if slot == NoSlot {
			m.log.Debug("texture tag not found", zap.String("tag", s.Texture))
		}
	}

	color := FallbackColor
	if s.Color != nil {
		color = *s.Color
	}
	if s.Color != nil || slot == NoSlot {
		u.SetVec4(uniformColor, color)
	}

	if slot != NoSlot {
		u.SetBool(uniformUseTexture, true)
		u.SetInt(uniformTexture, int32(slot))
	} else {
		u.SetBool(uniformUseTexture, false)
	}

	uv := mgl32.Vec2{1, 1}
	if s.UVScale != nil {
		uv = *s.UVScale
	}
	u.SetVec2(uniformUVScale, uv)

	if s.Material == "" {
		return
	}
	mat, ok := m.FindMaterial(s.Material)
	if !ok {
		m.log.Debug("material tag not found", zap.String("tag", s.Material))
		return
	}
	u.SetVec3(uniformMatAmbient, mat.AmbientColor)
	u.SetFloat(uniformMatStrength, mat.AmbientStrength)
	u.SetVec3(uniformMatDiffuse, mat.DiffuseColor)
	u.SetVec3(uniformMatSpecular, mat.SpecularColor)
	u.SetFloat(uniformMatShininess, mat.Shininess)
}

// PrepareScene loads everything desc needs, in order: textures, texture
// binding, materials, lights, meshes. A texture that fails to load is
// logged and skipped. Errors from lights or meshes abort preparation.
func (m *Manager) PrepareScene(desc *Description) error {
	if err := desc.Validate(); err != nil {
		return fmt.Errorf("invalid scene: %w", err)
	}

	for _, t := range desc.Textures {
		if err := m.LoadTexture(m.resolve(t.File), t.Tag); err != nil {
			m.log.Error("texture skipped", zap.String("tag", t.Tag), zap.Error(err))
		}
	}
	m.BindAllTextures()

	for _, mat := range desc.Materials {
		m.DefineMaterial(mat)
	}

	m.SetupLights(&desc.Lights)

	for _, kind := range desc.Meshes {
		if err := m.LoadMesh(kind); err != nil {
			return err
		}
	}
	for _, e := range desc.Elements {
		if !m.meshKinds[e.Mesh] {
			return fmt.Errorf("element %q uses %s mesh which is not loaded", e.Name, e.Mesh)
		}
	}
	m.elements = desc.Elements

	st := m.Stats()
	m.log.Info("scene prepared",
		zap.Int("textures", st.Textures),
		zap.Int("materials", st.Materials),
		zap.Int("meshes", st.Meshes),
		zap.Int("elements", st.Elements),
	)
	return nil
}

// SetupLights enables lighting and uploads rig.
func (m *Manager) SetupLights(rig *lighting.Rig) {
	m.uniforms.SetBool(uniformUseLighting, true)
	rig.Apply(m.uniforms)
}

// RenderFrame draws every scene element in list order.
func (m *Manager) RenderFrame() {
	for i := range m.elements {
		e := &m.elements[i]
		m.SetObjectState(e.State())
		m.meshes.Draw(e.Mesh)
	}
}

// Stats reports how many resources are loaded.
func (m *Manager) Stats() Stats {
	return Stats{
		Textures:  m.loaded,
		Materials: len(m.materials),
		Meshes:    len(m.meshKinds),
		Elements:  len(m.elements),
	}
}

// Close releases the GPU textures. Mesh buffers belong to the mesh library.
func (m *Manager) Close() {
	m.DestroyTextures()
}
