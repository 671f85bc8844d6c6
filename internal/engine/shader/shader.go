// Package shader compiles GLSL programs and exposes them as a named-uniform
// parameter sink.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/stilllife/internal/engine/shader/shaders"
)

// CompileProgram compiles vertex and fragment shaders and links them into a program.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vert, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(frag)

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		msg := infoLog(logLen, func(buf *uint8) { gl.GetProgramInfoLog(program, logLen, nil, buf) })
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", msg)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(sh, 1, csource, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		msg := infoLog(logLen, func(buf *uint8) { gl.GetShaderInfoLog(sh, logLen, nil, buf) })
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("%s shader: %s", name, msg)
	}

	return sh, nil
}

func infoLog(length int32, read func(buf *uint8)) string {
	if length <= 0 {
		return "no info log"
	}
	buf := make([]byte, length)
	read(&buf[0])
	return gl.GoStr(&buf[0])
}

// Program is a linked shader program with a cache of uniform locations.
// Setters make the program current before writing.
type Program struct {
	id        uint32
	locations map[string]int32
	log       *zap.Logger
}

// NewPhong compiles the scene's Phong program.
func NewPhong(log *zap.Logger) (*Program, error) {
	return New(shaders.PhongVertexShader, shaders.PhongFragmentShader, log)
}

// New compiles and links a program.
func New(vertexSrc, fragmentSrc string, log *zap.Logger) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	log.Debug("shader program created", zap.Uint32("program", id))
	return &Program{id: id, locations: make(map[string]int32), log: log}, nil
}

// ID returns the GL program name.
func (p *Program) ID() uint32 { return p.id }

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// Location returns the cached location of a uniform. Unknown or inactive
// uniforms resolve to -1, which GL ignores on write.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if loc < 0 {
		p.log.Debug("uniform not found", zap.String("name", name))
	}
	p.locations[name] = loc
	return loc
}

// SetMat4 sets a mat4 uniform.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	p.Use()
	gl.UniformMatrix4fv(p.Location(name), 1, false, &m[0])
}

// SetVec2 sets a vec2 uniform.
func (p *Program) SetVec2(name string, v mgl32.Vec2) {
	p.Use()
	gl.Uniform2f(p.Location(name), v[0], v[1])
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	p.Use()
	gl.Uniform3f(p.Location(name), v[0], v[1], v[2])
}

// SetVec4 sets a vec4 uniform.
func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	p.Use()
	gl.Uniform4f(p.Location(name), v[0], v[1], v[2], v[3])
}

// SetBool sets a bool uniform.
func (p *Program) SetBool(name string, b bool) {
	var v int32
	if b {
		v = 1
	}
	p.SetInt(name, v)
}

// SetInt sets an int uniform.
func (p *Program) SetInt(name string, i int32) {
	p.Use()
	gl.Uniform1i(p.Location(name), i)
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, f float32) {
	p.Use()
	gl.Uniform1f(p.Location(name), f)
}
