// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// PhongVertexShader transforms scene geometry and forwards normals and UVs.
//
//go:embed phong.vert
var PhongVertexShader string

// PhongFragmentShader shades with a flat colour or a texture and up to four
// point lights plus one directional light.
//
//go:embed phong.frag
var PhongFragmentShader string
