// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SceneVertexShader transforms instanced cube vertices.
//
//go:embed scene.vert
var SceneVertexShader string

// SceneFragmentShader shades cubes and light glyphs.
//
//go:embed scene.frag
var SceneFragmentShader string

// HelperVertexShader is the vertex shader for gizmo, arrow and sphere lines.
//
//go:embed helper.vert
var HelperVertexShader string

// HelperFragmentShader is the fragment shader for helper lines.
//
//go:embed helper.frag
var HelperFragmentShader string
