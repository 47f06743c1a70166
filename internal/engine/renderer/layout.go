package renderer

import (
	"github.com/Faultbox/lodscene/internal/engine/batch"
	"github.com/Faultbox/lodscene/internal/engine/mesh"
)

// Vertex attribute locations shared with the scene shader.
const (
	AttribPosition  = 0
	AttribUV        = 1
	AttribNormal    = 2
	AttribModel     = 3 // mat4 occupies 3..6
	AttribSelected  = 7
	AttribIsLight   = 8
	AttribIntensity = 9
)

// attrib describes one glVertexAttribPointer call. Offsets and strides are in bytes.
type attrib struct {
	location uint32
	size     int32
	stride   int32
	offset   int
}

const f32 = 4

var vertexAttribs = []attrib{
	{location: AttribPosition, size: 3, stride: mesh.VertexStride * f32, offset: 0},
	{location: AttribUV, size: 2, stride: mesh.VertexStride * f32, offset: 3 * f32},
	{location: AttribNormal, size: 3, stride: mesh.VertexStride * f32, offset: 5 * f32},
}

var helperAttribs = []attrib{
	{location: 0, size: 3, stride: mesh.HelperStride * f32, offset: 0},
	{location: 1, size: 3, stride: mesh.HelperStride * f32, offset: 3 * f32},
	{location: 2, size: 1, stride: mesh.HelperStride * f32, offset: 6 * f32},
}

// instanceAttribs maps a packed batch onto the instance attribute locations.
func instanceAttribs(off batch.Offsets) [7]attrib {
	var a [7]attrib
	for col := range 4 {
		a[col] = attrib{
			location: uint32(AttribModel + col),
			size:     4,
			stride:   16 * f32,
			offset:   off.Model + col*4*f32,
		}
	}
	a[4] = attrib{location: AttribSelected, size: 1, stride: f32, offset: off.Selected}
	a[5] = attrib{location: AttribIsLight, size: 1, stride: f32, offset: off.IsLight}
	a[6] = attrib{location: AttribIntensity, size: 1, stride: f32, offset: off.Intensity}
	return a
}
