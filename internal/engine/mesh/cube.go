package mesh

import (
	"github.com/Faultbox/lodscene/internal/engine/lod"
)

// cubeFace describes one face of the unit cube by its outward normal and the
// two in-plane axes. u x v == normal, so corners walked (-u,-v) (+u,-v)
// (+u,+v) (-u,+v) are counter-clockwise seen from outside.
type cubeFace struct {
	normal, u, v [3]float32
}

var cubeFaces = [6]cubeFace{
	{normal: [3]float32{0, 0, 1}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{0, 0, -1}, u: [3]float32{-1, 0, 0}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{0, 1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, -1}},
	{normal: [3]float32{0, -1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, 1}},
	{normal: [3]float32{1, 0, 0}, u: [3]float32{0, 0, -1}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{-1, 0, 0}, u: [3]float32{0, 0, 1}, v: [3]float32{0, 1, 0}},
}

// Corner signs in face winding order.
var faceCorners = [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

func (f cubeFace) corner(c int) [3]float32 {
	su, sv := faceCorners[c][0]*0.5, faceCorners[c][1]*0.5
	var p [3]float32
	for i := range p {
		p[i] = f.normal[i]*0.5 + f.u[i]*su + f.v[i]*sv
	}
	return p
}

// Cube returns the unit cube (side 1, centered at the origin) for a tier.
func Cube(t lod.Tier) Mesh {
	switch t {
	case lod.High:
		return faceCube("cube/high", true)
	case lod.Medium:
		return faceCube("cube/medium", false)
	default:
		return sharedCube("cube/low")
	}
}

// faceCube builds 24 vertices with per-face normals. With fullUV each face
// maps the whole texture; otherwise every vertex samples the texture center.
func faceCube(name string, fullUV bool) Mesh {
	m := Mesh{
		Name:     name,
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for _, f := range cubeFaces {
		base := uint32(len(m.Vertices))
		for c := range faceCorners {
			uv := [2]float32{0.5, 0.5}
			if fullUV {
				uv = [2]float32{(faceCorners[c][0] + 1) / 2, (faceCorners[c][1] + 1) / 2}
			}
			m.Vertices = append(m.Vertices, Vertex{
				Position: f.corner(c),
				UV:       uv,
				Normal:   f.normal,
			})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base+2, base+3, base)
	}
	return m
}

// sharedCube builds the 8-corner cube. Normals point away from the center,
// which is the average of the three adjoining face normals.
func sharedCube(name string) Mesh {
	m := Mesh{
		Name:     name,
		Vertices: make([]Vertex, 8),
		Indices:  make([]uint32, 0, 36),
	}
	const inv = 0.57735026 // 1/sqrt(3)
	for i := range m.Vertices {
		var p, n [3]float32
		for axis := range 3 {
			sign := float32(-1)
			if i&(1<<axis) != 0 {
				sign = 1
			}
			p[axis] = sign * 0.5
			n[axis] = sign * inv
		}
		m.Vertices[i] = Vertex{Position: p, UV: [2]float32{0.5, 0.5}, Normal: n}
	}
	for _, f := range cubeFaces {
		var idx [4]uint32
		for c := range faceCorners {
			idx[c] = cornerIndex(f.corner(c))
		}
		m.Indices = append(m.Indices, idx[0], idx[1], idx[2], idx[2], idx[3], idx[0])
	}
	return m
}

func cornerIndex(p [3]float32) uint32 {
	var i uint32
	for axis := range 3 {
		if p[axis] > 0 {
			i |= 1 << axis
		}
	}
	return i
}
