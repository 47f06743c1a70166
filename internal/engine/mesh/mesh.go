// Package mesh builds the CPU-side geometry for cube LOD tiers and editor helpers.
package mesh

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// VertexStride is the number of floats per cube vertex: position(3) uv(2) normal(3).
const VertexStride = 8

// Vertex is an interleaved cube vertex.
type Vertex struct {
	Position [3]float32
	UV       [2]float32
	Normal   [3]float32
}

// Mesh is an indexed triangle mesh ready for GPU upload.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
}

// Flatten returns the vertex data as a tightly packed float slice.
func (m *Mesh) Flatten() []float32 {
	out := make([]float32, 0, len(m.Vertices)*VertexStride)
	for _, v := range m.Vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.UV[:]...)
		out = append(out, v.Normal[:]...)
	}
	return out
}

// Validate checks that the mesh is a well formed triangle list.
func (m *Mesh) Validate() error {
	if len(m.Vertices) == 0 {
		return fmt.Errorf("mesh %s: no vertices", m.Name)
	}
	if len(m.Indices) == 0 || len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh %s: index count %d is not a positive multiple of 3", m.Name, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("mesh %s: index %d out of range at %d", m.Name, idx, i)
		}
	}
	for i, v := range m.Vertices {
		if !finite(v.Position[:]) || !finite(v.UV[:]) || !finite(v.Normal[:]) {
			return fmt.Errorf("mesh %s: vertex %d is not finite", m.Name, i)
		}
		n := v.Normal
		l := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		if math32.Abs(l-1) > 1e-3 {
			return fmt.Errorf("mesh %s: vertex %d normal length %f", m.Name, i, l)
		}
	}
	return nil
}

var errEmptyHelper = errors.New("no vertices")

func finite(v []float32) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}
