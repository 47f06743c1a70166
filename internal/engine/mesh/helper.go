package mesh

import (
	"fmt"

	"github.com/chewxy/math32"
)

// HelperStride is the number of floats per helper vertex: position(3) color(3) kind(1).
const HelperStride = 7

// HelperKind tags helper vertices so the helper shader can style them.
type HelperKind int

const (
	HelperAxis HelperKind = iota
	HelperArrow
	HelperSphere
)

// Code returns the value written into the vertex kind attribute.
func (k HelperKind) Code() float32 {
	return float32(k)
}

func (k HelperKind) String() string {
	switch k {
	case HelperAxis:
		return "axis"
	case HelperArrow:
		return "arrow"
	case HelperSphere:
		return "sphere"
	default:
		return fmt.Sprintf("HelperKind(%d)", int(k))
	}
}

// HelperVertex is a colored line vertex.
type HelperVertex struct {
	Position [3]float32
	Color    [3]float32
	Kind     HelperKind
}

// HelperMesh is a non-indexed line list (GL_LINES).
type HelperMesh struct {
	Name     string
	Vertices []HelperVertex
}

// Flatten returns the vertex data as a tightly packed float slice.
func (m *HelperMesh) Flatten() []float32 {
	out := make([]float32, 0, len(m.Vertices)*HelperStride)
	for _, v := range m.Vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.Color[:]...)
		out = append(out, v.Kind.Code())
	}
	return out
}

// Validate checks that the mesh is a non-empty list of finite line segments.
func (m *HelperMesh) Validate() error {
	if len(m.Vertices) == 0 {
		return fmt.Errorf("helper %s: %w", m.Name, errEmptyHelper)
	}
	if len(m.Vertices)%2 != 0 {
		return fmt.Errorf("helper %s: odd vertex count %d for a line list", m.Name, len(m.Vertices))
	}
	for i, v := range m.Vertices {
		if !finite(v.Position[:]) || !finite(v.Color[:]) {
			return fmt.Errorf("helper %s: vertex %d is not finite", m.Name, i)
		}
	}
	return nil
}

func (m *HelperMesh) line(a, b, color [3]float32, kind HelperKind) {
	m.Vertices = append(m.Vertices,
		HelperVertex{Position: a, Color: color, Kind: kind},
		HelperVertex{Position: b, Color: color, Kind: kind},
	)
}

// Helper colors.
var (
	colorAxisX  = [3]float32{1, 0.2, 0.2}
	colorAxisY  = [3]float32{0.2, 1, 0.2}
	colorAxisZ  = [3]float32{0.3, 0.5, 1}
	colorArrow  = [3]float32{1, 0.85, 0.2}
	colorSphere = [3]float32{1, 1, 0.4}
)

// Arrow head size relative to the unit shaft.
const (
	arrowHeadLength = 0.25
	arrowHeadWidth  = 0.1
)

// Arrow returns a unit arrow from the origin along +Z.
func Arrow() HelperMesh {
	m := HelperMesh{Name: "arrow"}
	appendArrow(&m)
	return m
}

func appendArrow(m *HelperMesh) {
	tip := [3]float32{0, 0, 1}
	m.line([3]float32{0, 0, 0}, tip, colorArrow, HelperArrow)
	back := float32(1 - arrowHeadLength)
	for _, d := range [][2]float32{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		m.line(tip, [3]float32{d[0] * arrowHeadWidth, d[1] * arrowHeadWidth, back}, colorArrow, HelperArrow)
	}
}

// Gizmo returns the manipulation gizmo: three unit axis lines colored X red,
// Y green, Z blue, plus an arrow along +Z.
func Gizmo() HelperMesh {
	m := HelperMesh{Name: "gizmo"}
	origin := [3]float32{0, 0, 0}
	m.line(origin, [3]float32{1, 0, 0}, colorAxisX, HelperAxis)
	m.line(origin, [3]float32{0, 1, 0}, colorAxisY, HelperAxis)
	m.line(origin, [3]float32{0, 0, 1}, colorAxisZ, HelperAxis)
	appendArrow(&m)
	return m
}

// Default wire sphere resolution.
const (
	DefaultStacks = 16
	DefaultSlices = 16
)

// WireSphere returns a unit-radius latitude/longitude line grid.
// It needs at least 2 stacks and 3 slices.
func WireSphere(stacks, slices int) (HelperMesh, error) {
	if stacks < 2 || slices < 3 {
		return HelperMesh{}, fmt.Errorf("wire sphere: need stacks >= 2 and slices >= 3, got %d x %d", stacks, slices)
	}

	point := func(i, j int) [3]float32 {
		phi := math32.Pi * float32(i) / float32(stacks)
		theta := 2 * math32.Pi * float32(j) / float32(slices)
		r := math32.Sin(phi)
		return [3]float32{r * math32.Cos(theta), math32.Cos(phi), r * math32.Sin(theta)}
	}

	m := HelperMesh{
		Name:     "sphere",
		Vertices: make([]HelperVertex, 0, 2*((stacks-1)*slices+stacks*slices)),
	}
	// Latitude rings, poles excluded.
	for i := 1; i < stacks; i++ {
		for j := range slices {
			m.line(point(i, j), point(i, (j+1)%slices), colorSphere, HelperSphere)
		}
	}
	// Meridians pole to pole.
	for j := range slices {
		for i := range stacks {
			m.line(point(i, j), point(i+1, j), colorSphere, HelperSphere)
		}
	}
	return m, nil
}
