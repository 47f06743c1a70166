package mesh

import (
	"fmt"

	"github.com/Faultbox/lodscene/internal/engine/lod"
)

// Registry holds every mesh the renderer needs. It is built once at startup
// and never modified.
type Registry struct {
	cubes  [lod.Count]Mesh
	gizmo  HelperMesh
	arrow  HelperMesh
	sphere HelperMesh
}

// NewRegistry builds and validates all meshes.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		gizmo: Gizmo(),
		arrow: Arrow(),
	}
	for t := range lod.Count {
		r.cubes[t] = Cube(lod.Tier(t))
		if err := r.cubes[t].Validate(); err != nil {
			return nil, fmt.Errorf("tier %d: %w", t, err)
		}
	}

	sphere, err := WireSphere(DefaultStacks, DefaultSlices)
	if err != nil {
		return nil, err
	}
	r.sphere = sphere

	for _, h := range []*HelperMesh{&r.gizmo, &r.arrow, &r.sphere} {
		if err := h.Validate(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Cube returns the cube mesh for a tier. Out of range tiers get the lowest detail.
func (r *Registry) Cube(t lod.Tier) *Mesh {
	if t < 0 || int(t) >= lod.Count {
		t = lod.Low
	}
	return &r.cubes[t]
}

// Helper returns the helper mesh for a kind.
func (r *Registry) Helper(k HelperKind) *HelperMesh {
	switch k {
	case HelperArrow:
		return &r.arrow
	case HelperSphere:
		return &r.sphere
	default:
		return &r.gizmo
	}
}
