// Package batch groups visible scene objects into per-LOD instanced draw batches.
//
// A Frame is rebuilt from scratch every frame. It depends only on the object
// snapshot, the camera position, the selection and the clock.
package batch

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lodscene/internal/engine/lod"
	"github.com/Faultbox/lodscene/internal/engine/mesh"
	"github.com/Faultbox/lodscene/internal/scene"
)

// Role splits a tier into separately drawn groups.
type Role int

const (
	Solids Role = iota
	Lights
)

// RoleCount is the number of roles.
const RoleCount = 2

func (r Role) String() string {
	switch r {
	case Solids:
		return "solids"
	case Lights:
		return "lights"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Helper sizing.
const (
	// PointRadiusScale converts point light intensity to influence sphere radius.
	PointRadiusScale float32 = 2.0
	// MinPointRadius keeps the influence sphere visible at low intensity.
	MinPointRadius float32 = 0.25
	// ArrowLength is the length of a directional light arrow.
	ArrowLength float32 = 1.0
)

// Instance is one entry of an instance batch.
type Instance struct {
	ID        scene.ID
	Model     mgl32.Mat4
	Selected  bool
	IsLight   bool
	Intensity float32
}

// Batch holds the instances drawn with one instanced call.
type Batch struct {
	Tier      lod.Tier
	Role      Role
	Instances []Instance
}

// Len returns the instance count.
func (b *Batch) Len() int {
	return len(b.Instances)
}

// Empty reports whether the batch must be skipped by the renderer.
func (b *Batch) Empty() bool {
	return len(b.Instances) == 0
}

// Offsets are byte offsets of the per-instance arrays inside a packed buffer.
type Offsets struct {
	Model     int
	Selected  int
	IsLight   int
	Intensity int
	Size      int
}

const floatSize = 4

// Offsets returns the layout of Pack's output for this batch.
func (b *Batch) Offsets() Offsets {
	n := len(b.Instances)
	o := Offsets{Model: 0}
	o.Selected = o.Model + n*16*floatSize
	o.IsLight = o.Selected + n*floatSize
	o.Intensity = o.IsLight + n*floatSize
	o.Size = o.Intensity + n*floatSize
	return o
}

// Pack flattens the batch into N mat4 (column-major), then N selection flags,
// N is-light flags and N intensities.
func (b *Batch) Pack() []float32 {
	return b.PackInto(nil)
}

// PackInto is Pack reusing dst's storage.
func (b *Batch) PackInto(dst []float32) []float32 {
	n := len(b.Instances)
	if cap(dst) < n*19 {
		dst = make([]float32, 0, n*19)
	}
	dst = dst[:0]
	for i := range b.Instances {
		dst = append(dst, b.Instances[i].Model[:]...)
	}
	for i := range b.Instances {
		dst = append(dst, flag(b.Instances[i].Selected))
	}
	for i := range b.Instances {
		dst = append(dst, flag(b.Instances[i].IsLight))
	}
	for i := range b.Instances {
		dst = append(dst, b.Instances[i].Intensity)
	}
	return dst
}

func flag(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// Placement positions one helper mesh in the world.
type Placement struct {
	Kind     mesh.HelperKind
	ID       scene.ID
	Model    mgl32.Mat4
	Color    mgl32.Vec3
	Selected bool
}

// Stats summarizes a frame for display.
type Stats struct {
	Instances [lod.Count]int
	DrawCalls int
	Helpers   int
}

// Total returns the number of instances across all tiers.
func (s Stats) Total() int {
	var n int
	for _, c := range s.Instances {
		n += c
	}
	return n
}

func (s Stats) String() string {
	return fmt.Sprintf("LOD high:%d medium:%d low:%d | draws:%d",
		s.Instances[lod.High], s.Instances[lod.Medium], s.Instances[lod.Low], s.DrawCalls)
}

// Frame is the batched view of the scene for one frame.
type Frame struct {
	Batches [lod.Count][RoleCount]Batch
	Helpers []Placement
}

// Stats counts instances per tier and the draw calls the frame will issue.
func (f *Frame) Stats() Stats {
	var s Stats
	for t := range f.Batches {
		for r := range f.Batches[t] {
			b := &f.Batches[t][r]
			s.Instances[t] += b.Len()
			if !b.Empty() {
				s.DrawCalls++
			}
		}
	}
	s.Helpers = len(f.Helpers)
	s.DrawCalls += len(f.Helpers)
	return s
}

// AttachGizmo places the manipulation gizmo at o.
func (f *Frame) AttachGizmo(o scene.Object) {
	if !o.Visible || !finite(o.Position) {
		return
	}
	f.Helpers = append(f.Helpers, Placement{
		Kind:     mesh.HelperAxis,
		ID:       o.ID,
		Model:    mgl32.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z()),
		Color:    mgl32.Vec3{1, 1, 1},
		Selected: true,
	})
}

// Builder builds frames, reusing its buffers between calls.
// The returned Frame is valid until the next Build.
type Builder struct {
	frame Frame
}

// Build batches objects for one frame.
func Build(objects []scene.Object, camPos mgl32.Vec3, selected scene.ID, clock float32) *Frame {
	var b Builder
	return b.Build(objects, camPos, selected, clock)
}

// Build batches objects for one frame.
func (b *Builder) Build(objects []scene.Object, camPos mgl32.Vec3, selected scene.ID, clock float32) *Frame {
	f := &b.frame
	for t := range f.Batches {
		for r := range f.Batches[t] {
			f.Batches[t][r] = Batch{
				Tier:      lod.Tier(t),
				Role:      Role(r),
				Instances: f.Batches[t][r].Instances[:0],
			}
		}
	}
	f.Helpers = f.Helpers[:0]

	for i := range objects {
		o := &objects[i]
		if !o.Visible || !finite(o.Position) {
			continue
		}
		isSelected := o.ID == selected && selected != scene.None
		tier := lod.Select(lod.Distance(o.Position, camPos))

		inst := Instance{
			ID:       o.ID,
			Model:    WorldTransform(*o, isSelected, clock),
			Selected: isSelected,
		}
		role := Solids
		if light, ok := o.Light(); ok {
			role = Lights
			inst.IsLight = true
			inst.Intensity = light.Intensity
			f.Helpers = appendLightHelper(f.Helpers, *o, light, isSelected)
		}
		batch := &f.Batches[tier][role]
		batch.Instances = append(batch.Instances, inst)
	}
	return f
}

func appendLightHelper(dst []Placement, o scene.Object, light scene.Light, selected bool) []Placement {
	pos := mgl32.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z())
	switch light.Type {
	case scene.LightDirectional:
		s := ArrowLength
		return append(dst, Placement{
			Kind:     mesh.HelperArrow,
			ID:       o.ID,
			Model:    pos.Mul4(Basis(light.Direction)).Mul4(mgl32.Scale3D(s, s, s)),
			Color:    light.Color,
			Selected: selected,
		})
	case scene.LightPoint:
		if !selected {
			return dst
		}
		r := max(light.Intensity*PointRadiusScale, MinPointRadius)
		return append(dst, Placement{
			Kind:     mesh.HelperSphere,
			ID:       o.ID,
			Model:    pos.Mul4(mgl32.Scale3D(r, r, r)),
			Color:    light.Color,
			Selected: true,
		})
	}
	return dst
}
