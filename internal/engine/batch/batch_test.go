package batch

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lodscene/internal/engine/lod"
	"github.com/Faultbox/lodscene/internal/engine/mesh"
	"github.com/Faultbox/lodscene/internal/scene"
)

func cube(id scene.ID, pos mgl32.Vec3) scene.Object {
	return scene.Object{ID: id, Position: pos, Visible: true, Body: scene.Solid{Scale: 1}}
}

func light(id scene.ID, typ scene.LightType, pos mgl32.Vec3) scene.Object {
	return scene.Object{ID: id, Position: pos, Visible: true, Body: scene.Light{
		Type:      typ,
		Color:     mgl32.Vec3{1, 1, 1},
		Intensity: 1,
		Direction: mgl32.Vec3{0, -1, 0},
	}}
}

func TestBuildGroupsByTier(t *testing.T) {
	objects := []scene.Object{
		cube(1, mgl32.Vec3{0, 0, 0}),
		cube(2, mgl32.Vec3{0, 0, -10}),
		cube(3, mgl32.Vec3{0, 0, -50}),
	}
	f := Build(objects, mgl32.Vec3{0, 0, 2}, scene.None, 0)

	want := [lod.Count]scene.ID{1, 2, 3}
	for tier, id := range want {
		b := &f.Batches[tier][Solids]
		if b.Len() != 1 || b.Instances[0].ID != id {
			t.Errorf("tier %d solids = %+v, want object %d", tier, b.Instances, id)
		}
		if !f.Batches[tier][Lights].Empty() {
			t.Errorf("tier %d lights not empty", tier)
		}
	}

	s := f.Stats()
	if s.Total() != 3 || s.DrawCalls != 3 {
		t.Errorf("stats = %+v, want 3 instances in 3 draws", s)
	}
}

func TestBuildConservesVisibleObjects(t *testing.T) {
	var objects []scene.Object
	for i := range 40 {
		o := cube(scene.ID(i+1), mgl32.Vec3{float32(i), 0, 0})
		if i%2 == 1 {
			o = light(scene.ID(i+1), scene.LightPoint, mgl32.Vec3{float32(i), 1, 0})
		}
		if i%7 == 0 {
			o.Visible = false
		}
		objects = append(objects, o)
	}

	f := Build(objects, mgl32.Vec3{}, scene.None, 0)

	seen := make(map[scene.ID]int)
	for tier := range f.Batches {
		for role := range f.Batches[tier] {
			for _, inst := range f.Batches[tier][role].Instances {
				seen[inst.ID]++
			}
		}
	}
	for _, o := range objects {
		want := 0
		if o.Visible {
			want = 1
		}
		if seen[o.ID] != want {
			t.Errorf("object %d appears %d times, want %d", o.ID, seen[o.ID], want)
		}
	}
}

func TestBuildSkipsNonFinite(t *testing.T) {
	nan := float32(math.NaN())
	objects := []scene.Object{cube(1, mgl32.Vec3{nan, 0, 0}), cube(2, mgl32.Vec3{})}
	f := Build(objects, mgl32.Vec3{}, scene.None, 0)
	if got := f.Stats().Total(); got != 1 {
		t.Errorf("instances = %d, want 1", got)
	}
}

func TestBuildSelectionFlag(t *testing.T) {
	objects := []scene.Object{cube(1, mgl32.Vec3{}), cube(2, mgl32.Vec3{1, 0, 0})}
	f := Build(objects, mgl32.Vec3{}, 2, 0)
	for _, inst := range f.Batches[lod.High][Solids].Instances {
		if inst.Selected != (inst.ID == 2) {
			t.Errorf("object %d selected = %v", inst.ID, inst.Selected)
		}
	}
}

func TestPackLayout(t *testing.T) {
	objects := []scene.Object{
		cube(1, mgl32.Vec3{1, 2, 3}),
		light(2, scene.LightPoint, mgl32.Vec3{0, 1, 0}),
		light(3, scene.LightPoint, mgl32.Vec3{0, 2, 0}),
	}
	objects[2].Body = scene.Light{Type: scene.LightPoint, Intensity: 2.5, Direction: mgl32.Vec3{0, -1, 0}}

	f := Build(objects, mgl32.Vec3{}, 3, 0)
	b := &f.Batches[lod.High][Lights]
	if b.Len() != 2 {
		t.Fatalf("lights batch has %d instances, want 2", b.Len())
	}

	buf := b.Pack()
	off := b.Offsets()
	if len(buf)*4 != off.Size {
		t.Fatalf("packed %d bytes, offsets say %d", len(buf)*4, off.Size)
	}
	if off.Selected != 2*64 || off.IsLight != 2*64+8 || off.Intensity != 2*64+16 {
		t.Errorf("offsets = %+v", off)
	}

	sel := buf[off.Selected/4 : off.IsLight/4]
	if sel[0] != 0 || sel[1] != 1 {
		t.Errorf("selection flags = %v, want [0 1]", sel)
	}
	isLight := buf[off.IsLight/4 : off.Intensity/4]
	if isLight[0] != 1 || isLight[1] != 1 {
		t.Errorf("is-light flags = %v, want [1 1]", isLight)
	}
	intensity := buf[off.Intensity/4:]
	if intensity[0] != 1 || intensity[1] != 2.5 {
		t.Errorf("intensities = %v, want [1 2.5]", intensity)
	}

	// Translation lives in the last column of the first matrix.
	if buf[12] != 0 || buf[13] != 1 || buf[14] != 0 {
		t.Errorf("first model translation = %v", buf[12:15])
	}

	solids := f.Batches[lod.High][Solids].Pack()
	if len(solids) != 19 {
		t.Errorf("single instance pack len = %d, want 19", len(solids))
	}
}

func TestEmptyBatchPacksNothing(t *testing.T) {
	f := Build(nil, mgl32.Vec3{}, scene.None, 0)
	for tier := range f.Batches {
		for role := range f.Batches[tier] {
			b := &f.Batches[tier][role]
			if !b.Empty() || len(b.Pack()) != 0 {
				t.Errorf("batch %d/%d not empty", tier, role)
			}
		}
	}
	if s := f.Stats(); s.DrawCalls != 0 {
		t.Errorf("draw calls = %d, want 0", s.DrawCalls)
	}
}

func TestSolidTransform(t *testing.T) {
	o := cube(1, mgl32.Vec3{1, 2, 3})
	o.Body = scene.Solid{Rotation: mgl32.Vec2{0, 90}, Scale: 2}

	m := WorldTransform(o, false, 0)
	got := m.Mul4x1(mgl32.Vec4{0.5, 0, 0, 1}).Vec3()
	// Yaw 90 maps +X to -Z; scale 2 doubles it.
	want := mgl32.Vec3{1, 2, 2}
	if !approx(got, want) {
		t.Errorf("transformed point = %v, want %v", got, want)
	}
}

func TestAmbientPulse(t *testing.T) {
	o := light(1, scene.LightAmbient, mgl32.Vec3{})
	clock := float32(math.Pi / 4) // sin(2*clock) = 1

	scale := func(m mgl32.Mat4) float32 { return m.Col(0).Vec3().Len() }

	if got := scale(WorldTransform(o, false, clock)); math.Abs(float64(got-0.2)) > 1e-5 {
		t.Errorf("unselected ambient scale = %f, want 0.2", got)
	}
	if got := scale(WorldTransform(o, true, clock)); math.Abs(float64(got-0.25)) > 1e-5 {
		t.Errorf("selected ambient scale = %f, want 0.25", got)
	}
}

func TestBasisIsOrthonormal(t *testing.T) {
	dirs := []mgl32.Vec3{
		{0, -1, 0},
		{0, 1, 0},
		{0.001, 0.9999995, 0},
		{1, 0, 0},
		mgl32.Vec3{1, 1, 1}.Normalize(),
		mgl32.Vec3{-0.3, -0.2, 0.9}.Normalize(),
	}
	for _, d := range dirs {
		m := Basis(d)
		r, u, z := m.Col(0).Vec3(), m.Col(1).Vec3(), m.Col(2).Vec3()
		if !approx(z, d) {
			t.Errorf("dir %v: forward column = %v", d, z)
		}
		for _, v := range []mgl32.Vec3{r, u} {
			if math.Abs(float64(v.Len()-1)) > 1e-4 {
				t.Errorf("dir %v: column %v not unit", d, v)
			}
		}
		if math.Abs(float64(r.Dot(u))) > 1e-4 || math.Abs(float64(r.Dot(z))) > 1e-4 || math.Abs(float64(u.Dot(z))) > 1e-4 {
			t.Errorf("dir %v: basis not orthogonal", d)
		}
	}
}

func TestHelpers(t *testing.T) {
	objects := []scene.Object{
		cube(1, mgl32.Vec3{}),
		light(2, scene.LightDirectional, mgl32.Vec3{0, 3, 0}),
		light(3, scene.LightPoint, mgl32.Vec3{2, 0, 0}),
		light(4, scene.LightPoint, mgl32.Vec3{-2, 0, 0}),
	}

	f := Build(objects, mgl32.Vec3{0, 0, 10}, 3, 0)
	kinds := make(map[mesh.HelperKind][]scene.ID)
	for _, h := range f.Helpers {
		kinds[h.Kind] = append(kinds[h.Kind], h.ID)
	}
	if ids := kinds[mesh.HelperArrow]; len(ids) != 1 || ids[0] != 2 {
		t.Errorf("arrows = %v, want [2]", ids)
	}
	if ids := kinds[mesh.HelperSphere]; len(ids) != 1 || ids[0] != 3 {
		t.Errorf("spheres = %v, want [3]", ids)
	}
	if len(kinds[mesh.HelperAxis]) != 0 {
		t.Error("gizmo placed without AttachGizmo")
	}
	for _, h := range f.Helpers {
		if h.Kind == mesh.HelperArrow && h.Selected {
			t.Error("arrow of unselected light marked selected")
		}
		if h.Kind == mesh.HelperSphere && !h.Selected {
			t.Error("sphere of selected light not marked selected")
		}
	}

	f.AttachGizmo(objects[0])
	if last := f.Helpers[len(f.Helpers)-1]; last.Kind != mesh.HelperAxis || last.ID != 1 {
		t.Errorf("last helper = %+v, want gizmo on 1", last)
	}
}

func TestSphereRadiusHasFloor(t *testing.T) {
	o := light(1, scene.LightPoint, mgl32.Vec3{})
	o.Body = scene.Light{Type: scene.LightPoint, Intensity: 0, Direction: mgl32.Vec3{0, -1, 0}}

	f := Build([]scene.Object{o}, mgl32.Vec3{}, 1, 0)
	if len(f.Helpers) != 1 {
		t.Fatalf("helpers = %d, want 1", len(f.Helpers))
	}
	if r := f.Helpers[0].Model.Col(0).Vec3().Len(); math.Abs(float64(r-MinPointRadius)) > 1e-6 {
		t.Errorf("radius = %f, want %f", r, MinPointRadius)
	}
}

func TestBuilderReuse(t *testing.T) {
	var b Builder
	objects := []scene.Object{cube(1, mgl32.Vec3{}), cube(2, mgl32.Vec3{})}
	b.Build(objects, mgl32.Vec3{}, scene.None, 0)
	f := b.Build(objects[:1], mgl32.Vec3{}, scene.None, 0)
	if got := f.Stats().Total(); got != 1 {
		t.Errorf("second build has %d instances, want 1", got)
	}
}

// approx compares component-wise with an absolute tolerance.
func approx(a, b mgl32.Vec3) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-5 {
			return false
		}
	}
	return true
}
