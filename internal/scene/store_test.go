package scene

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func newTestStore() *Store {
	return New(rand.New(rand.NewPCG(1, 2)))
}

func TestAddAndGet(t *testing.T) {
	s := newTestStore()
	id := s.Add(KindSolid, Attrs{Position: mgl32.Vec3{1, 2, 3}, Scale: 0.5})

	obj, ok := s.Get(id)
	if !ok {
		t.Fatalf("Get(%d) not found", id)
	}
	if obj.Position != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("position = %v, want (1, 2, 3)", obj.Position)
	}
	if !obj.Visible {
		t.Error("new object should be visible")
	}
	if obj.Kind() != KindSolid {
		t.Errorf("kind = %v, want %v", obj.Kind(), KindSolid)
	}
	solid, ok := obj.Solid()
	if !ok {
		t.Fatal("expected solid payload")
	}
	if solid.Scale != 0.5 {
		t.Errorf("scale = %f, want 0.5", solid.Scale)
	}
	if obj.Name != "Cube 1" {
		t.Errorf("name = %q, want %q", obj.Name, "Cube 1")
	}
}

func TestIDsAreNeverReused(t *testing.T) {
	s := newTestStore()
	a := s.Add(KindSolid, Attrs{})
	b := s.Add(KindSolid, Attrs{})
	s.Remove(b)
	c := s.Add(KindSolid, Attrs{})

	if a == b || b == c || a == c {
		t.Errorf("ids must be unique: a=%d b=%d c=%d", a, b, c)
	}
	if c <= b {
		t.Errorf("ids must increase: b=%d c=%d", b, c)
	}
	if a == None {
		t.Error("zero id must never be assigned")
	}
}

func TestRemoveKeepsSurvivorsResolvable(t *testing.T) {
	s := newTestStore()
	var ids []ID
	for i := 0; i < 5; i++ {
		ids = append(ids, s.Add(KindSolid, Attrs{Position: mgl32.Vec3{float32(i), 0, 0}}))
	}
	before := make(map[ID]Object)
	for _, id := range ids {
		before[id], _ = s.Get(id)
	}

	if !s.Remove(ids[1]) {
		t.Fatal("Remove returned false for live id")
	}
	if s.Remove(ids[1]) {
		t.Error("second Remove of the same id should return false")
	}
	if _, ok := s.Get(ids[1]); ok {
		t.Error("removed id still resolves")
	}

	for _, id := range []ID{ids[0], ids[2], ids[3], ids[4]} {
		got, ok := s.Get(id)
		if !ok {
			t.Fatalf("survivor %d not found", id)
		}
		if got.Position != before[id].Position || got.Name != before[id].Name {
			t.Errorf("survivor %d changed: got %+v, want %+v", id, got, before[id])
		}
	}

	// Updates after removal must hit the right object.
	s.SetPosition(ids[3], mgl32.Vec3{9, 9, 9})
	got, _ := s.Get(ids[3])
	if got.Position != (mgl32.Vec3{9, 9, 9}) {
		t.Errorf("update after removal went astray: %v", got.Position)
	}
	other, _ := s.Get(ids[4])
	if other.Position != (mgl32.Vec3{4, 0, 0}) {
		t.Errorf("neighbour modified: %v", other.Position)
	}
}

func TestAllPreservesInsertionOrder(t *testing.T) {
	s := newTestStore()
	a := s.Add(KindSolid, Attrs{})
	b := s.Add(KindPointLight, Attrs{})
	c := s.Add(KindSolid, Attrs{})
	s.Remove(b)

	all := s.All()
	if len(all) != 2 || all[0].ID != a || all[1].ID != c {
		t.Errorf("All() order = %v, want [%d %d]", all, a, c)
	}

	// Snapshot must not alias store memory.
	all[0].Name = "mutated"
	got, _ := s.Get(a)
	if got.Name == "mutated" {
		t.Error("All() returned aliased storage")
	}
}

func TestUpdatesOnMissingIDAreNoOps(t *testing.T) {
	s := newTestStore()
	s.SetPosition(42, mgl32.Vec3{1, 1, 1})
	s.SetRotation(42, mgl32.Vec2{1, 1})
	s.SetScale(42, 1)
	s.SetLightColor(42, mgl32.Vec3{1, 0, 0})
	s.SetLightIntensity(42, 3)
	s.SetLightDirection(42, mgl32.Vec3{1, 0, 0})
	s.SetVisible(42, false)
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestSetPositionIdempotent(t *testing.T) {
	s := newTestStore()
	id := s.Add(KindSolid, Attrs{})
	p := mgl32.Vec3{0.25, -3, 7}

	s.SetPosition(id, p)
	once, _ := s.Get(id)
	s.SetPosition(id, p)
	twice, _ := s.Get(id)

	if once.Position != twice.Position || twice.Position != p {
		t.Errorf("once=%v twice=%v want %v", once.Position, twice.Position, p)
	}
}

func TestSetScaleClamps(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{-5, 0.1},
		{0, 0.1},
		{0.1, 0.1},
		{0.75, 0.75},
		{2, 2},
		{100, 2},
		{float32(math.NaN()), 0.1},
	}

	s := newTestStore()
	id := s.Add(KindSolid, Attrs{})
	for _, tt := range tests {
		s.SetScale(id, tt.in)
		obj, _ := s.Get(id)
		solid, _ := obj.Solid()
		if solid.Scale != tt.want {
			t.Errorf("SetScale(%v) stored %v, want %v", tt.in, solid.Scale, tt.want)
		}
	}
}

func TestLightDirectionStaysUnit(t *testing.T) {
	s := newTestStore()
	id := s.Add(KindDirectionalLight, Attrs{})

	inputs := []mgl32.Vec3{
		{3, 0, 0},
		{1, 1, 1},
		{0, -0.001, 0},
		{-100, 50, 2},
	}
	for _, in := range inputs {
		s.SetLightDirection(id, in)
		obj, _ := s.Get(id)
		light, _ := obj.Light()
		if l := light.Direction.Len(); math.Abs(float64(l-1)) > 1e-5 {
			t.Errorf("SetLightDirection(%v): |dir| = %f, want 1", in, l)
		}
	}

	// Zero input keeps the previous direction.
	obj, _ := s.Get(id)
	prev, _ := obj.Light()
	s.SetLightDirection(id, mgl32.Vec3{})
	obj, _ = s.Get(id)
	light, _ := obj.Light()
	if light.Direction != prev.Direction {
		t.Errorf("zero direction changed stored direction: %v -> %v", prev.Direction, light.Direction)
	}
}

func TestLightSpawnsNearSolid(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		s := New(rand.New(rand.NewPCG(seed, seed+7)))
		cube := s.Add(KindSolid, Attrs{})
		light := s.Add(KindPointLight, Attrs{})

		if light == cube {
			t.Fatal("light id equals cube id")
		}
		obj, _ := s.Get(light)
		if obj.Position.Y() != 0.5 {
			t.Errorf("seed %d: light height = %f, want 0.5", seed, obj.Position.Y())
		}
		r := mgl32.Vec2{obj.Position.X(), obj.Position.Z()}.Len()
		if r < 1-1e-5 || r > 2+1e-5 {
			t.Errorf("seed %d: radial distance = %f, want [1, 2]", seed, r)
		}
		if obj.Kind() != KindPointLight {
			t.Errorf("kind = %v, want point light", obj.Kind())
		}
	}
}

func TestLightSpawnUsesNearestVisibleSolid(t *testing.T) {
	s := newTestStore()
	s.Add(KindSolid, Attrs{Position: mgl32.Vec3{100, 0, 0}})
	hidden := s.Add(KindSolid, Attrs{Position: mgl32.Vec3{1, 0, 0}})
	s.SetVisible(hidden, false)
	s.Add(KindSolid, Attrs{Position: mgl32.Vec3{10, 0, 0}})

	id := s.Add(KindAmbientLight, Attrs{Anchor: mgl32.Vec3{0, 0, 0}})
	obj, _ := s.Get(id)
	d := mgl32.Vec2{obj.Position.X() - 10, obj.Position.Z()}.Len()
	if d < 1-1e-5 || d > 2+1e-5 {
		t.Errorf("light at %v not placed around cube at (10,0,0)", obj.Position)
	}
}

func TestLightSpawnFallback(t *testing.T) {
	s := newTestStore()
	id := s.Add(KindDirectionalLight, Attrs{})
	obj, _ := s.Get(id)
	if obj.Position != FallbackLightPosition {
		t.Errorf("position = %v, want fallback %v", obj.Position, FallbackLightPosition)
	}
	light, ok := obj.Light()
	if !ok || light.Type != LightDirectional {
		t.Errorf("payload = %+v, want directional light", obj.Body)
	}
}

func TestPayloadMismatchIgnored(t *testing.T) {
	s := newTestStore()
	cube := s.Add(KindSolid, Attrs{})
	light := s.Add(KindPointLight, Attrs{})

	s.SetLightIntensity(cube, 5)
	s.SetScale(light, 1.5)

	if obj, _ := s.Get(cube); obj.Kind() != KindSolid {
		t.Error("cube changed kind")
	}
	obj, _ := s.Get(light)
	if _, ok := obj.Solid(); ok {
		t.Error("light gained a solid payload")
	}
}

func TestNewDefaultSeedsOneCube(t *testing.T) {
	s := NewDefault(rand.New(rand.NewPCG(3, 4)))
	all := s.All()
	if len(all) != 1 || all[0].Kind() != KindSolid {
		t.Fatalf("NewDefault() = %+v, want one cube", all)
	}
}
