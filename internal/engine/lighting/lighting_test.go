package lighting

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lodscene/internal/scene"
)

func lightObject(id scene.ID, typ scene.LightType, visible bool) scene.Object {
	return scene.Object{
		ID:       id,
		Position: mgl32.Vec3{float32(id), 0, 0},
		Visible:  visible,
		Body: scene.Light{
			Type:      typ,
			Color:     mgl32.Vec3{1, 0.5, 0.25},
			Intensity: float32(id),
			Direction: mgl32.Vec3{0, -1, 0},
		},
	}
}

func TestCollect(t *testing.T) {
	objects := []scene.Object{
		{ID: 1, Visible: true, Body: scene.Solid{Scale: 1}},
		lightObject(2, scene.LightPoint, true),
		lightObject(3, scene.LightDirectional, false),
		lightObject(4, scene.LightAmbient, true),
	}

	b := NewBuffer()
	b.Collect(objects, mgl32.Vec3{0, 0, 10})

	if b.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", b.Count())
	}
	types := b.Types()
	if types[0] != int32(scene.LightPoint) || types[1] != int32(scene.LightAmbient) {
		t.Errorf("types = %v", types[:2])
	}
	if got := b.Intensities()[:2]; got[0] != 2 || got[1] != 4 {
		t.Errorf("intensities = %v, want [2 4]", got)
	}
	if got := b.Positions()[3:6]; got[0] != 4 {
		t.Errorf("second position = %v", got)
	}
}

func TestCollectHeadlight(t *testing.T) {
	b := NewBuffer()
	cam := mgl32.Vec3{1, 2, 3}
	b.Collect(nil, cam)
	if b.Count() != 1 {
		t.Fatalf("Count() = %d, want headlight only", b.Count())
	}
	if b.Lights[0].Position != [3]float32(cam) || b.Lights[0].Type != scene.LightPoint {
		t.Errorf("headlight = %+v", b.Lights[0])
	}
}

func TestCollectTruncates(t *testing.T) {
	var objects []scene.Object
	for i := range MaxLights + 3 {
		objects = append(objects, lightObject(scene.ID(i+1), scene.LightPoint, true))
	}
	b := NewBuffer()
	b.Collect(objects, mgl32.Vec3{})
	if b.Count() != MaxLights || b.Dropped != 3 {
		t.Errorf("Count() = %d, Dropped = %d, want %d and 3", b.Count(), b.Dropped, MaxLights)
	}
}

func TestArraySizes(t *testing.T) {
	b := NewBuffer()
	if len(b.Positions()) != MaxLights*3 || len(b.Directions()) != MaxLights*3 || len(b.Colors()) != MaxLights*3 {
		t.Error("vec3 arrays must be MaxLights*3 long")
	}
	if len(b.Intensities()) != MaxLights || len(b.Types()) != MaxLights {
		t.Error("scalar arrays must be MaxLights long")
	}
}

func TestDirectionFromAngles(t *testing.T) {
	tests := []struct {
		azimuth, elevation float32
		want               mgl32.Vec3
	}{
		{0, 0, mgl32.Vec3{0, 0, -1}},
		{90, 0, mgl32.Vec3{1, 0, 0}},
		{0, 90, mgl32.Vec3{0, 1, 0}},
		{0, -90, mgl32.Vec3{0, -1, 0}},
	}
	for _, tt := range tests {
		got := DirectionFromAngles(tt.azimuth, tt.elevation)
		if !approx(got, tt.want) {
			t.Errorf("DirectionFromAngles(%v, %v) = %v, want %v", tt.azimuth, tt.elevation, got, tt.want)
		}
	}
}

func TestAnglesRoundTrip(t *testing.T) {
	for _, az := range []float32{-170, -45, 0, 30, 120} {
		for _, el := range []float32{-60, -10, 0, 45, 80} {
			gotAz, gotEl := AnglesFromDirection(DirectionFromAngles(az, el))
			if math.Abs(float64(gotAz-az)) > 1e-3 || math.Abs(float64(gotEl-el)) > 1e-3 {
				t.Errorf("(%v, %v) -> (%v, %v)", az, el, gotAz, gotEl)
			}
		}
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
