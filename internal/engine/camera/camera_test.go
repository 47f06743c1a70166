package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// approx compares component-wise with an absolute tolerance.
func approx(a, b mgl32.Vec3) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-5 {
			return false
		}
	}
	return true
}

func TestDefaults(t *testing.T) {
	c := NewFreeLook()
	if c.Position != (mgl32.Vec3{0, 0, 10}) {
		t.Errorf("position = %v, want (0, 0, 10)", c.Position)
	}
	if !approx(c.Forward(), mgl32.Vec3{0, 0, -1}) {
		t.Errorf("forward = %v, want (0, 0, -1)", c.Forward())
	}
	if !approx(c.Right(), mgl32.Vec3{1, 0, 0}) {
		t.Errorf("right = %v, want (1, 0, 0)", c.Right())
	}
	if c.Dirty() {
		t.Error("new camera should not be dirty")
	}
}

func TestRotateMarksDirty(t *testing.T) {
	c := NewFreeLook()
	c.Rotate(900, 0) // 90 degrees of yaw
	if !c.Dirty() {
		t.Fatal("Rotate should mark the camera dirty")
	}
	c.Refresh()
	if c.Dirty() {
		t.Error("Refresh should clear dirty")
	}
	if !approx(c.Forward(), mgl32.Vec3{1, 0, 0}) {
		t.Errorf("forward after yaw 90 = %v, want (1, 0, 0)", c.Forward())
	}
}

func TestRotateZeroDeltaKeepsClean(t *testing.T) {
	c := NewFreeLook()
	c.Rotate(0, 0)
	if c.Dirty() {
		t.Error("zero delta should not dirty the camera")
	}
}

func TestPitchClamp(t *testing.T) {
	tests := []struct {
		dy   float32
		want float32
	}{
		{-10000, 89},
		{10000, -89},
		{-100, 10},
	}
	for _, tt := range tests {
		c := NewFreeLook()
		c.Rotate(0, tt.dy)
		if c.Pitch() != tt.want {
			t.Errorf("Rotate(0, %v): pitch = %v, want %v", tt.dy, c.Pitch(), tt.want)
		}
		f := c.Forward()
		if math.Abs(float64(f.Len()-1)) > 1e-5 {
			t.Errorf("forward not unit: %v", f)
		}
	}
}

func TestMove(t *testing.T) {
	c := NewFreeLook()
	c.Move(1, 0, 0, 1)
	if !approx(c.Position, mgl32.Vec3{0, 0, 5}) {
		t.Errorf("after forward move: %v, want (0, 0, 5)", c.Position)
	}
	c.Move(0, -1, 0, 0.5)
	if !approx(c.Position, mgl32.Vec3{-2.5, 0, 5}) {
		t.Errorf("after left strafe: %v, want (-2.5, 0, 5)", c.Position)
	}
	c.Move(0, 0, 1, 0.2)
	if !approx(c.Position, mgl32.Vec3{-2.5, 1, 5}) {
		t.Errorf("after rise: %v, want (-2.5, 1, 5)", c.Position)
	}
}

func TestZoom(t *testing.T) {
	c := NewFreeLook()
	c.Zoom(2)
	if !approx(c.Position, mgl32.Vec3{0, 0, 9}) {
		t.Errorf("after zoom: %v, want (0, 0, 9)", c.Position)
	}
}

func TestViewMatrixLooksForward(t *testing.T) {
	c := NewFreeLook()
	c.SetAngles(30, -20)
	view := c.ViewMatrix()
	p := c.Position.Add(c.Forward().Mul(3))
	v := view.Mul4x1(p.Vec4(1))
	// A point ahead of the camera lands on the view -Z axis.
	if !approx(v.Vec3(), mgl32.Vec3{0, 0, -3}) {
		t.Errorf("view-space point = %v, want (0, 0, -3)", v.Vec3())
	}
}

func TestProjectionMatrixBadAspect(t *testing.T) {
	c := NewFreeLook()
	if c.ProjectionMatrix(0) != c.ProjectionMatrix(1) {
		t.Error("non-positive aspect should fall back to 1")
	}
}
