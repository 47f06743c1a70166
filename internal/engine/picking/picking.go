// Package picking resolves screen positions to scene objects by projecting
// object centers to the screen and comparing pixel distances.
package picking

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lodscene/internal/scene"
)

// Viewport is the drawable size in pixels.
type Viewport struct {
	Width, Height float32
}

// Valid reports whether the viewport has a positive area.
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// Radii are the pick radii in pixels per object role.
type Radii struct {
	Solid float32
	Light float32
}

// DefaultRadii matches the size of the rendered glyphs at typical distances.
var DefaultRadii = Radii{Solid: 30, Light: 50}

// For returns the pick radius for an object kind.
func (r Radii) For(k scene.Kind) float32 {
	if k.IsLight() {
		return r.Light
	}
	return r.Solid
}

// CursorToNDC converts a pixel position (top-left origin) to normalized
// device coordinates in [-1, 1] with +Y up.
func CursorToNDC(x, y, width, height float32) mgl32.Vec2 {
	if width <= 0 || height <= 0 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{2*x/width - 1, 1 - 2*y/height}
}

// Project maps a world point to screen pixels with a top-left origin.
// It reports false for points at or behind the camera plane.
func Project(world mgl32.Vec3, view, proj mgl32.Mat4, vp Viewport) (mgl32.Vec2, bool) {
	clip := proj.Mul4(view).Mul4x1(world.Vec4(1))
	if clip.W() <= 0 {
		return mgl32.Vec2{}, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	return mgl32.Vec2{
		(ndc.X() + 1) * 0.5 * vp.Width,
		(1 - ndc.Y()) * 0.5 * vp.Height,
	}, true
}

// Resolve returns the visible object whose projected center is closest to
// cursor and within its role radius. Ties go to the earlier object.
func Resolve(objects []scene.Object, cursor mgl32.Vec2, view, proj mgl32.Mat4, vp Viewport, radii Radii) (scene.ID, bool) {
	if !vp.Valid() {
		return scene.None, false
	}
	viewProj := proj.Mul4(view)

	best := scene.None
	bestDist := math32.Inf(1)
	for i := range objects {
		d, ok := distance(&objects[i], cursor, viewProj, vp)
		if !ok || d > radii.For(objects[i].Kind()) {
			continue
		}
		if d < bestDist {
			best, bestDist = objects[i].ID, d
		}
	}
	return best, best != scene.None
}

// Hit reports whether cursor is within o's pick radius.
func Hit(o scene.Object, cursor mgl32.Vec2, view, proj mgl32.Mat4, vp Viewport, radii Radii) bool {
	if !vp.Valid() {
		return false
	}
	d, ok := distance(&o, cursor, proj.Mul4(view), vp)
	return ok && d <= radii.For(o.Kind())
}

func distance(o *scene.Object, cursor mgl32.Vec2, viewProj mgl32.Mat4, vp Viewport) (float32, bool) {
	if !o.Visible || !finite(o.Position) {
		return 0, false
	}
	screen, ok := Project(o.Position, mgl32.Ident4(), viewProj, vp)
	if !ok {
		return 0, false
	}
	return screen.Sub(cursor).Len(), true
}

func finite(v mgl32.Vec3) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}
