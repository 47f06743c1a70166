package editor

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lodscene/internal/engine/input"
	"github.com/Faultbox/lodscene/internal/engine/picking"
	"github.com/Faultbox/lodscene/internal/scene"
)

// HandleEvent feeds one input event into the editor.
// It reports whether the event requests the application to quit.
func (s *State) HandleEvent(e input.Event) bool {
	switch e.Type {
	case input.EventQuit:
		return true

	case input.EventWindowResize:
		s.Viewport = picking.Viewport{Width: float32(e.Width), Height: float32(e.Height)}

	case input.EventKeyDown:
		s.mods = e.Mods
		// A mode chord's letter must not keep steering the camera after
		// Ctrl is released first.
		if !e.Mods.Has(input.ModCtrl) || !movementKeys[e.Key] {
			s.held[e.Key] = true
		}
		s.handleKey(e)

	case input.EventKeyRepeat:
		s.mods = e.Mods

	case input.EventKeyUp:
		s.mods = e.Mods
		delete(s.held, e.Key)

	case input.EventMouseMove:
		s.handlePointerMove(mgl32.Vec2{e.X, e.Y})

	case input.EventMouseDown:
		s.cursor = mgl32.Vec2{e.X, e.Y}
		if s.OverUI {
			return false
		}
		switch e.Button {
		case input.ButtonLeft:
			s.handlePrimaryPress()
		case input.ButtonRight:
			s.looking = true
		}

	case input.EventMouseUp:
		s.cursor = mgl32.Vec2{e.X, e.Y}
		switch e.Button {
		case input.ButtonLeft:
			s.drag = drag{}
		case input.ButtonRight:
			s.looking = false
		}

	case input.EventMouseWheel:
		if !s.OverUI && e.Wheel != 0 {
			s.Camera.Zoom(e.Wheel)
		}
	}
	return false
}

// movementKeys are the camera keys that Ctrl turns into mode chords.
var movementKeys = map[input.Key]bool{
	input.KeyW: true,
	input.KeyA: true,
	input.KeyS: true,
	input.KeyD: true,
}

func (s *State) handleKey(e input.Event) {
	if e.Mods.Has(input.ModCtrl) {
		switch e.Key {
		case input.KeyR:
			s.arm(ModeRotate)
		case input.KeyS:
			s.arm(ModeScale)
		case input.KeyT:
			s.arm(ModeTranslate)
		}
		return
	}

	switch e.Key {
	case input.KeyDelete:
		if s.selected != scene.None {
			s.delete(s.selected)
		}
	case input.KeyEscape:
		s.disarm()
	}
}

// handlePrimaryPress picks when no mode is armed, and otherwise starts a
// drag if the press lands on the selected object.
func (s *State) handlePrimaryPress() {
	view, proj := s.View(), s.Projection()

	if s.mode == ModeNone {
		id, ok := picking.Resolve(s.Store.All(), s.cursor, view, proj, s.Viewport, s.Radii)
		if !ok {
			s.clearSelection()
			return
		}
		s.selectObject(id)
		return
	}

	o, ok := s.Store.Get(s.selected)
	if !ok || !picking.Hit(o, s.cursor, view, proj, s.Viewport, s.Radii) {
		return
	}
	s.drag = drag{active: true, target: o.ID, last: s.ndc(s.cursor)}
}

func (s *State) handlePointerMove(p mgl32.Vec2) {
	prev := s.cursor
	s.cursor = p

	if s.looking {
		d := p.Sub(prev)
		s.Camera.Rotate(d.X(), d.Y())
	}

	if s.drag.active {
		ndc := s.ndc(p)
		s.applyDrag(ndc.Sub(s.drag.last))
		s.drag.last = ndc
	}
}

func (s *State) ndc(p mgl32.Vec2) mgl32.Vec2 {
	return picking.CursorToNDC(p.X(), p.Y(), s.Viewport.Width, s.Viewport.Height)
}

// applyDrag maps a pointer delta in NDC onto the drag target.
func (s *State) applyDrag(d mgl32.Vec2) {
	o, ok := s.Store.Get(s.drag.target)
	if !ok {
		s.drag = drag{}
		return
	}
	switch s.mode {
	case ModeRotate:
		if solid, ok := o.Solid(); ok {
			s.Store.SetRotation(o.ID, solid.Rotation.Add(mgl32.Vec2{
				d.Y() * RotateDegreesPerNDC,
				d.X() * RotateDegreesPerNDC,
			}))
		}
	case ModeScale:
		if solid, ok := o.Solid(); ok {
			s.Store.SetScale(o.ID, solid.Scale+d.Y()*ScalePerNDC)
		}
	case ModeTranslate:
		s.Store.SetPosition(o.ID, o.Position.Add(mgl32.Vec3{
			d.X() * TranslatePerNDC,
			d.Y() * TranslatePerNDC,
			0,
		}))
	}
}
