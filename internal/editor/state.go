// Package editor holds the interactive editing state: selection, the
// manipulation mode state machine, pointer drags and camera navigation.
// All methods run on the frame thread.
package editor

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/lodscene/internal/engine/batch"
	"github.com/Faultbox/lodscene/internal/engine/camera"
	"github.com/Faultbox/lodscene/internal/engine/input"
	"github.com/Faultbox/lodscene/internal/engine/lighting"
	"github.com/Faultbox/lodscene/internal/engine/picking"
	"github.com/Faultbox/lodscene/internal/logger"
	"github.com/Faultbox/lodscene/internal/scene"
)

// MaxFrameDelta caps the simulation step after a stall.
const MaxFrameDelta float32 = 0.1

// drag tracks an in-progress manipulation drag.
type drag struct {
	active bool
	target scene.ID
	last   mgl32.Vec2 // pointer in NDC
}

// State is the editor state owned by the frame driver.
type State struct {
	Store    *scene.Store
	Camera   *camera.FreeLook
	Radii    picking.Radii
	Viewport picking.Viewport

	// OverUI is set by the front end each frame while the pointer is over
	// a UI window. Clicks and wheel input are then left to the UI.
	OverUI bool

	// OnCue, if set, is called for user-facing events.
	OnCue func(Cue)

	selected scene.ID
	mode     Mode
	drag     drag
	looking  bool
	held     map[input.Key]bool
	mods     input.Mods
	cursor   mgl32.Vec2
	clock    float32

	builder batch.Builder
	lights  *lighting.Buffer
}

// New creates editor state for a store and camera.
func New(store *scene.Store, cam *camera.FreeLook) *State {
	return &State{
		Store:  store,
		Camera: cam,
		Radii:  picking.DefaultRadii,
		held:   make(map[input.Key]bool),
		lights: lighting.NewBuffer(),
	}
}

// Selected returns the selected object id, or scene.None.
func (s *State) Selected() scene.ID { return s.selected }

// Mode returns the armed manipulation mode.
func (s *State) Mode() Mode { return s.mode }

// Dragging reports whether a manipulation drag is in progress.
func (s *State) Dragging() bool { return s.drag.active }

// Clock returns the editor time in seconds.
func (s *State) Clock() float32 { return s.clock }

// Apply runs a UI command.
func (s *State) Apply(cmd Command) {
	cmd.apply(s)
}

// ApplyAll runs commands in order.
func (s *State) ApplyAll(cmds []Command) {
	for _, c := range cmds {
		c.apply(s)
	}
}

func (s *State) cue(c Cue) {
	if s.OnCue != nil {
		s.OnCue(c)
	}
}

func (s *State) selectObject(id scene.ID) {
	s.disarm()
	if s.selected == id {
		return
	}
	s.selected = id
	s.cue(CueSelect)
	logger.Debug("object selected", zap.Uint32("id", uint32(id)))
}

func (s *State) clearSelection() {
	s.disarm()
	s.selected = scene.None
}

// arm enters a manipulation mode. It needs a live selection.
func (s *State) arm(m Mode) {
	if _, ok := s.Store.Get(s.selected); !ok {
		return
	}
	if s.mode == m {
		return
	}
	s.mode = m
	s.drag = drag{}
	s.cue(CueModeArm)
	logger.Debug("mode armed", zap.Stringer("mode", m), zap.Uint32("id", uint32(s.selected)))
}

func (s *State) disarm() {
	s.mode = ModeNone
	s.drag = drag{}
}

func (s *State) delete(id scene.ID) {
	if !s.Store.Remove(id) {
		return
	}
	if id == s.selected {
		s.clearSelection()
	}
	s.cue(CueDelete)
	logger.Debug("object deleted", zap.Uint32("id", uint32(id)))
}

// Update advances the clock and applies held-key camera movement.
// dt is clamped to [0, MaxFrameDelta].
func (s *State) Update(dt float32) {
	if math32.IsNaN(dt) || dt < 0 {
		dt = 0
	}
	dt = min(dt, MaxFrameDelta)
	s.clock += dt

	var forward, right, up float32
	// Ctrl is the mode modifier; Ctrl+S must not also move the camera.
	if !s.mods.Has(input.ModCtrl) {
		forward = axis(s.held[input.KeyW], s.held[input.KeyS])
		right = axis(s.held[input.KeyD], s.held[input.KeyA])
	}
	up = axis(s.held[input.KeySpace], s.held[input.KeyLeftShift])
	if forward != 0 || right != 0 || up != 0 {
		s.Camera.Move(forward, right, up, dt)
	}
	if s.Camera.Dirty() {
		s.Camera.Refresh()
	}
}

func axis(pos, neg bool) float32 {
	var v float32
	if pos {
		v++
	}
	if neg {
		v--
	}
	return v
}

// Aspect returns the viewport aspect ratio.
func (s *State) Aspect() float32 {
	if !s.Viewport.Valid() {
		return 1
	}
	return s.Viewport.Width / s.Viewport.Height
}

// View returns the camera view matrix.
func (s *State) View() mgl32.Mat4 {
	return s.Camera.ViewMatrix()
}

// Projection returns the camera projection for the current viewport.
func (s *State) Projection() mgl32.Mat4 {
	return s.Camera.ProjectionMatrix(s.Aspect())
}

// Snapshot is everything the renderer and panel need for one frame.
type Snapshot struct {
	Objects    []scene.Object
	Frame      *batch.Frame
	Lights     *lighting.Buffer
	View       mgl32.Mat4
	Projection mgl32.Mat4
	CameraPos  mgl32.Vec3
	Clock      float32
	Selected   scene.ID
	Mode       Mode
}

// Snapshot batches the scene for rendering. Frame and Lights are reused by
// the next call.
func (s *State) Snapshot() Snapshot {
	objects := s.Store.All()
	frame := s.builder.Build(objects, s.Camera.Position, s.selected, s.clock)
	if s.mode != ModeNone {
		if o, ok := s.Store.Get(s.selected); ok {
			frame.AttachGizmo(o)
		}
	}
	s.lights.Collect(objects, s.Camera.Position)

	return Snapshot{
		Objects:    objects,
		Frame:      frame,
		Lights:     s.lights,
		View:       s.View(),
		Projection: s.Projection(),
		CameraPos:  s.Camera.Position,
		Clock:      s.clock,
		Selected:   s.selected,
		Mode:       s.mode,
	}
}
