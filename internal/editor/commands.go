package editor

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/lodscene/internal/logger"
	"github.com/Faultbox/lodscene/internal/scene"
)

// Command is a scene edit produced by a UI collaborator. Commands naming a
// missing object are no-ops.
type Command interface {
	apply(s *State)
}

// AddObject creates an object; lights are placed next to the cube nearest
// the camera. The new object becomes the selection.
type AddObject struct {
	Kind scene.Kind
}

// Select makes ID the selection and disarms any mode.
type Select struct {
	ID scene.ID
}

// Deselect clears the selection and disarms any mode.
type Deselect struct{}

// SelectNext selects the visible object after the current selection,
// wrapping around.
type SelectNext struct{}

// Delete removes an object.
type Delete struct {
	ID scene.ID
}

type SetPosition struct {
	ID       scene.ID
	Position mgl32.Vec3
}

type SetRotation struct {
	ID       scene.ID
	Rotation mgl32.Vec2
}

type SetScale struct {
	ID    scene.ID
	Scale float32
}

type SetColor struct {
	ID    scene.ID
	Color mgl32.Vec3
}

type SetIntensity struct {
	ID        scene.ID
	Intensity float32
}

type SetDirection struct {
	ID        scene.ID
	Direction mgl32.Vec3
}

type SetVisible struct {
	ID      scene.ID
	Visible bool
}

type SetName struct {
	ID   scene.ID
	Name string
}

func (c AddObject) apply(s *State) {
	id := s.Store.Add(c.Kind, scene.Attrs{Anchor: s.Camera.Position})
	s.cue(CueAdd)
	logger.Debug("object added", zap.Uint32("id", uint32(id)), zap.Stringer("kind", c.Kind))
	s.selectObject(id)
}

func (c Select) apply(s *State) {
	if _, ok := s.Store.Get(c.ID); !ok {
		return
	}
	s.selectObject(c.ID)
}

func (Deselect) apply(s *State) {
	s.clearSelection()
}

func (SelectNext) apply(s *State) {
	objects := s.Store.All()
	start := -1
	for i := range objects {
		if objects[i].ID == s.selected {
			start = i
			break
		}
	}
	for n := 1; n <= len(objects); n++ {
		o := objects[(start+n+len(objects))%len(objects)]
		if o.Visible {
			s.selectObject(o.ID)
			return
		}
	}
}

func (c Delete) apply(s *State) {
	s.delete(c.ID)
}

func (c SetPosition) apply(s *State)  { s.Store.SetPosition(c.ID, c.Position) }
func (c SetRotation) apply(s *State)  { s.Store.SetRotation(c.ID, c.Rotation) }
func (c SetScale) apply(s *State)     { s.Store.SetScale(c.ID, c.Scale) }
func (c SetColor) apply(s *State)     { s.Store.SetLightColor(c.ID, c.Color) }
func (c SetIntensity) apply(s *State) { s.Store.SetLightIntensity(c.ID, c.Intensity) }
func (c SetDirection) apply(s *State) { s.Store.SetLightDirection(c.ID, c.Direction) }
func (c SetVisible) apply(s *State)   { s.Store.SetVisible(c.ID, c.Visible) }
func (c SetName) apply(s *State)      { s.Store.SetName(c.ID, c.Name) }
