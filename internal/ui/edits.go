package ui

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lodscene/internal/editor"
	"github.com/Faultbox/lodscene/internal/engine/lighting"
	"github.com/Faultbox/lodscene/internal/scene"
)

// objectLabel is the list entry for o. The ##id suffix keeps ImGui ids
// unique when names repeat.
func objectLabel(o scene.Object) string {
	label := o.Name
	if !o.Visible {
		label += " (hidden)"
	}
	return fmt.Sprintf("%s##%d", label, o.ID)
}

// form is the editable copy of one object's properties, bound to the
// property widgets.
type form struct {
	Position  [3]float32
	Rotation  [2]float32 // pitch, yaw
	Scale     float32
	Color     [3]float32
	Intensity float32
	Azimuth   float32
	Elevation float32
	Visible   bool
}

func formOf(o scene.Object) form {
	f := form{
		Position: o.Position,
		Visible:  o.Visible,
	}
	if solid, ok := o.Solid(); ok {
		f.Rotation = solid.Rotation
		f.Scale = solid.Scale
	}
	if light, ok := o.Light(); ok {
		f.Color = light.Color
		f.Intensity = light.Intensity
		f.Azimuth, f.Elevation = lighting.AnglesFromDirection(light.Direction)
	}
	return f
}

// commands returns the edits that turn orig into f.
func (f form) commands(id scene.ID, kind scene.Kind, orig form) []editor.Command {
	var cmds []editor.Command
	if f.Position != orig.Position {
		cmds = append(cmds, editor.SetPosition{ID: id, Position: mgl32.Vec3(f.Position)})
	}
	if f.Visible != orig.Visible {
		cmds = append(cmds, editor.SetVisible{ID: id, Visible: f.Visible})
	}

	if kind == scene.KindSolid {
		if f.Rotation != orig.Rotation {
			cmds = append(cmds, editor.SetRotation{ID: id, Rotation: mgl32.Vec2(f.Rotation)})
		}
		if f.Scale != orig.Scale {
			cmds = append(cmds, editor.SetScale{ID: id, Scale: f.Scale})
		}
		return cmds
	}

	if f.Color != orig.Color {
		cmds = append(cmds, editor.SetColor{ID: id, Color: mgl32.Vec3(f.Color)})
	}
	if f.Intensity != orig.Intensity {
		cmds = append(cmds, editor.SetIntensity{ID: id, Intensity: f.Intensity})
	}
	if kind == scene.KindDirectionalLight && (f.Azimuth != orig.Azimuth || f.Elevation != orig.Elevation) {
		cmds = append(cmds, editor.SetDirection{ID: id, Direction: lighting.DirectionFromAngles(f.Azimuth, f.Elevation)})
	}
	return cmds
}

// addButtons are the "Add" section entries, in display order.
var addButtons = []struct {
	label string
	kind  scene.Kind
}{
	{"Cube", scene.KindSolid},
	{"Ambient", scene.KindAmbientLight},
	{"Point", scene.KindPointLight},
	{"Directional", scene.KindDirectionalLight},
}

// controlsHelp is shown in the panel's Controls section.
var controlsHelp = []string{
	"W/A/S/D: move camera",
	"Space / Left Shift: up / down",
	"Right drag: look around",
	"Wheel: zoom",
	"Left click: select",
	"Ctrl+R / Ctrl+S / Ctrl+T: rotate / scale / translate",
	"Drag the selected object to apply the mode",
	"Esc: leave mode",
	"Delete: remove selected",
	"F12: screenshot",
}
