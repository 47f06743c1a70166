package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/lodscene/internal/editor"
	"github.com/Faultbox/lodscene/internal/engine/batch"
	"github.com/Faultbox/lodscene/internal/engine/lod"
	"github.com/Faultbox/lodscene/internal/logger"
	"github.com/Faultbox/lodscene/internal/scene"
)

const (
	panelWidth    float32 = 320
	notifyTimeout         = 2 * time.Second
)

var (
	colorMode  = imgui.NewVec4(1.0, 0.65, 0.1, 1.0)
	colorMuted = imgui.NewVec4(0.6, 0.6, 0.6, 1.0)
	colorOK    = imgui.NewVec4(0.2, 1.0, 0.2, 1.0)
)

// Panel is the editor side panel. Draw returns the edits the user made this
// frame; the caller applies them to the editor state.
type Panel struct {
	// Mode is shown in the mode indicator. The caller sets it before Draw.
	Mode editor.Mode

	cmds []editor.Command

	nameID   scene.ID
	nameEdit string

	mu          sync.Mutex
	pendingTex  string
	dialogOpen  bool
	message     string
	messageTime time.Time
}

// NewPanel creates an empty panel.
func NewPanel() *Panel {
	return &Panel{}
}

// Notify shows a short status message.
func (p *Panel) Notify(msg string) {
	p.message = msg
	p.messageTime = time.Now()
}

// PendingTexture returns a texture path picked in the file dialog, once.
func (p *Panel) PendingTexture() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	path := p.pendingTex
	p.pendingTex = ""
	return path, path != ""
}

// Draw renders the panel for the current scene snapshot.
func (p *Panel) Draw(objects []scene.Object, selected scene.ID, stats batch.Stats) []editor.Command {
	p.cmds = p.cmds[:0]

	_, h := DisplaySize()
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondFirstUseEver, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(panelWidth, h-20), imgui.CondFirstUseEver)

	if imgui.BeginV("Scene", nil, imgui.WindowFlagsNoCollapse) {
		p.drawMode()
		p.drawAdd()
		p.drawObjects(objects, selected)
		p.drawProperties(objects, selected)
		p.drawStats(stats)
		p.drawAssets()
		p.drawHelp()
	}
	imgui.End()

	p.drawNotification()
	return p.cmds
}

func (p *Panel) drawMode() {
	if p.Mode == editor.ModeNone {
		imgui.TextColored(colorMuted, "Mode: none")
		return
	}
	imgui.TextColored(colorMode, fmt.Sprintf("Mode: %s (Esc to leave)", p.Mode))
}

func (p *Panel) drawAdd() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Add", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	for i, b := range addButtons {
		if i > 0 {
			imgui.SameLine()
		}
		if imgui.Button(b.label) {
			p.cmds = append(p.cmds, editor.AddObject{Kind: b.kind})
		}
	}
}

func (p *Panel) drawObjects(objects []scene.Object, selected scene.ID) {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Objects", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	if imgui.BeginChildStrV("ObjectList", imgui.NewVec2(0, 160), imgui.ChildFlagsBorders, 0) {
		for _, o := range objects {
			if imgui.SelectableBoolV(objectLabel(o), o.ID == selected, 0, imgui.NewVec2(0, 0)) {
				p.cmds = append(p.cmds, editor.Select{ID: o.ID})
			}
		}
		if len(objects) == 0 {
			imgui.TextDisabled("(empty scene)")
		}
	}
	imgui.EndChild()
}

func (p *Panel) drawProperties(objects []scene.Object, selected scene.ID) {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Properties", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	var obj scene.Object
	found := false
	for _, o := range objects {
		if o.ID == selected {
			obj, found = o, true
			break
		}
	}
	if !found {
		imgui.TextDisabled("Nothing selected")
		return
	}

	imgui.PushIDInt(int32(obj.ID))
	defer imgui.PopID()

	imgui.TextColored(colorMuted, obj.Kind().String())
	p.drawName(obj)

	orig := formOf(obj)
	f := orig
	imgui.Checkbox("Visible", &f.Visible)
	imgui.DragFloat3V("Position", &f.Position, 0.05, 0, 0, "%.2f", 0)

	switch obj.Kind() {
	case scene.KindSolid:
		imgui.DragFloat2V("Pitch/Yaw", &f.Rotation, 0.5, 0, 0, "%.1f", 0)
		imgui.SliderFloatV("Scale", &f.Scale, scene.MinScale, scene.MaxScale, "%.2f", imgui.SliderFlagsAlwaysClamp)
	default:
		imgui.ColorEdit3("Color", &f.Color)
		imgui.DragFloatV("Intensity", &f.Intensity, 0.01, 0, 10, "%.2f", imgui.SliderFlagsAlwaysClamp)
		if obj.Kind() == scene.KindDirectionalLight {
			imgui.SliderFloatV("Azimuth", &f.Azimuth, -180, 180, "%.0f deg", imgui.SliderFlagsNone)
			imgui.SliderFloatV("Elevation", &f.Elevation, -90, 90, "%.0f deg", imgui.SliderFlagsNone)
		}
	}
	p.cmds = append(p.cmds, f.commands(obj.ID, obj.Kind(), orig)...)

	imgui.Spacing()
	if imgui.Button("Deselect") {
		p.cmds = append(p.cmds, editor.Deselect{})
	}
	imgui.SameLine()
	if imgui.Button("Delete") {
		p.cmds = append(p.cmds, editor.Delete{ID: obj.ID})
	}
}

func (p *Panel) drawName(obj scene.Object) {
	if p.nameID != obj.ID {
		p.nameID = obj.ID
		p.nameEdit = obj.Name
	}
	if imgui.InputTextWithHint("Name", "object name", &p.nameEdit, imgui.InputTextFlagsEnterReturnsTrue, nil) {
		if p.nameEdit != "" && p.nameEdit != obj.Name {
			p.cmds = append(p.cmds, editor.SetName{ID: obj.ID, Name: p.nameEdit})
		}
	}
}

func (p *Panel) drawStats(stats batch.Stats) {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Statistics", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	for t := range lod.Count {
		imgui.Text(fmt.Sprintf("%-6s %d", lod.Tier(t), stats.Instances[t]))
	}
	imgui.Text(fmt.Sprintf("Draw calls: %d", stats.DrawCalls))
	imgui.Text(fmt.Sprintf("Helpers: %d", stats.Helpers))
}

func (p *Panel) drawAssets() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Assets", 0) {
		return
	}
	p.mu.Lock()
	busy := p.dialogOpen
	p.mu.Unlock()

	imgui.BeginDisabledV(busy)
	if imgui.Button("Load texture...") {
		p.openTextureDialog()
	}
	imgui.EndDisabled()
}

// openTextureDialog shows the native file dialog off the frame thread. The
// chosen path is picked up with PendingTexture.
func (p *Panel) openTextureDialog() {
	p.mu.Lock()
	p.dialogOpen = true
	p.mu.Unlock()

	go func() {
		path, err := dialog.File().
			Filter("Images", "png", "jpg", "jpeg", "bmp").
			Filter("All Files", "*").
			Title("Load cube texture").
			Load()

		p.mu.Lock()
		defer p.mu.Unlock()
		p.dialogOpen = false
		if err != nil {
			if err != dialog.ErrCancelled {
				logger.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		p.pendingTex = path
	}()
}

func (p *Panel) drawHelp() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Controls", 0) {
		return
	}
	for _, line := range controlsHelp {
		imgui.BulletText(line)
	}
}

func (p *Panel) drawNotification() {
	if p.message == "" {
		return
	}
	if time.Since(p.messageTime) > notifyTimeout {
		p.message = ""
		return
	}
	w, h := DisplaySize()
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoInputs |
		imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoFocusOnAppearing
	imgui.SetNextWindowPosV(imgui.NewVec2(w/2, h-40), imgui.CondAlways, imgui.NewVec2(0.5, 0.5))
	imgui.SetNextWindowBgAlpha(0.8)
	if imgui.BeginV("##Notify", nil, flags) {
		imgui.TextColored(colorOK, p.message)
	}
	imgui.End()
}
