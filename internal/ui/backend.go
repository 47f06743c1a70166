// Package ui is the ImGui front end of the editor: the window backend, the
// bridge from ImGui input to editor events, and the scene panel.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/lodscene/internal/config"
)

// Backend wraps the ImGui SDL backend.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	done    bool
}

// NewBackend creates the window, the ImGui context and the GL context.
func NewBackend(cfg config.WindowConfig) (*Backend, error) {
	b := &Backend{}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	b.backend.CreateWindow(cfg.Title, cfg.Width, cfg.Height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}
	return b, nil
}

// Run starts the main loop. frame is called once per frame between the
// backend's NewFrame and Render.
func (b *Backend) Run(frame func()) {
	if b.done {
		return
	}
	b.done = true
	b.backend.Run(frame)
}

// Close releases the window and the ImGui context of a backend whose loop
// never ran. The SDL backend only tears down when its loop exits, so Close
// runs a loop that stops after the first frame.
func (b *Backend) Close() {
	if b.done {
		return
	}
	b.backend.SetShouldClose(true)
	b.Run(func() {})
}

// SetShouldClose asks the loop to exit after the current frame.
func (b *Backend) SetShouldClose(v bool) {
	b.backend.SetShouldClose(v)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// DisplaySize returns the main viewport size in screen coordinates.
func DisplaySize() (width, height float32) {
	size := imgui.MainViewport().Size()
	return size.X, size.Y
}

// FramebufferScale returns the pixel-to-point ratio of the display.
func FramebufferScale() (x, y float32) {
	s := imgui.CurrentIO().DisplayFramebufferScale()
	if s.X <= 0 || s.Y <= 0 {
		return 1, 1
	}
	return s.X, s.Y
}

// DrawSceneTexture fills the main viewport with a rendered texture behind
// every other window. The window takes no input, so clicks reach the editor.
func DrawSceneTexture(textureID uint32) {
	if textureID == 0 {
		return
	}
	vp := imgui.MainViewport()
	pos, size := vp.Pos(), vp.Size()

	imgui.SetNextWindowPos(pos)
	imgui.SetNextWindowSize(size)

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoScrollWithMouse | imgui.WindowFlagsNoBringToFrontOnFocus |
		imgui.WindowFlagsNoInputs | imgui.WindowFlagsNoSavedSettings | imgui.WindowFlagsNoBackground

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	imgui.PushStyleVarFloat(imgui.StyleVarWindowBorderSize, 0)
	if imgui.BeginV("##Scene", nil, flags) {
		texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
		imgui.ImageWithBgV(
			*texRef,
			size,
			imgui.NewVec2(0, 1), // GL textures are bottom-up
			imgui.NewVec2(1, 0),
			imgui.NewVec4(0, 0, 0, 1),
			imgui.NewVec4(1, 1, 1, 1),
		)
	}
	imgui.End()
	imgui.PopStyleVarV(2)
}
