package app

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/lodscene/internal/config"
	"github.com/Faultbox/lodscene/internal/engine/batch"
	"github.com/Faultbox/lodscene/internal/engine/framebuffer"
	"github.com/Faultbox/lodscene/internal/engine/renderer"
	"github.com/Faultbox/lodscene/internal/engine/texture"
	"github.com/Faultbox/lodscene/internal/logger"
	"github.com/Faultbox/lodscene/internal/ui"
)

// Editor is the ImGui front end. The scene is rendered into an offscreen
// framebuffer shown behind the panel.
type Editor struct {
	*session
	backend  *ui.Backend
	renderer *renderer.Renderer
	fb       *framebuffer.Framebuffer
	panel    *ui.Panel
	bridge   *ui.InputBridge

	lastFrame  time.Time
	titleTimer time.Time
}

// NewEditor creates the window, the ImGui context and the scene renderer.
// The caller must have locked the OS thread.
func NewEditor(cfg *config.Config) (*Editor, error) {
	logger.Info("initializing editor",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	s, err := newSession(cfg)
	if err != nil {
		return nil, err
	}
	var undo cleanup
	undo.push(s.close)

	e := &Editor{
		session: s,
		panel:   ui.NewPanel(),
		bridge:  ui.NewInputBridge(),
	}

	e.backend, err = ui.NewBackend(cfg.Window)
	if err != nil {
		undo.run()
		return nil, fmt.Errorf("failed to create backend: %w", err)
	}
	undo.push(e.backend.Close)

	e.renderer, err = renderer.New(s.registry, s.texture)
	if err != nil {
		undo.run()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	undo.push(e.renderer.Close)

	e.fb, err = framebuffer.New(int32(cfg.Window.Width), int32(cfg.Window.Height))
	if err != nil {
		undo.run()
		return nil, fmt.Errorf("failed to create framebuffer: %w", err)
	}

	logger.Info("editor initialized")
	return e, nil
}

// Run drives the ImGui loop until the window closes.
func (e *Editor) Run() error {
	e.lastFrame = time.Now()
	logger.Info("starting editor loop")
	e.backend.Run(e.frame)
	return nil
}

func (e *Editor) frame() {
	now := time.Now()
	dt := float32(now.Sub(e.lastFrame).Seconds())
	e.lastFrame = now

	events := e.bridge.Poll()
	e.state.OverUI = e.bridge.OverUI()
	capture := false
	for _, ev := range events {
		if e.state.HandleEvent(ev) {
			e.backend.SetShouldClose(true)
		}
		if cmd := hotkey(ev, e.state); cmd != nil {
			e.state.Apply(cmd)
		}
		if wantsScreenshot(ev) {
			capture = true
		}
	}

	snap, params := e.step(dt)

	e.renderScene(snap.Frame, params)
	if capture {
		if path, err := e.saveScreenshot(e.fb.ReadImage()); err == nil {
			e.panel.Notify("Saved " + filepath.Base(path))
		} else {
			e.panel.Notify("Screenshot failed")
		}
	}
	ui.DrawSceneTexture(e.fb.ColorTexture())

	stats := snap.Frame.Stats()
	e.panel.Mode = snap.Mode
	e.state.ApplyAll(e.panel.Draw(snap.Objects, snap.Selected, stats))

	if path, ok := e.panel.PendingTexture(); ok {
		e.loadTexture(path)
	}

	if now.Sub(e.titleTimer) >= titleInterval {
		e.backend.SetWindowTitle(title(e.cfg.Window.Title, stats, snap.Mode))
		e.titleTimer = now
	}
}

// renderScene draws into the offscreen framebuffer at pixel resolution.
func (e *Editor) renderScene(f *batch.Frame, p renderer.Params) {
	w, h := ui.DisplaySize()
	sx, sy := ui.FramebufferScale()
	width := max(int32(w*sx+0.5), 1)
	height := max(int32(h*sy+0.5), 1)
	if fw, fh := e.fb.Size(); fw != width || fh != height {
		e.fb.Resize(width, height)
		logger.Debug("framebuffer resized", zap.Int32("width", width), zap.Int32("height", height))
	}

	restore := e.fb.Bind()
	defer restore()
	width, height = e.fb.Size()
	e.renderer.Clear(width, height)
	e.renderer.Draw(f, p)
}

// loadTexture replaces the cube texture. A bad file keeps the old one.
func (e *Editor) loadTexture(path string) {
	img, err := texture.Load(path)
	if err == nil {
		err = e.renderer.SetTexture(img)
	}
	if err != nil {
		logger.Warn("texture not loaded", zap.String("path", path), zap.Error(err))
		e.panel.Notify("Texture failed: " + filepath.Base(path))
		return
	}
	logger.Info("texture loaded", zap.String("path", path))
	e.panel.Notify("Loaded " + filepath.Base(path))
}

// Close releases GPU and audio resources.
func (e *Editor) Close() {
	logger.Info("closing editor")

	if e.fb != nil {
		e.fb.Destroy()
	}
	if e.renderer != nil {
		e.renderer.Close()
	}
	e.close()
}
