package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/lodscene/internal/config"
	"github.com/Faultbox/lodscene/internal/engine/framebuffer"
	"github.com/Faultbox/lodscene/internal/engine/input"
	"github.com/Faultbox/lodscene/internal/engine/picking"
	"github.com/Faultbox/lodscene/internal/engine/renderer"
	"github.com/Faultbox/lodscene/internal/engine/window"
	"github.com/Faultbox/lodscene/internal/logger"
)

// titleInterval throttles window title updates.
const titleInterval = 250 * time.Millisecond

// Viewer is the panel-less front end: an SDL window driven by keyboard and
// mouse alone. Live statistics go to the window title.
type Viewer struct {
	*session
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	running  bool
}

// NewViewer opens the window and uploads the scene meshes.
// The caller must have locked the OS thread.
func NewViewer(cfg *config.Config) (*Viewer, error) {
	logger.Info("initializing viewer",
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
	v := &Viewer{session: s, input: input.New()}

	v.window, err = window.New(cfg.Window)
	if err != nil {
		undo.run()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	undo.push(v.window.Close)

	// OpenGL context must exist before the renderer.
	v.renderer, err = renderer.New(s.registry, s.texture)
	if err != nil {
		undo.run()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	w, h := v.window.Size()
	s.state.Viewport = picking.Viewport{Width: float32(w), Height: float32(h)}

	logger.Info("viewer initialized")
	return v, nil
}

// Run drives the frame loop until the window closes.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	titleTimer := time.Time{}
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}

		capture := false
		for _, e := range v.input.Events() {
			if v.state.HandleEvent(e) {
				v.running = false
			}
			if cmd := hotkey(e, v.state); cmd != nil {
				v.state.Apply(cmd)
			}
			if wantsScreenshot(e) {
				capture = true
			}
		}

		snap, params := v.step(dt)

		width, height := v.window.DrawableSize()
		v.renderer.Clear(width, height)
		v.renderer.Draw(snap.Frame, params)

		if capture {
			v.saveScreenshot(framebuffer.ReadPixels(width, height))
		}

		v.window.SwapBuffers()

		if now.Sub(titleTimer) >= titleInterval {
			v.window.SetTitle(title(v.cfg.Window.Title, snap.Frame.Stats(), snap.Mode))
			titleTimer = now
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
				zap.Int("objects", len(snap.Objects)),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

// Close releases GPU, window and audio resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
	v.close()
}
