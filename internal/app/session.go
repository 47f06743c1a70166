// Package app wires the editor core to its two front ends: the ImGui
// editor and the SDL viewer.
package app

import (
	"fmt"
	"image"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/lodscene/internal/config"
	"github.com/Faultbox/lodscene/internal/editor"
	"github.com/Faultbox/lodscene/internal/engine/audio"
	"github.com/Faultbox/lodscene/internal/engine/batch"
	"github.com/Faultbox/lodscene/internal/engine/camera"
	"github.com/Faultbox/lodscene/internal/engine/debug"
	"github.com/Faultbox/lodscene/internal/engine/mesh"
	"github.com/Faultbox/lodscene/internal/engine/picking"
	"github.com/Faultbox/lodscene/internal/engine/renderer"
	"github.com/Faultbox/lodscene/internal/engine/texture"
	"github.com/Faultbox/lodscene/internal/logger"
	"github.com/Faultbox/lodscene/internal/scene"
)

// session is the GL-independent part shared by both front ends.
type session struct {
	cfg         *config.Config
	state       *editor.State
	registry    *mesh.Registry
	texture     *image.RGBA
	audio       *audio.Manager
	screenshots *debug.Screenshots
}

func newSession(cfg *config.Config) (*session, error) {
	reg, err := mesh.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("mesh registry: %w", err)
	}
	tex, err := texture.Load(cfg.Assets.Texture)
	if err != nil {
		return nil, fmt.Errorf("cube texture: %w", err)
	}

	state := editor.New(scene.NewDefault(nil), newCamera(cfg.Camera))
	state.Radii = picking.Radii{Solid: cfg.Picking.SolidRadius, Light: cfg.Picking.LightRadius}
	state.Viewport = picking.Viewport{Width: float32(cfg.Window.Width), Height: float32(cfg.Window.Height)}

	s := &session{
		cfg:         cfg,
		state:       state,
		registry:    reg,
		texture:     tex,
		audio:       newAudio(cfg.Audio),
		screenshots: debug.NewScreenshots(cfg.Assets.ScreenshotDir, "lodscene"),
	}
	state.OnCue = s.playCue
	return s, nil
}

func newCamera(cfg config.CameraConfig) *camera.FreeLook {
	cam := camera.NewFreeLook()
	cam.Position = mgl32.Vec3(cfg.Position)
	cam.Speed = cfg.Speed
	cam.Sensitivity = cfg.Sensitivity
	cam.FOV = cfg.FOV
	cam.Near = cfg.Near
	cam.Far = cfg.Far
	return cam
}

// newAudio returns a manager even when the device cannot be opened; Play
// then fails quietly.
func newAudio(cfg config.AudioConfig) *audio.Manager {
	m := audio.New()
	m.SetVolume(float64(cfg.Volume))
	if !cfg.Enabled {
		return m
	}
	for name, path := range cfg.Samples {
		if err := loadSample(m, name, path); err != nil {
			logger.Warn("cue sample not loaded", zap.String("cue", name), zap.Error(err))
		}
	}
	if err := m.Init(); err != nil {
		logger.Warn("audio disabled", zap.Error(err))
	}
	return m
}

func loadSample(m *audio.Manager, name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.LoadSample(name, f)
}

func (s *session) playCue(c editor.Cue) {
	if !s.audio.IsInitialized() {
		return
	}
	if err := s.audio.Play(c.String()); err != nil {
		logger.Debug("cue not played", zap.Stringer("cue", c), zap.Error(err))
	}
}

// step advances the editor and builds what the renderer needs.
func (s *session) step(dt float32) (editor.Snapshot, renderer.Params) {
	s.state.Update(dt)
	snap := s.state.Snapshot()
	return snap, renderer.Params{
		View:       snap.View,
		Projection: snap.Projection,
		CameraPos:  snap.CameraPos,
		Clock:      snap.Clock,
		Lights:     snap.Lights,
	}
}

// saveScreenshot writes img and reports the result in the log.
func (s *session) saveScreenshot(img image.Image) (string, error) {
	path, err := s.screenshots.Save(img)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return "", err
	}
	logger.Info("screenshot saved", zap.String("path", path))
	return path, nil
}

func (s *session) close() {
	s.audio.Close()
}

// title is the window title with live LOD statistics.
func title(base string, stats batch.Stats, mode editor.Mode) string {
	t := fmt.Sprintf("%s | %s", base, stats)
	if mode != editor.ModeNone {
		t += " | mode: " + mode.String()
	}
	return t
}
