// Package config handles editor configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all editor settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Picking PickingConfig `yaml:"picking"`
	Assets  AssetsConfig  `yaml:"assets"`
	Audio   AudioConfig   `yaml:"audio"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

// CameraConfig holds the initial camera and projection settings.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Speed       float32    `yaml:"speed"`       // units per second
	Sensitivity float32    `yaml:"sensitivity"` // degrees per pixel
	FOV         float32    `yaml:"fov"`         // vertical, degrees
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
}

// PickingConfig holds click tolerances in pixels.
type PickingConfig struct {
	SolidRadius float32 `yaml:"solid_radius"`
	LightRadius float32 `yaml:"light_radius"`
}

// AssetsConfig holds asset paths.
type AssetsConfig struct {
	// Texture applied to every cube. Empty uses a generated checkerboard.
	Texture string `yaml:"texture"`
	// ScreenshotDir receives F12 captures.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// AudioConfig holds editor sound settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float32 `yaml:"volume"`
	// Samples maps cue names (select, add, delete, mode-arm) to WAV files
	// that replace the generated tones.
	Samples map[string]string `yaml:"samples,omitempty"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "LOD Scene Editor",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 0, 10},
			Speed:       5.0,
			Sensitivity: 0.1,
			FOV:         45.0,
			Near:        0.1,
			Far:         100.0,
		},
		Picking: PickingConfig{
			SolidRadius: 30,
			LightRadius: 50,
		},
		Assets: AssetsConfig{
			ScreenshotDir: "screenshots",
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.6,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every setting that cannot work.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera fov %v must be in (0, 180)", c.Camera.FOV))
	}
	if c.Camera.Near <= 0 {
		errs = append(errs, fmt.Errorf("camera near %v must be positive", c.Camera.Near))
	}
	if c.Camera.Near >= c.Camera.Far {
		errs = append(errs, fmt.Errorf("camera near %v must be less than far %v", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.Speed < 0 || c.Camera.Sensitivity < 0 {
		errs = append(errs, errors.New("camera speed and sensitivity must not be negative"))
	}
	if c.Picking.SolidRadius <= 0 || c.Picking.LightRadius <= 0 {
		errs = append(errs, fmt.Errorf("pick radii %v/%v must be positive", c.Picking.SolidRadius, c.Picking.LightRadius))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio volume %v must be in [0, 1]", c.Audio.Volume))
	}
	return errors.Join(errs...)
}
