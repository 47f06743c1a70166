package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name searched for on startup.
const FileName = "lodscene.yaml"

// EnvConfig names an explicit config file when --config is not given.
const EnvConfig = "LODSCENE_CONFIG"

// Load builds the editor configuration: defaults, then the first config file
// found, then flag overrides. The result is validated.
func Load() (*Config, error) {
	cfg := Default()

	if path := configSource(); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// configSource picks the config file: --config, then $LODSCENE_CONFIG, then
// the search path. An explicit path is returned even if it does not exist so
// the caller reports it.
func configSource() string {
	if path := ConfigPath(); path != "" {
		return path
	}
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}
	return findConfigFile()
}

// searchPaths lists where a config file is looked for, in order.
func searchPaths() []string {
	return []string{
		FileName,
		"lodscene.yml",
		filepath.Join(ConfigDir(), FileName),
	}
}

func findConfigFile() string {
	for _, path := range searchPaths() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user directory holding lodscene.yaml.
func ConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "lodscene")
}

// loadFromFile merges a YAML file into cfg. Unknown keys are errors so a
// misspelled setting does not silently keep its default. An empty file is
// accepted.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
