package panolens

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds viewer settings. Construct via DefaultConfig or LoadConfig and
// pass the value to NewViewer; the viewer keeps its own copy.
type Config struct {
	// Width and Height are the initial viewport size in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// FOV is the camera's vertical field of view in degrees.
	FOV float64 `yaml:"fov"`

	// ClickTolerance is the per-axis pixel distance within which a
	// press/release pair classifies as a click.
	ClickTolerance float64 `yaml:"click_tolerance"`

	// FadeDuration is the panorama enter fade length in seconds.
	FadeDuration float64 `yaml:"fade_duration"`

	// AutoHideControlBar toggles the control bar on unconsumed clicks that
	// hit no interactive target.
	AutoHideControlBar bool `yaml:"auto_hide_control_bar"`

	// EnableVR includes the VR scheme in the viewer's fixed control set.
	EnableVR bool `yaml:"enable_vr"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Width:              1280,
		Height:             720,
		FOV:                60,
		ClickTolerance:     defaultClickTolerance,
		FadeDuration:       0.5,
		AutoHideControlBar: true,
		EnableVR:           true,
		Logging:            LoggingConfig{Level: "info"},
	}
}

// withDefaults fills zero-value numeric fields from DefaultConfig so a
// partially populated Config stays usable.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	if c.FOV <= 0 {
		c.FOV = def.FOV
	}
	if c.ClickTolerance <= 0 {
		c.ClickTolerance = def.ClickTolerance
	}
	if c.FadeDuration < 0 {
		c.FadeDuration = 0
	}
	return c
}

// LoadConfig parses YAML configuration, overlaying DefaultConfig so absent
// keys keep their defaults.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg.withDefaults(), nil
}

// LoadConfigFile reads and parses a YAML configuration file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return LoadConfig(data)
}
