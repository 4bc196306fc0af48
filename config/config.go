// Package config handles geochron configuration: defaults, optional
// YAML file, and documented clamping of out-of-range values.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all renderer settings.
type Config struct {
	Render   RenderConfig  `yaml:"render"`
	Textures TextureConfig `yaml:"textures"`
	Time     TimeConfig    `yaml:"time"`
	Logging  LoggingConfig `yaml:"logging"`
}

// RenderConfig holds compositing settings.
type RenderConfig struct {
	Width           int           `yaml:"width"`
	Height          int           `yaml:"height"`
	Projection      string        `yaml:"projection"`       // equirectangular | mercator
	SolarModel      string        `yaml:"solar_model"`      // loworder | precise
	TransitionWidth float64       `yaml:"transition_width"` // degrees, [2,15]
	NightOpacity    float64       `yaml:"night_opacity"`    // [0.3,1.0]
	Stride          int           `yaml:"stride"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	Workers         int           `yaml:"workers"` // 0 = one per CPU
	Bilinear        bool          `yaml:"bilinear"`
}

// TextureConfig holds source imagery paths.
type TextureConfig struct {
	Day   string `yaml:"day"`
	Night string `yaml:"night"`
}

// TimeConfig holds simulated-time settings.
type TimeConfig struct {
	// Multiplier scales how fast simulated time advances relative to
	// wall-clock time. 1 tracks real time.
	Multiplier float64 `yaml:"multiplier"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:           1024,
			Height:          512,
			Projection:      "equirectangular",
			SolarModel:      "loworder",
			TransitionWidth: 5.0,
			NightOpacity:    0.7,
			Stride:          2,
			RefreshInterval: time.Minute,
		},
		Textures: TextureConfig{
			Day:   "assets/day.tif",
			Night: "assets/night.tif",
		},
		Time: TimeConfig{
			Multiplier: 1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration: defaults, overridden by the YAML file
// at path when path is non-empty, then clamped into valid ranges.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.Clamp()
	return cfg, nil
}

// Clamp forces tunables into their documented ranges rather than
// rejecting the file outright.
func (c *Config) Clamp() {
	c.Render.TransitionWidth = clampF(c.Render.TransitionWidth, 2, 15)
	c.Render.NightOpacity = clampF(c.Render.NightOpacity, 0.3, 1.0)

	if c.Render.Stride < 1 {
		c.Render.Stride = 1
	}
	if c.Render.Width < 1 {
		c.Render.Width = 1
	}
	if c.Render.Height < 1 {
		c.Render.Height = 1
	}
	if c.Render.RefreshInterval < 0 {
		c.Render.RefreshInterval = 0
	}
	if c.Time.Multiplier <= 0 {
		c.Time.Multiplier = 1
	}
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
