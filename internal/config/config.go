package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ScenePath     string  `yaml:"scene"`
	OutputPath    string  `yaml:"output"`
	TotalDuration float64 `yaml:"duration"` // Fit the timeline to this length; 0 keeps it as authored
	Width         int     `yaml:"width"`    // Base camera override; 0 keeps the scene's camera
	Height        int     `yaml:"height"`
	FPS           int     `yaml:"fps"`
	Workers       int     `yaml:"workers"`
	AudioPath     string  `yaml:"audio"`
	AudioSync     bool    `yaml:"audioSync"`
	Preset        string  `yaml:"preset"`
	ShowStats     bool    `yaml:"stats"`
	BuildVersion  string  `yaml:"-"`
}

// Default returns the settings used when neither a config file nor flags
// say otherwise.
func Default() Config {
	return Config{
		FPS:       30,
		AudioSync: true,
	}
}

// LoadFile reads a YAML config file on top of Default().
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// PresetSize resolves an aspect preset to camera dimensions.
func PresetSize(preset string) (width, height int, ok bool) {
	switch preset {
	case "16:9":
		return 1280, 720, true
	case "9:16":
		return 720, 1280, true
	case "4:5":
		return 1080, 1350, true
	}
	return 0, 0, false
}

// Validate checks settings that would make an export meaningless.
func (c Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("camera size must not be negative, got %dx%d", c.Width, c.Height)
	}
	if c.TotalDuration < 0 {
		return fmt.Errorf("duration must not be negative, got %f", c.TotalDuration)
	}
	return nil
}
