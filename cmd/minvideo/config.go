package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Size frames are scaled to on convert unless the command line overrides it.
const (
	recommendedWidth  = 128
	recommendedHeight = 96
)

// Config holds CLI defaults.
type Config struct {
	Convert ConvertConfig `yaml:"convert"`
	Export  ExportConfig  `yaml:"export"`
}

// ConvertConfig controls importing standard videos.
type ConvertConfig struct {
	Width  int `yaml:"width"`  // -1 keeps the source width
	Height int `yaml:"height"` // -1 keeps the source height
}

// ExportConfig controls encoding to standard videos.
type ExportConfig struct {
	FPS     float64 `yaml:"fps"`
	Codec   string  `yaml:"codec"`
	Bitrate int     `yaml:"bitrate"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	_ = Validate(cfg)
	return cfg
}

// Load reads and parses a YAML configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration and fills defaults
func Validate(cfg *Config) error {
	if cfg.Convert.Width == 0 {
		cfg.Convert.Width = recommendedWidth
	}
	if cfg.Convert.Height == 0 {
		cfg.Convert.Height = recommendedHeight
	}
	if cfg.Convert.Width < -1 || cfg.Convert.Height < -1 {
		return fmt.Errorf("convert.width and convert.height must be -1 or > 0")
	}

	if cfg.Export.FPS < 0 {
		return fmt.Errorf("export.fps must be >= 0")
	}
	if cfg.Export.FPS == 0 {
		cfg.Export.FPS = 25
	}
	if cfg.Export.Bitrate < 0 {
		return fmt.Errorf("export.bitrate must be >= 0")
	}

	return nil
}
