// Package config handles atlas tool configuration loading and management.
package config

import (
	"fmt"
	"time"
)

// Config holds all settings.
type Config struct {
	Atlas   AtlasConfig   `yaml:"atlas"`
	Loader  LoaderConfig  `yaml:"loader"`
	Assets  AssetsConfig  `yaml:"assets"`
	Export  ExportConfig  `yaml:"export"`
	Preview PreviewConfig `yaml:"preview"`
	Logging LoggingConfig `yaml:"logging"`
}

// AtlasConfig holds atlas surface and packing settings.
type AtlasConfig struct {
	Width    int  `yaml:"width"`
	Height   int  `yaml:"height"`
	TileSize int  `yaml:"tile_size"`
	TilePad  bool `yaml:"tilepad"`
	Padding  int  `yaml:"padding"`
	FourTap  bool `yaml:"four_tap"` // Blend four samples per fragment
}

// LoaderConfig holds raster loading settings.
type LoaderConfig struct {
	MaxConcurrentFetches int           `yaml:"max_concurrent_fetches"`
	SettleDelay          time.Duration `yaml:"settle_delay"` // Used when the binding cannot confirm uploads
}

// AssetsConfig holds raster source locations.
type AssetsConfig struct {
	GRFPaths []string `yaml:"grf_paths"` // Searched last to first
	Dirs     []string `yaml:"dirs"`
	Patterns []string `yaml:"patterns"` // fmt patterns turning a name into a path
}

// ExportConfig holds atlas dump settings.
type ExportConfig struct {
	Dir      string `yaml:"dir"`
	Compress bool   `yaml:"compress"`
}

// PreviewConfig holds settings for the preview window.
type PreviewConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	VSync  bool `yaml:"vsync"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Atlas: AtlasConfig{
			Width:    2048,
			Height:   2048,
			TileSize: 16,
			TilePad:  true,
			Padding:  1,
			FourTap:  true,
		},
		Loader: LoaderConfig{
			MaxConcurrentFetches: 8,
		},
		Assets: AssetsConfig{
			Dirs:     []string{"."},
			Patterns: []string{"textures/blocks/%s.png", "%s.png", "%s"},
		},
		Export: ExportConfig{
			Dir: "atlas-dump",
		},
		Preview: PreviewConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks values that would make the atlas unusable.
func (c *Config) Validate() error {
	if err := c.Atlas.Validate(); err != nil {
		return err
	}
	if c.Loader.MaxConcurrentFetches < 0 {
		return fmt.Errorf("loader.max_concurrent_fetches: must be non-negative, got %d", c.Loader.MaxConcurrentFetches)
	}
	if c.Loader.SettleDelay < 0 {
		return fmt.Errorf("loader.settle_delay: must be non-negative, got %v", c.Loader.SettleDelay)
	}
	if c.Preview.Width <= 0 || c.Preview.Height <= 0 {
		return fmt.Errorf("preview: window size must be positive, got %dx%d", c.Preview.Width, c.Preview.Height)
	}
	return nil
}

// Validate rejects non-positive sizes and tiles larger than the atlas.
func (a AtlasConfig) Validate() error {
	switch {
	case a.Width <= 0 || a.Height <= 0:
		return fmt.Errorf("atlas: size must be positive, got %dx%d", a.Width, a.Height)
	case a.TileSize <= 0:
		return fmt.Errorf("atlas.tile_size: must be positive, got %d", a.TileSize)
	case a.TileSize > a.Width || a.TileSize > a.Height:
		return fmt.Errorf("atlas.tile_size: %d exceeds atlas %dx%d", a.TileSize, a.Width, a.Height)
	case a.Padding < 0:
		return fmt.Errorf("atlas.padding: must be non-negative, got %d", a.Padding)
	}
	return nil
}
