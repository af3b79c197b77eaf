package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/geo-aid/geoaid/pkg/glide"
)

// AppConfig collects the settings a geoaid run needs beyond the figure
// script itself: the search parameters and the canvas it's rendered into.
type AppConfig struct {
	// Canvas sizes the output figure.
	Canvas CanvasConfig `json:"canvas" yaml:"canvas"`

	// Search holds the Glide optimizer's parameters.
	Search SearchConfig `json:"search" yaml:"search"`

	// Seed is the master seed all per-sample randomness is derived from.
	Seed int64 `json:"seed" yaml:"seed"`

	// Output path the assembled figure JSON is written to.
	Output string `json:"output" yaml:"output"`
}

// CanvasConfig sizes the rendered figure, in drawing units.
type CanvasConfig struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// SearchConfig mirrors glide.Params for file/env configuration.
type SearchConfig struct {
	Strictness   float64 `json:"strictness" yaml:"strictness"`
	Samples      int     `json:"samples" yaml:"samples"`
	WorkerCount  int     `json:"workers" yaml:"workers"`
	MeanCount    int     `json:"mean_count" yaml:"mean_count"`
	MaxMeanDelta float64 `json:"max_mean_delta" yaml:"max_mean_delta"`
}

func (s SearchConfig) toParams() glide.Params {
	return glide.Params{
		Strictness:   s.Strictness,
		Samples:      s.Samples,
		WorkerCount:  s.WorkerCount,
		MeanCount:    s.MeanCount,
		MaxMeanDelta: s.MaxMeanDelta,
	}
}

// DefaultAppConfig returns a configuration with safe defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Canvas: CanvasConfig{Width: 800, Height: 600},
		Search: SearchConfig{
			Strictness:   2,
			Samples:      256,
			WorkerCount:  4,
			MeanCount:    32,
			MaxMeanDelta: 1e-4,
		},
		Seed:   1,
		Output: "./figure.json",
	}
}

// LoadConfig reads path into out. JSON (.json) and YAML (.yaml, .yml) are
// supported; an unrecognized extension tries JSON then YAML.
func LoadConfig(path string, out interface{}) error {
	if path == "" {
		return errors.New("LoadConfig: empty path")
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("LoadConfig: read file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(bs, out); err != nil {
			return fmt.Errorf("LoadConfig: json unmarshal: %w", err)
		}
		return nil
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(bs, out); err != nil {
			return fmt.Errorf("LoadConfig: yaml unmarshal: %w", err)
		}
		return nil
	default:
		if err := json.Unmarshal(bs, out); err == nil {
			return nil
		}
		if err := yaml.Unmarshal(bs, out); err == nil {
			return nil
		}
		return fmt.Errorf("LoadConfig: unsupported format and parsing failed (json/yaml tried)")
	}
}

// LoadAppConfig loads an AppConfig from path, layering defaults, file
// contents, and environment overrides, in that order, then validates it.
// An empty path skips the file layer and returns defaults plus env/validation.
func LoadAppConfig(path string) (AppConfig, error) {
	cfg := DefaultAppConfig()

	if path != "" {
		if err := LoadConfig(path, &cfg); err != nil {
			return cfg, err
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration. WorkerCount<=0 falls back to
// runtime.NumCPU before the glide.Params validation runs.
func (c *AppConfig) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return errors.New("Canvas.Width and Canvas.Height must be > 0")
	}
	if strings.TrimSpace(c.Output) == "" {
		return errors.New("Output must be set")
	}
	if c.Search.WorkerCount <= 0 {
		c.Search.WorkerCount = runtime.NumCPU()
	}
	if err := c.Search.toParams().Validate(); err != nil {
		return fmt.Errorf("Search: %w", err)
	}
	return nil
}

// Params returns the glide.Params this configuration resolves to.
func (c AppConfig) Params() glide.Params {
	return c.Search.toParams()
}

// applyEnvOverrides lets a handful of environment variables override file
// and default settings, for quick iteration without editing a config file:
//
//	GEOAID_SEED, GEOAID_SAMPLES, GEOAID_WORKERS, GEOAID_STRICTNESS, GEOAID_OUTPUT
func applyEnvOverrides(c *AppConfig) {
	if v := os.Getenv("GEOAID_SEED"); v != "" {
		if s, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = s
		}
	}
	if v := os.Getenv("GEOAID_SAMPLES"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			c.Search.Samples = i
		}
	}
	if v := os.Getenv("GEOAID_WORKERS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			c.Search.WorkerCount = i
		}
	}
	if v := os.Getenv("GEOAID_STRICTNESS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Search.Strictness = f
		}
	}
	if v := os.Getenv("GEOAID_OUTPUT"); v != "" {
		c.Output = v
	}
}
