// Package config provides configuration loading for the particle toy.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/olivierh59500/coffee-particles/internal/particle"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable of the program.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Brew        particle.Brew     `yaml:"brew"`
	Limits      particle.Limits   `yaml:"limits"`
	Grid        GridConfig        `yaml:"grid"`
	Stream      StreamConfig      `yaml:"stream"`
	Interaction InteractionConfig `yaml:"interaction"`
	Preview     PreviewConfig     `yaml:"preview"`
	Store       StoreConfig       `yaml:"store"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window settings.
type ScreenConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	TPS    int    `yaml:"tps"`
	Title  string `yaml:"title"`
}

// GridConfig places the static grid.
type GridConfig struct {
	OffsetX  float64 `yaml:"offset_x"` // from the left edge
	OffsetY  float64 `yaml:"offset_y"` // from the top edge
	CellSize float64 `yaml:"cell_size"`
}

// StreamConfig places the stream emitter.
type StreamConfig struct {
	OffsetTop float64 `yaml:"offset_top"`
}

// InteractionConfig tunes the repulsion pass.
type InteractionConfig struct {
	Broadphase string `yaml:"broadphase"`
}

// PreviewConfig controls the brew preview shown in the setting mode.
type PreviewConfig struct {
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Wobble     float64 `yaml:"wobble"`      // relative radius swing
	NoiseSpeed float64 `yaml:"noise_speed"` // noise units per tick
}

// StoreConfig names the settings storage.
type StoreConfig struct {
	AppName string `yaml:"app_name"`
}

// TelemetryConfig controls CSV sampling.
type TelemetryConfig struct {
	Every int `yaml:"every"` // ticks between samples
}

// DerivedConfig holds world-space geometry computed from the screen size.
type DerivedConfig struct {
	Bounds       particle.Rect
	GridAnchor   r2.Vec
	StreamOrigin r2.Vec
	Broadphase   particle.Broadphase
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size %dx%d must be positive", c.Screen.Width, c.Screen.Height))
	}
	if c.Screen.TPS <= 0 {
		errs = append(errs, fmt.Errorf("screen.tps %d must be positive", c.Screen.TPS))
	}
	l := c.Limits
	if l.RadiusMin <= 0 || l.RadiusMax < l.RadiusMin {
		errs = append(errs, fmt.Errorf("limits radius range [%v,%v] is empty or not positive", l.RadiusMin, l.RadiusMax))
	}
	if l.ResolutionMin < 1 || l.ResolutionMax < l.ResolutionMin {
		errs = append(errs, fmt.Errorf("limits resolution range [%d,%d] is empty or below 1", l.ResolutionMin, l.ResolutionMax))
	}
	if c.Grid.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("grid.cell_size %v must be positive", c.Grid.CellSize))
	}
	if _, err := particle.ParseBroadphase(c.Interaction.Broadphase); err != nil {
		errs = append(errs, fmt.Errorf("interaction: %w", err))
	}
	if c.Telemetry.Every < 1 {
		errs = append(errs, fmt.Errorf("telemetry.every %d must be at least 1", c.Telemetry.Every))
	}
	return errors.Join(errs...)
}

// computeDerived lays the world out centred on the origin with Y up, the
// same frame the simulation runs in.
func (c *Config) computeDerived() {
	hw := float64(c.Screen.Width) / 2
	hh := float64(c.Screen.Height) / 2
	c.Derived.Bounds = particle.Rect{
		Min: r2.Vec{X: -hw, Y: -hh},
		Max: r2.Vec{X: hw, Y: hh},
	}
	c.Derived.GridAnchor = r2.Vec{X: -hw + c.Grid.OffsetX, Y: hh - c.Grid.OffsetY}
	c.Derived.StreamOrigin = r2.Vec{X: 0, Y: hh - c.Stream.OffsetTop}
	c.Derived.Broadphase, _ = particle.ParseBroadphase(c.Interaction.Broadphase)
	c.Brew = c.Brew.Clamp(c.Limits)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
