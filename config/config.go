package config

import (
	"fmt"
	"time"

	"github.com/milk9111/svgphysics/common"
	"gopkg.in/yaml.v3"
)

// Config is the immutable option snapshot a scene is built from. Values are
// produced by Default and overlaid with caller YAML by Parse.
type Config struct {
	Scale           float64         `yaml:"scale"`
	DefaultFill     string          `yaml:"defaultFill"`
	Background      string          `yaml:"background"`
	Debug           Debug           `yaml:"debug"`
	Physics         Physics         `yaml:"physics"`
	MouseConstraint MouseConstraint `yaml:"mouseConstraint"`
	Outline         Outline         `yaml:"outline"`
	Resize          Resize          `yaml:"resize"`
}

type Debug struct {
	DevMode           bool `yaml:"devMode"`
	ShowBoundingBoxes bool `yaml:"showBoundingBoxes"`
}

type Physics struct {
	Restitution        float64 `yaml:"restitution"`
	Friction           float64 `yaml:"friction"`
	VertexLimit        int     `yaml:"vertexLimit"`
	SimplifyTolerance  float64 `yaml:"simplifyTolerance"`
	MinimumArea        float64 `yaml:"minimumArea"`
	PositionIterations int     `yaml:"positionIterations"`
	VelocityIterations int     `yaml:"velocityIterations"`
	Gravity            float64 `yaml:"gravity"`
	Density            float64 `yaml:"density"`
}

type MouseConstraint struct {
	Stiffness float64 `yaml:"stiffness"`
	MaxForce  float64 `yaml:"maxForce"`
}

// Outline is the stroke painted around every shape. An empty or "none"
// stroke, or a non-positive width, paints nothing.
type Outline struct {
	Stroke      string  `yaml:"stroke"`
	StrokeWidth float64 `yaml:"strokeWidth"`
}

type Resize struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns the built-in configuration. Every call returns a fresh value.
func Default() Config {
	return Config{
		Scale:       1,
		DefaultFill: "#000000",
		Background:  "#ffffff",
		Physics: Physics{
			Restitution:        0.3,
			Friction:           0.1,
			VertexLimit:        100,
			SimplifyTolerance:  0.5,
			MinimumArea:        10,
			PositionIterations: 6,
			VelocityIterations: 4,
			Gravity:            1000,
			Density:            0.001,
		},
		MouseConstraint: MouseConstraint{
			Stiffness: 0.2,
			MaxForce:  50000,
		},
		Outline: Outline{
			Stroke:      "none",
			StrokeWidth: 0,
		},
		Resize: Resize{
			Debounce: common.ResizeDebounce,
		},
	}
}

// Parse overlays YAML on top of Default. Keys missing from data keep their
// default value and unknown keys are ignored.
func Parse(data []byte) (Config, error) {
	return Merge(Default(), data)
}

// Merge overlays YAML on top of base and returns the normalized result.
func Merge(base Config, data []byte) (Config, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("config: parse: %w", err)
	}
	return cfg.Normalize(), nil
}

// Normalize replaces values the simulation cannot run with by their defaults.
func (c Config) Normalize() Config {
	def := Default()
	if c.Scale <= 0 {
		c.Scale = def.Scale
	}
	if c.DefaultFill == "" {
		c.DefaultFill = def.DefaultFill
	}
	if c.Background == "" {
		c.Background = def.Background
	}
	if c.Physics.VertexLimit < 3 {
		c.Physics.VertexLimit = def.Physics.VertexLimit
	}
	if c.Physics.SimplifyTolerance < 0 {
		c.Physics.SimplifyTolerance = 0
	}
	if c.Physics.MinimumArea < 0 {
		c.Physics.MinimumArea = 0
	}
	if c.Physics.PositionIterations < 1 {
		c.Physics.PositionIterations = def.Physics.PositionIterations
	}
	if c.Physics.VelocityIterations < 1 {
		c.Physics.VelocityIterations = def.Physics.VelocityIterations
	}
	if c.Physics.Density <= 0 {
		c.Physics.Density = def.Physics.Density
	}
	c.Physics.Restitution = common.Clamp(c.Physics.Restitution, 0, 1)
	if c.Physics.Friction < 0 {
		c.Physics.Friction = 0
	}
	c.MouseConstraint.Stiffness = common.Clamp(c.MouseConstraint.Stiffness, 0, 1)
	if c.MouseConstraint.MaxForce <= 0 {
		c.MouseConstraint.MaxForce = def.MouseConstraint.MaxForce
	}
	if c.Outline.StrokeWidth < 0 {
		c.Outline.StrokeWidth = 0
	}
	if c.Resize.Debounce <= 0 {
		c.Resize.Debounce = def.Resize.Debounce
	}
	return c
}

// Iterations is the cp solver iteration count for the configured position
// and velocity passes.
func (p Physics) Iterations() uint {
	return uint(p.PositionIterations + p.VelocityIterations)
}
