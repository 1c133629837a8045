package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/gust"
)

const (
	DefaultWidth       = 10
	DefaultHeight      = 10
	DefaultOrigin      = 100.0
	DefaultDt          = 1.0 / 60
	DefaultFrames      = 600
	DefaultSampleEvery = 1
	DefaultRampSeconds = 1.5
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

type Config struct {
	Name   string       `yaml:"name"`
	Grid   GridConfig   `yaml:"grid"`
	Solver SolverConfig `yaml:"solver"`
	Wind   WindConfig   `yaml:"wind"`
	Run    RunConfig    `yaml:"run"`
}

type GridConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	OriginX    float64 `yaml:"origin_x"`
	OriginY    float64 `yaml:"origin_y"`
	RestLength float64 `yaml:"rest_length"`
	Pin        string  `yaml:"pin"`
}

type SolverConfig struct {
	GravityX   float64 `yaml:"gravity_x"`
	GravityY   float64 `yaml:"gravity_y"`
	Iterations int     `yaml:"iterations"`
	Tiers      string  `yaml:"tiers"`
}

type WindConfig struct {
	Enabled     bool       `yaml:"enabled"`
	X           float64    `yaml:"x"`
	Y           float64    `yaml:"y"`
	Gust        GustConfig `yaml:"gust"`
	RampSeconds float64    `yaml:"ramp_seconds"`
}

type GustConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	Seed      int64   `yaml:"seed"`
}

type RunConfig struct {
	Dt          float64 `yaml:"dt"`
	Frames      int     `yaml:"frames"`
	SampleEvery int     `yaml:"sample_every"`
}

// DefaultConfig reproduces the reference sheet: 10x10 particles 50 apart at
// (100, 100), top corners pinned, structural links, 10 passes.
func DefaultConfig() *Config {
	return &Config{
		Name: "default",
		Grid: GridConfig{
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			OriginX:    DefaultOrigin,
			OriginY:    DefaultOrigin,
			RestLength: cloth.DefaultRestLength,
			Pin:        "corners",
		},
		Solver: SolverConfig{
			GravityX:   cloth.DefaultGravity.X,
			GravityY:   cloth.DefaultGravity.Y,
			Iterations: cloth.DefaultIterations,
			Tiers:      cloth.Structural.String(),
		},
		Wind: WindConfig{
			RampSeconds: DefaultRampSeconds,
		},
		Run: RunConfig{
			Dt:          DefaultDt,
			Frames:      DefaultFrames,
			SampleEvery: DefaultSampleEvery,
		},
	}
}

// Load reads a YAML file on top of DefaultConfig and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
	}

	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return invalid("grid must be at least 1x1, got %dx%d", c.Grid.Width, c.Grid.Height)
	}
	if c.Grid.RestLength <= 0 {
		return invalid("rest_length must be positive, got %g", c.Grid.RestLength)
	}
	if _, ok := cloth.PinPolicy(c.Grid.Pin, c.Grid.Width); !ok {
		return invalid("unknown pin policy %q (available: %v)", c.Grid.Pin, cloth.PinPolicies())
	}
	if c.Solver.Iterations < 0 {
		return invalid("iterations must not be negative, got %d", c.Solver.Iterations)
	}
	if _, err := cloth.ParseTiers(c.Solver.Tiers); err != nil {
		return invalid("%v", err)
	}
	if c.Run.Dt <= 0 {
		return invalid("dt must be positive, got %g", c.Run.Dt)
	}
	if c.Run.Frames <= 0 {
		return invalid("frames must be positive, got %d", c.Run.Frames)
	}
	if c.Run.SampleEvery < 0 {
		return invalid("sample_every must not be negative, got %d", c.Run.SampleEvery)
	}
	if c.Wind.Gust.Amplitude < 0 || c.Wind.Gust.Frequency < 0 {
		return invalid("gust amplitude and frequency must not be negative")
	}
	return nil
}

// Tiers returns the parsed constraint tiers; call Validate first.
func (c *Config) Tiers() cloth.Tier {
	t, _ := cloth.ParseTiers(c.Solver.Tiers)
	return t
}

// NewGrid builds the initial sheet described by c.
func (c *Config) NewGrid() *cloth.Grid {
	pin, ok := cloth.PinPolicy(c.Grid.Pin, c.Grid.Width)
	if !ok {
		pin = cloth.PinTopCorners(c.Grid.Width)
	}
	return cloth.NewGrid(
		c.Grid.Width, c.Grid.Height,
		cloth.Vec2{X: c.Grid.OriginX, Y: c.Grid.OriginY},
		c.Grid.RestLength,
		pin,
	)
}

// NewSolver builds the frame parameters described by c. Wind is left at zero;
// it comes from WindSource so gusts can vary per frame.
func (c *Config) NewSolver() cloth.Solver {
	return cloth.Solver{
		Gravity:    cloth.Vec2{X: c.Solver.GravityX, Y: c.Solver.GravityY},
		Topology:   cloth.Topology{Tiers: c.Tiers(), RestLength: c.Grid.RestLength},
		Iterations: c.Solver.Iterations,
	}
}

// WindSource returns nil when wind is disabled, a steady source without
// gusts, and a perlin gust field otherwise.
func (c *Config) WindSource() gust.Source {
	if !c.Wind.Enabled {
		return nil
	}
	base := cloth.Vec2{X: c.Wind.X, Y: c.Wind.Y}
	if c.Wind.Gust.Amplitude == 0 || c.Wind.Gust.Frequency == 0 {
		return gust.Steady{Wind: base}
	}
	return gust.NewField(base, c.Wind.Gust.Amplitude, c.Wind.Gust.Frequency, c.Wind.Gust.Seed)
}
