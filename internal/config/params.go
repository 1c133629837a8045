package config

import (
	"fmt"
	"math"
	"sort"
)

var params = map[string]func(c *Config, v float64){
	"width":          func(c *Config, v float64) { c.Grid.Width = int(math.Round(v)) },
	"height":         func(c *Config, v float64) { c.Grid.Height = int(math.Round(v)) },
	"rest_length":    func(c *Config, v float64) { c.Grid.RestLength = v },
	"iterations":     func(c *Config, v float64) { c.Solver.Iterations = int(math.Round(v)) },
	"gravity_x":      func(c *Config, v float64) { c.Solver.GravityX = v },
	"gravity_y":      func(c *Config, v float64) { c.Solver.GravityY = v },
	"wind_x":         func(c *Config, v float64) { c.Wind.Enabled, c.Wind.X = true, v },
	"wind_y":         func(c *Config, v float64) { c.Wind.Enabled, c.Wind.Y = true, v },
	"gust_amplitude": func(c *Config, v float64) { c.Wind.Gust.Amplitude = v },
	"gust_frequency": func(c *Config, v float64) { c.Wind.Gust.Frequency = v },
	"dt":             func(c *Config, v float64) { c.Run.Dt = v },
	"frames":         func(c *Config, v float64) { c.Run.Frames = int(math.Round(v)) },
}

// ParamNames lists the numeric knobs SetParam accepts.
func ParamNames() []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetParam sets one numeric knob by name. Setting a wind component enables
// wind. The result is not validated.
func (c *Config) SetParam(name string, v float64) error {
	set, ok := params[name]
	if !ok {
		return fmt.Errorf("%w: unknown parameter %q (available: %v)", ErrInvalid, name, ParamNames())
	}
	set(c, v)
	return nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
