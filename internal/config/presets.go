package config

import "sort"

// Presets holds named starting points. "minimal" and "rich" are the two
// reference variants; their iteration counts differ on purpose.
var Presets = map[string]*Config{
	"minimal": {
		Name: "minimal",
		Grid: GridConfig{Width: 10, Height: 10, OriginX: 100, OriginY: 100, RestLength: 50, Pin: "corners"},
		Solver: SolverConfig{
			GravityY: 980, Iterations: 10, Tiers: "structural",
		},
		Wind: WindConfig{RampSeconds: DefaultRampSeconds},
		Run:  RunConfig{Dt: DefaultDt, Frames: 600, SampleEvery: 1},
	},
	"rich": {
		Name: "rich",
		Grid: GridConfig{Width: 10, Height: 10, OriginX: 100, OriginY: 100, RestLength: 50, Pin: "corners"},
		Solver: SolverConfig{
			GravityY: 980, Iterations: 5, Tiers: "structural,shear,bend",
		},
		Wind: WindConfig{Enabled: true, X: 0.02, Y: 0.005, RampSeconds: DefaultRampSeconds},
		Run:  RunConfig{Dt: DefaultDt, Frames: 600, SampleEvery: 1},
	},
	"curtain": {
		Name: "curtain",
		Grid: GridConfig{Width: 16, Height: 12, OriginX: 40, OriginY: 60, RestLength: 35, Pin: "top_row"},
		Solver: SolverConfig{
			GravityY: 980, Iterations: 8, Tiers: "structural,shear",
		},
		Wind: WindConfig{Enabled: true, X: 0.015, RampSeconds: DefaultRampSeconds},
		Run:  RunConfig{Dt: DefaultDt, Frames: 900, SampleEvery: 2},
	},
	"gusty": {
		Name: "gusty",
		Grid: GridConfig{Width: 12, Height: 10, OriginX: 80, OriginY: 80, RestLength: 40, Pin: "corners"},
		Solver: SolverConfig{
			GravityY: 980, Iterations: 6, Tiers: "all",
		},
		Wind: WindConfig{
			Enabled: true, X: 0.03, Y: 0.01, RampSeconds: DefaultRampSeconds,
			Gust: GustConfig{Amplitude: 0.6, Frequency: 0.8, Seed: 7},
		},
		Run: RunConfig{Dt: DefaultDt, Frames: 900, SampleEvery: 2},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
