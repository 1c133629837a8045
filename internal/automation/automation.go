package automation

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/storage"
)

// Scenario is a scripted batch of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset or a config file (or the defaults when
// both are empty) and overrides numeric parameters by name.
type ScenarioStep struct {
	Preset string             `yaml:"preset"`
	Config string             `yaml:"config"`
	Params map[string]float64 `yaml:"params"`
	SaveAs string             `yaml:"save_as"`
}

type StepResult struct {
	Name    string
	RunID   string
	Frames  int
	Metrics map[string]float64
	Errors  []error
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("automation: parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("automation: %s has no steps", path)
	}

	return &scenario, nil
}

// StepConfig resolves the configuration a step runs with.
func StepConfig(step ScenarioStep) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case step.Config != "":
		loaded, err := config.Load(step.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case step.Preset != "":
		cfg = config.GetPreset(step.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", step.Preset, config.ListPresets())
		}
	default:
		cfg = config.DefaultConfig()
	}

	for name, v := range step.Params {
		if err := cfg.SetParam(name, v); err != nil {
			return nil, err
		}
	}
	if step.SaveAs != "" {
		cfg.Name = step.SaveAs
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunConfig runs cfg headless with the default metrics.
func RunConfig(ctx context.Context, cfg *config.Config) (*sim.Result, error) {
	solver := cfg.NewSolver()
	s := sim.New(solver)
	for _, m := range metrics.Defaults(solver.Topology) {
		s.AddMetric(m)
	}
	s.SetWind(cfg.WindSource())

	return s.Run(ctx, cfg.NewGrid(), SimConfig(cfg))
}

func SimConfig(cfg *config.Config) sim.Config {
	return sim.Config{
		Dt:            cfg.Run.Dt,
		Frames:        cfg.Run.Frames,
		SampleEvery:   cfg.Run.SampleEvery,
		ValidateState: true,
	}
}

// Metadata describes a run of cfg for storage. Wind records the configured
// base wind.
func Metadata(cfg *config.Config) storage.RunMetadata {
	meta := storage.NewMetadata(cfg.Name, cfg.NewGrid(), cfg.NewSolver(), cfg.Run.Dt)
	if cfg.Wind.Enabled {
		meta.Wind.X, meta.Wind.Y = cfg.Wind.X, cfg.Wind.Y
	}
	return meta
}

// RunScenario executes all steps in order. Steps with save_as are stored
// when st is non-nil. Progress goes to out.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, out io.Writer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := StepConfig(step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		fmt.Fprintf(out, "running step %d/%d: %s\n", i+1, len(scenario.Steps), cfg.Name)

		result, err := RunConfig(ctx, cfg)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: cfg.Name, Frames: result.FramesRun, Metrics: result.Metrics, Errors: result.Errors}
		for _, e := range result.Errors {
			fmt.Fprintf(out, "  warning: %v\n", e)
		}
		if st != nil && step.SaveAs != "" {
			if sr.RunID, err = st.Save(Metadata(cfg), result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}

		results = append(results, sr)
	}

	return results, nil
}
