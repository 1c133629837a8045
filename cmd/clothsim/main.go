package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/clothsim/internal/analysis"
	"github.com/san-kum/clothsim/internal/automation"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/export"
	"github.com/san-kum/clothsim/internal/gui"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/optim"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/storage"
	"github.com/san-kum/clothsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	// Scene overrides
	width       int
	height      int
	restLength  float64
	pin         string
	iterations  int
	tiers       string
	dt          float64
	frameCount  int
	sampleEvery int
	windX       float64
	windY       float64
	// export-svg
	frameIndex int
	svgSize    int
	particle   int
	braille    bool
	outFile    string
	// tune, search, analyze
	metricName  string
	target      float64
	passLimit   int
	searchSpecs []string
	settleTol   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clothsim",
		Short: "2D Verlet cloth simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			gui.Run(config.DefaultConfig())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".clothsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSceneFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot sag and strain of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw a recorded frame or a particle path as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&frameIndex, "frame", -1, "recorded frame to draw (negative counts from the end)")
	exportSVGCmd.Flags().IntVar(&svgSize, "size", 640, "image size in pixels")
	exportSVGCmd.Flags().IntVar(&particle, "particle", -1, "trace this particle across frames instead")
	exportSVGCmd.Flags().BoolVar(&braille, "braille", false, "render through the terminal canvas")
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	convergeCmd := &cobra.Command{
		Use:   "converge [passes...]",
		Short: "residual after one frame for each relaxation pass count",
		RunE:  convergeRun,
	}
	addSceneFlags(convergeCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [passes] [passes] ...",
		Short: "compare relaxation pass counts on the same scene",
		Args:  cobra.MinimumNArgs(2),
		RunE:  comparePasses,
	}
	addSceneFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tGRID\tPIN\tTIERS\tPASSES\tWIND")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				wind := "off"
				if p.Wind.Enabled {
					wind = fmt.Sprintf("(%.3f, %.3f)", p.Wind.X, p.Wind.Y)
					if p.Wind.Gust.Amplitude > 0 {
						wind += " gusty"
					}
				}
				fmt.Fprintf(w, "%s\t%dx%d\t%s\t%s\t%d\t%s\n",
					name, p.Grid.Width, p.Grid.Height, p.Grid.Pin, p.Solver.Tiers, p.Solver.Iterations, wind)
			}
			return w.Flush()
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "simulate in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "simulate in a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			gui.Run(cfg)
			return nil
		},
	}
	addSceneFlags(guiCmd)

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "find the fewest relaxation passes that meet a metric target",
		Args:  cobra.NoArgs,
		RunE:  tunePasses,
	}
	addSceneFlags(tuneCmd)
	tuneCmd.Flags().StringVar(&metricName, "metric", "strain", "metric to bound")
	tuneCmd.Flags().Float64Var(&target, "target", 0.01, "largest acceptable metric value")
	tuneCmd.Flags().IntVar(&passLimit, "max", 50, "largest pass count to try")

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "grid search scene parameters for the lowest metric",
		Args:  cobra.NoArgs,
		RunE:  searchParams,
	}
	addSceneFlags(searchCmd)
	searchCmd.Flags().StringVar(&metricName, "metric", "strain", "metric to minimise")
	searchCmd.Flags().StringArrayVar(&searchSpecs, "param", nil, fmt.Sprintf("name=v1,v2,... (names: %v)", config.ParamNames()))

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "sway frequency and settling time of a particle",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&particle, "particle", -1, "particle index (default bottom centre)")
	analyzeCmd.Flags().Float64Var(&settleTol, "tol", 1.0, "settling band in world units")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, convergeCmd, compareCmd, presetsCmd, liveCmd, guiCmd, tuneCmd, searchCmd, batchCmd, analyzeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "particles per row")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "particles per column")
	cmd.Flags().Float64Var(&restLength, "rest", cloth.DefaultRestLength, "rest length between neighbours")
	cmd.Flags().StringVar(&pin, "pin", "corners", fmt.Sprintf("pin policy %v", cloth.PinPolicies()))
	cmd.Flags().IntVar(&iterations, "iterations", cloth.DefaultIterations, "relaxation passes per frame")
	cmd.Flags().StringVar(&tiers, "tiers", "structural", "constraint tiers (structural,shear,bend or all)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&frameCount, "frames", config.DefaultFrames, "frames to simulate")
	cmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "record every n-th frame")
	cmd.Flags().Float64Var(&windX, "wind-x", 0, "steady wind x (enables wind)")
	cmd.Flags().Float64Var(&windY, "wind-y", 0, "steady wind y (enables wind)")
}

// resolveConfig layers defaults, preset, config file and explicit flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Grid.Width = width
	}
	if flags.Changed("height") {
		cfg.Grid.Height = height
	}
	if flags.Changed("rest") {
		cfg.Grid.RestLength = restLength
	}
	if flags.Changed("pin") {
		cfg.Grid.Pin = pin
	}
	if flags.Changed("iterations") {
		cfg.Solver.Iterations = iterations
	}
	if flags.Changed("tiers") {
		cfg.Solver.Tiers = tiers
	}
	if flags.Changed("dt") {
		cfg.Run.Dt = dt
	}
	if flags.Changed("frames") {
		cfg.Run.Frames = frameCount
	}
	if flags.Changed("sample-every") {
		cfg.Run.SampleEvery = sampleEvery
	}
	if flags.Changed("wind-x") || flags.Changed("wind-y") {
		cfg.Wind.Enabled = true
		if flags.Changed("wind-x") {
			cfg.Wind.X = windX
		}
		if flags.Changed("wind-y") {
			cfg.Wind.Y = windY
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	solver := cfg.NewSolver()
	fmt.Printf("running %s (%dx%d, %s, %d passes)...\n",
		cfg.Name, cfg.Grid.Width, cfg.Grid.Height, solver.Topology.Tiers, solver.Iterations)
	start := time.Now()

	result, err := automation.RunConfig(context.Background(), cfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(automation.Metadata(cfg), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d (%d recorded)\n", result.FramesRun, len(result.Frames))
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tGRID\tTIERS\tPASSES\tFRAMES\tSTRAIN")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%s\t%d\t%d\t%.4f\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Tiers,
			run.Iterations,
			run.Frames,
			run.Metrics["strain"],
		)
	}

	return w.Flush()
}

// frameGrid rebuilds a grid for a stored frame so grid metrics apply to it.
func frameGrid(meta *storage.RunMetadata, positions []cloth.Vec2) (*cloth.Grid, error) {
	if len(positions) != meta.Width*meta.Height {
		return nil, fmt.Errorf("frame has %d positions, run is %dx%d", len(positions), meta.Width, meta.Height)
	}
	pinned := make(map[int]bool, len(meta.Pinned))
	for _, i := range meta.Pinned {
		pinned[i] = true
	}
	g := cloth.NewGrid(meta.Width, meta.Height, cloth.Vec2{}, meta.RestLength, func(row, col int) bool {
		return pinned[row*meta.Width+col]
	})
	particles := g.Particles()
	for i, p := range positions {
		particles[i].Position = p
		particles[i].PreviousPosition = p
	}
	return g, nil
}

func loadRun(runID string) (*storage.RunMetadata, []sim.Frame, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("no frames recorded for %s", runID)
	}
	return meta, frames, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	tierSet, err := cloth.ParseTiers(meta.Tiers)
	if err != nil {
		return err
	}
	topo := cloth.Topology{Tiers: tierSet, RestLength: meta.RestLength}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s (%dx%d, %s)\n", meta.Name, meta.Width, meta.Height, meta.Tiers)
	fmt.Printf("samples: %d\n\n", len(frames))

	bottom := (meta.Height-1)*meta.Width + meta.Width/2
	sag := make([]float64, len(frames))
	strain := make([]float64, len(frames))
	for i, f := range frames {
		g, err := frameGrid(meta, f.Positions)
		if err != nil {
			return err
		}
		sag[i] = f.Positions[bottom].Y
		strain[i], _ = metrics.Residual(g, topo)
	}

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{sag, "bottom-centre y"},
		{strain, "mean strain"},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, nil)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteFramesCSV(os.Stdout, frames)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, frames)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	var svg string
	switch {
	case particle >= 0:
		if particle >= meta.Width*meta.Height {
			return fmt.Errorf("particle %d out of range for a %dx%d run", particle, meta.Width, meta.Height)
		}
		path := make([]cloth.Vec2, len(frames))
		for i, f := range frames {
			path[i] = f.Positions[particle]
		}
		svg = export.PathToSVG(path, svgSize, svgSize, "#00ff88")
	default:
		idx := frameIndex
		if idx < 0 {
			idx += len(frames)
		}
		if idx < 0 || idx >= len(frames) {
			return fmt.Errorf("frame %d out of range (%d recorded)", frameIndex, len(frames))
		}
		g, err := frameGrid(meta, frames[idx].Positions)
		if err != nil {
			return err
		}
		if braille {
			canvas := viz.NewCanvas(80, 40)
			canvas.DrawCloth(g, viz.SceneViewport(g))
			svg = export.CanvasToSVG(canvas, 4)
		} else {
			svg, err = export.GridToSVG(g.Positions(), g.Pinned(), meta.Width, meta.Height, svgSize)
			if err != nil {
				return err
			}
		}
	}

	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func parsePasses(args []string) ([]int, error) {
	counts := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid pass count %q", a)
		}
		counts = append(counts, n)
	}
	return counts, nil
}

func convergeRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	counts := []int{0, 1, 2, 5, 10, 20, 50}
	if len(args) > 0 {
		if counts, err = parsePasses(args); err != nil {
			return err
		}
	}

	solver := cfg.NewSolver()
	residuals := sim.ResidualSweep(cfg.NewGrid, solver, cfg.Run.Dt, counts)

	fmt.Printf("one-frame residual for %s (%s, dt=%.4f)\n\n", cfg.Name, solver.Topology.Tiers, cfg.Run.Dt)
	fmt.Printf("%-8s  %-14s\n", "passes", "mean_residual")
	fmt.Println(strings.Repeat("-", 24))
	for i, k := range counts {
		fmt.Printf("%-8d  %14.6e\n", k, residuals[i])
	}

	if len(residuals) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(residuals, asciigraph.Height(8), asciigraph.Caption("residual by pass count")))
	}
	return nil
}

func comparePasses(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	counts, err := parsePasses(args)
	if err != nil {
		return err
	}

	base := cfg.NewSolver()
	solvers := make([]cloth.Solver, len(counts))
	for i, k := range counts {
		solvers[i] = base
		solvers[i].Iterations = k
	}

	sweep := sim.Sweep{
		NewGrid:    cfg.NewGrid,
		NewMetrics: func(s cloth.Solver) []metrics.Metric { return metrics.Defaults(s.Topology) },
		Wind:       cfg.WindSource(),
	}

	fmt.Printf("comparing pass counts for %s (%d frames, dt=%.4f)\n\n", cfg.Name, cfg.Run.Frames, cfg.Run.Dt)

	start := time.Now()
	results, err := sweep.Run(context.Background(), solvers, automation.SimConfig(cfg))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("%-8s  %-12s  %-12s  %-12s\n", "passes", "strain", "peak_strain", "kinetic")
	fmt.Println(strings.Repeat("-", 50))
	for i, r := range results {
		fmt.Printf("%-8d  %12.6f  %12.6f  %12.2f\n", counts[i], r.Metrics["strain"], r.Metrics["peak_strain"], r.Metrics["kinetic"])
	}
	fmt.Printf("\ncompleted in %v\n", elapsed)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(cfg))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func tunePasses(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	run := func(ctx context.Context, passes int) (*sim.Result, error) {
		c := cfg.Clone()
		c.Solver.Iterations = passes
		return automation.RunConfig(ctx, c)
	}

	fmt.Printf("searching 1..%d passes for %s <= %g on %s\n", passLimit, metricName, target, cfg.Name)
	passes, v, err := optim.MinPasses(context.Background(), run, metricName, target, passLimit)
	if err != nil {
		return err
	}
	fmt.Printf("passes: %d (%s %.6f)\n", passes, metricName, v)
	return nil
}

func parseSearchSpec(spec string) (string, []float64, error) {
	name, list, ok := strings.Cut(spec, "=")
	if !ok || name == "" {
		return "", nil, fmt.Errorf("invalid --param %q, want name=v1,v2", spec)
	}
	var values []float64
	for _, field := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return "", nil, fmt.Errorf("invalid value in --param %q: %w", spec, err)
		}
		values = append(values, v)
	}
	return name, values, nil
}

func searchParams(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(searchSpecs) == 0 {
		return fmt.Errorf("at least one --param is required")
	}

	names := make([]string, 0, len(searchSpecs))
	ranges := make([][]float64, 0, len(searchSpecs))
	for _, spec := range searchSpecs {
		name, values, err := parseSearchSpec(spec)
		if err != nil {
			return err
		}
		if err := cfg.Clone().SetParam(name, 0); err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	gs, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}

	run := func(ctx context.Context, params map[string]float64) (*sim.Result, error) {
		c := cfg.Clone()
		for k, v := range params {
			if err := c.SetParam(k, v); err != nil {
				return nil, err
			}
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return automation.RunConfig(ctx, c)
	}

	best, v, err := gs.Search(context.Background(), run, metricName)
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.6f\n", metricName, v)
	for _, name := range names {
		fmt.Printf("  %s = %g\n", name, best[name])
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	if scenario.Description != "" {
		fmt.Printf("%s: %s\n", scenario.Name, scenario.Description)
	}
	results, err := automation.RunScenario(context.Background(), scenario, st, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tNAME\tFRAMES\tSTRAIN\tPEAK\tRUN")
	for i, r := range results {
		runID := r.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%.6f\t%.6f\t%s\n",
			i+1, r.Name, r.Frames, r.Metrics["strain"], r.Metrics["peak_strain"], runID)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	for i, r := range results {
		for _, e := range r.Errors {
			fmt.Printf("warning: step %d: %v\n", i+1, e)
		}
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	idx := particle
	if idx < 0 {
		idx = (meta.Height-1)*meta.Width + meta.Width/2
	}
	if idx >= meta.Width*meta.Height {
		return fmt.Errorf("particle %d out of range for a %dx%d run", idx, meta.Width, meta.Height)
	}

	dt := analysis.SampleInterval(frames)
	if dt <= 0 {
		return fmt.Errorf("need at least two recorded frames")
	}
	sway := analysis.ParticleSway(frames, idx, dt, settleTol)

	first := analysis.Centroid(frames[0].Positions)
	last := analysis.Centroid(frames[len(frames)-1].Positions)

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("particle: %d (row %d, col %d)\n\n", idx, idx/meta.Width, idx%meta.Width)
	fmt.Printf("%-10s  %-12s  %-12s  %-12s\n", "axis", "freq_hz", "settle_s", "range")
	fmt.Println(strings.Repeat("-", 52))
	fmt.Printf("%-10s  %12.4f  %12.3f  %12.3f\n", "x", sway.FrequencyX, sway.SettleX, sway.RangeX)
	fmt.Printf("%-10s  %12.4f  %12.3f  %12.3f\n", "y", sway.FrequencyY, sway.SettleY, sway.RangeY)
	fmt.Printf("\ncentroid drift: (%.2f, %.2f)\n", last.X-first.X, last.Y-first.Y)
	return nil
}
