package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/gust"
	"github.com/san-kum/clothsim/internal/metrics"
)

const (
	canvasWidth     = 60
	canvasHeight    = 24
	historyCapacity = 300
	maxIterations   = 50
)

// FallbackWind is blown when the configuration carries no wind of its own.
var FallbackWind = cloth.Vec2{X: 0.02, Y: 0.005}

var tierCycle = []cloth.Tier{
	cloth.Structural,
	cloth.Structural | cloth.Shear,
	cloth.AllTiers,
}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model owns one sheet and steps it on every tick while enabled.
type Model struct {
	cfg     *config.Config
	grid    *cloth.Grid
	solver  cloth.Solver
	wind    gust.Source
	ramp    *gust.Ramp
	enabled bool
	t, dt   float64
	frame   int
	canvas  *Canvas
	view    Viewport
	strain  []float64
	kinetic []float64
}

// NewModel builds the sheet described by cfg. The simulation starts
// disabled; wind starts ramping in if cfg enables it.
func NewModel(cfg *config.Config) Model {
	grid := cfg.NewGrid()
	m := Model{
		cfg:     cfg,
		grid:    grid,
		solver:  cfg.NewSolver(),
		wind:    cfg.WindSource(),
		ramp:    gust.NewRamp(cfg.Wind.RampSeconds),
		dt:      cfg.Run.Dt,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		view:    SceneViewport(grid),
		strain:  make([]float64, 0, historyCapacity),
		kinetic: make([]float64, 0, historyCapacity),
	}
	if m.wind == nil {
		m.wind = gust.Steady{Wind: FallbackWind}
	} else {
		m.ramp.On()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "d":
			m.enabled = !m.enabled
		case "w":
			m.ramp.Toggle()
		case "t":
			m.cycleTiers()
		case "+", "=":
			m.solver.Iterations = min(m.solver.Iterations+1, maxIterations)
		case "-", "_":
			m.solver.Iterations = max(m.solver.Iterations-1, 0)
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.enabled {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) cycleTiers() {
	current := m.solver.Topology.Tiers
	next := tierCycle[0]
	for i, t := range tierCycle {
		if t == current {
			next = tierCycle[(i+1)%len(tierCycle)]
			break
		}
	}
	m.solver.Topology.Tiers = next
}

func (m *Model) step() {
	s := m.solver
	if factor := m.ramp.Update(m.dt); factor > 0 {
		s.Wind = m.wind.At(m.t).Scale(factor)
	}
	s.Step(m.grid, m.dt)
	m.t += m.dt
	m.frame++

	mean, _ := metrics.Residual(m.grid, s.Topology)
	m.strain = appendCapped(m.strain, mean)
	m.kinetic = appendCapped(m.kinetic, metrics.KineticEnergy(m.grid))
}

func appendCapped(hist []float64, v float64) []float64 {
	hist = append(hist, v)
	if len(hist) > historyCapacity {
		hist = hist[1:]
	}
	return hist
}

// reset rebuilds the sheet at rest. Solver tuning and the enabled flag
// survive.
func (m *Model) reset() {
	m.grid = m.cfg.NewGrid()
	m.t = 0
	m.frame = 0
	m.strain = m.strain[:0]
	m.kinetic = m.kinetic[:0]
}

func (m Model) Enabled() bool            { return m.enabled }
func (m Model) Grid() *cloth.Grid        { return m.grid }
func (m Model) Solver() cloth.Solver     { return m.solver }
func (m Model) WindOn() bool             { return m.ramp.IsOn() }
func (m Model) Time() float64            { return m.t }
func (m Model) StrainHistory() []float64 { return m.strain }

func (m Model) View() string {
	m.canvas.Clear()
	m.canvas.DrawCloth(m.grid, m.view)
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.cfg.Name)) + "\n")
	if m.enabled {
		s.WriteString(StatusRunning.Render("SIMULATING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED (d to start)") + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d", m.frame)) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%dx%d", m.grid.Width(), m.grid.Height())) + "\n")
	s.WriteString(labelStyle.Render("Tiers") + valueStyle.Render(m.solver.Topology.Tiers.String()) + "\n")
	s.WriteString(labelStyle.Render("Passes") + valueStyle.Render(fmt.Sprintf("%d", m.solver.Iterations)) + "\n")
	s.WriteString(labelStyle.Render("Wind") + RampBar(m.ramp.Value(), 20) + "\n")

	strain := 0.0
	if len(m.strain) > 0 {
		strain = m.strain[len(m.strain)-1]
	}
	s.WriteString(labelStyle.Render("Strain") + valueStyle.Render(fmt.Sprintf("%.4f", strain)) + "\n")

	if len(m.strain) > 1 {
		chart := asciigraph.Plot(m.strain, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Strain"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString(labelStyle.Render("Kinetic") + Sparkline(m.kinetic, 28) + "\n")

	s.WriteString(helpStyle.Render("d sim • w wind • t tiers • +/- passes • r reset • q quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}
