package gui

import (
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/gust"
	"github.com/san-kum/clothsim/internal/metrics"
)

const (
	windowWidth  = 640
	windowHeight = 640
	targetFPS    = 60
	particleSize = 5

	// Frame times above this are clamped so a stalled window does not
	// launch the sheet.
	maxFrameTime   = 1.0 / 20
	telemetryLimit = 200
)

var (
	ColBg      = rl.Black
	ColLink    = rl.White
	ColFree    = rl.White
	ColPinned  = rl.Red
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

// FallbackWind is blown by W when the configuration has no wind.
var FallbackWind = cloth.Vec2{X: 0.02, Y: 0.005}

type App struct {
	Config    *config.Config
	Grid      *cloth.Grid
	Solver    cloth.Solver
	Wind      gust.Source
	Ramp      *gust.Ramp
	Enabled   bool
	Time      float64
	Telemetry []float64
}

func NewApp(cfg *config.Config) *App {
	a := &App{
		Config:    cfg,
		Grid:      cfg.NewGrid(),
		Solver:    cfg.NewSolver(),
		Wind:      cfg.WindSource(),
		Ramp:      gust.NewRamp(cfg.Wind.RampSeconds),
		Telemetry: make([]float64, 0, telemetryLimit),
	}
	if a.Wind == nil {
		a.Wind = gust.Steady{Wind: FallbackWind}
	} else {
		a.Ramp.On()
	}
	return a
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config) {
	rl.InitWindow(windowWidth, windowHeight, "clothsim")
	defer rl.CloseWindow()
	rl.SetTargetFPS(targetFPS)

	log.Printf("gui: %s, %dx%d particles, %d passes", cfg.Name, cfg.Grid.Width, cfg.Grid.Height, cfg.Solver.Iterations)
	NewApp(cfg).RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyD) {
		a.Enabled = !a.Enabled
	}
	if rl.IsKeyPressed(rl.KeyW) {
		a.Ramp.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Grid = a.Config.NewGrid()
		a.Time = 0
		a.Telemetry = a.Telemetry[:0]
	}

	if !a.Enabled {
		return
	}
	a.Step(min(float64(rl.GetFrameTime()), maxFrameTime))
}

// Step advances the sheet by dt seconds.
func (a *App) Step(dt float64) {
	if dt <= 0 {
		return
	}
	s := a.Solver
	if factor := a.Ramp.Update(dt); factor > 0 {
		s.Wind = a.Wind.At(a.Time).Scale(factor)
	}
	s.Step(a.Grid, dt)
	a.Time += dt

	mean, _ := metrics.Residual(a.Grid, s.Topology)
	a.Telemetry = append(a.Telemetry, mean)
	if len(a.Telemetry) > telemetryLimit {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.Enabled {
		a.drawCloth()
		a.drawTelemetry()
	}
	a.drawHUD()

	rl.EndDrawing()
}

func (a *App) drawCloth() {
	particles := a.Grid.Particles()
	w, h := a.Grid.Width(), a.Grid.Height()

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			i := row*w + col
			p := toVector(particles[i].Position)
			if col+1 < w {
				rl.DrawLineV(p, toVector(particles[i+1].Position), ColLink)
			}
			if row+1 < h {
				rl.DrawLineV(p, toVector(particles[i+w].Position), ColLink)
			}
		}
	}

	for _, p := range particles {
		col := ColFree
		if p.Pinned {
			col = ColPinned
		}
		rl.DrawCircleV(toVector(p.Position), particleSize, col)
	}
}

func (a *App) drawHUD() {
	if !a.Enabled {
		rl.DrawText("D to simulate", 20, 20, 20, ColTextDim)
		return
	}
	rl.DrawText(fmt.Sprintf("t %.2fs  passes %d  %s", a.Time, a.Solver.Iterations, a.Solver.Topology.Tiers), 20, 20, 16, ColText)
	rl.DrawText(fmt.Sprintf("wind %3.0f%%  [W] wind  [R] reset", a.Ramp.Value()*100), 20, 40, 16, ColTextDim)
}

// drawTelemetry plots recent mean strain along the bottom edge.
func (a *App) drawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}
	peak := 0.0
	for _, v := range a.Telemetry {
		peak = max(peak, v)
	}
	if peak == 0 {
		return
	}

	const graphHeight = 60
	points := make([]rl.Vector2, len(a.Telemetry))
	step := float32(windowWidth-40) / float32(telemetryLimit)
	for i, v := range a.Telemetry {
		x := 20 + float32(i)*step
		y := float32(windowHeight-20) - float32(v/peak)*graphHeight
		points[i] = rl.NewVector2(x, y)
	}
	rl.DrawLineStrip(points, ColTextDim)
}

func toVector(v cloth.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}
