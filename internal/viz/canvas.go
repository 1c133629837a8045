package viz

import (
	"math"
	"strings"

	"github.com/san-kum/clothsim/internal/cloth"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// PixelMask returns the braille bit for sub-pixel (dx, dy) inside a cell.
func PixelMask(dx, dy int) int { return pixelMap[dy][dx] }

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// SubWidth and SubHeight give the raster size in sub-pixels.
func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

// Set lights the sub-pixel at (x, y). Points off the canvas are dropped.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Viewport is the world rectangle mapped onto the canvas.
type Viewport struct {
	MinX, MinY, MaxX, MaxY float64
}

// SceneViewport frames a sheet the way the desktop window does: the origin
// margin on every side, with room below for the sheet to sag.
func SceneViewport(g *cloth.Grid) Viewport {
	o := g.Origin()
	spanX := float64(g.Width()-1) * g.RestLength()
	spanY := float64(g.Height()-1) * g.RestLength()
	return Viewport{
		MinX: 0,
		MinY: 0,
		MaxX: 2*o.X + spanX,
		MaxY: 2*o.Y + spanY*1.5,
	}
}

// Project maps a world point to canvas sub-pixels with a uniform scale.
func (c *Canvas) Project(v Viewport, p cloth.Vec2) (int, int) {
	x, y := c.project(v, p)
	return int(math.Round(x)), int(math.Round(y))
}

func (c *Canvas) project(v Viewport, p cloth.Vec2) (float64, float64) {
	w, h := v.MaxX-v.MinX, v.MaxY-v.MinY
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	scale := math.Min(float64(c.SubWidth()-1)/w, float64(c.SubHeight()-1)/h)
	return (p.X - v.MinX) * scale, (p.Y - v.MinY) * scale
}

// DrawCloth draws the structural links of g and a 2x2 block for each pin.
// Links are clipped to the canvas; particles with non-finite positions are
// skipped along with their links.
func (c *Canvas) DrawCloth(g *cloth.Grid, v Viewport) {
	particles := g.Particles()
	w, h := g.Width(), g.Height()

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			i := row*w + col
			if !particles[i].Position.IsValid() {
				continue
			}
			if col+1 < w {
				c.drawLink(v, particles[i].Position, particles[i+1].Position)
			}
			if row+1 < h {
				c.drawLink(v, particles[i].Position, particles[i+w].Position)
			}
			x0, y0 := c.project(v, particles[i].Position)
			if !finite(x0, y0) || !c.inside(x0, y0) {
				continue
			}
			px, py := int(math.Round(x0)), int(math.Round(y0))
			c.Set(px, py)
			if particles[i].Pinned {
				c.Set(px+1, py)
				c.Set(px, py+1)
				c.Set(px+1, py+1)
			}
		}
	}
}

func (c *Canvas) drawLink(v Viewport, a, b cloth.Vec2) {
	if !b.IsValid() {
		return
	}
	x0, y0 := c.project(v, a)
	x1, y1 := c.project(v, b)
	if !finite(x0, y0, x1, y1) {
		return
	}
	x0, y0, x1, y1, ok := c.clip(x0, y0, x1, y1)
	if !ok {
		return
	}
	c.DrawLine(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)))
}

func (c *Canvas) inside(x, y float64) bool {
	return x >= 0 && y >= 0 && x <= float64(c.SubWidth()-1) && y <= float64(c.SubHeight()-1)
}

// clip trims a segment to the raster rectangle (Liang-Barsky). ok is false
// when nothing of the segment is visible.
func (c *Canvas) clip(x0, y0, x1, y1 float64) (float64, float64, float64, float64, bool) {
	maxX, maxY := float64(c.SubWidth()-1), float64(c.SubHeight()-1)
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, x0},
		{dx, maxX - x0},
		{-dy, y0},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
