package cloth

// Grid is a fixed-size, row-major sheet of particles. It is created once and
// never resized; the caller that constructs it owns it.
type Grid struct {
	width, height int
	origin        Vec2
	restLength    float64
	particles     []Particle
}

// NewGrid lays out width × height particles restLength apart starting at
// origin, at rest. pin is evaluated once per particle; nil pins nothing.
func NewGrid(width, height int, origin Vec2, restLength float64, pin PinFunc) *Grid {
	g := &Grid{
		width:      width,
		height:     height,
		origin:     origin,
		restLength: restLength,
		particles:  make([]Particle, width*height),
	}

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			pos := origin.Add(Vec2{float64(col) * restLength, float64(row) * restLength})
			g.particles[row*width+col] = Particle{
				Pinned:           pin != nil && pin(row, col),
				Position:         pos,
				PreviousPosition: pos,
			}
		}
	}

	return g
}

func (g *Grid) Width() int          { return g.width }
func (g *Grid) Height() int         { return g.height }
func (g *Grid) Len() int            { return len(g.particles) }
func (g *Grid) Origin() Vec2        { return g.origin }
func (g *Grid) RestLength() float64 { return g.restLength }

// InBounds reports whether (row, col) addresses a particle.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// Index maps (row, col) to the linear index. It panics with *IndexError
// outside the grid.
func (g *Grid) Index(row, col int) int {
	if !g.InBounds(row, col) {
		panic(g.indexError(row, col))
	}
	return row*g.width + col
}

// At returns the live particle at (row, col). Out-of-range coordinates are a
// programming error and panic with *IndexError.
func (g *Grid) At(row, col int) *Particle {
	return &g.particles[g.Index(row, col)]
}

// Lookup is the checked form of At.
func (g *Grid) Lookup(row, col int) (*Particle, error) {
	if !g.InBounds(row, col) {
		return nil, g.indexError(row, col)
	}
	return &g.particles[row*g.width+col], nil
}

// Particles exposes the backing storage. Renderers read it between frames.
func (g *Grid) Particles() []Particle {
	return g.particles
}

// Positions copies the current positions in row-major order.
func (g *Grid) Positions() []Vec2 {
	out := make([]Vec2, len(g.particles))
	for i := range g.particles {
		out[i] = g.particles[i].Position
	}
	return out
}

// Pinned copies the pin flags in row-major order.
func (g *Grid) Pinned() []bool {
	out := make([]bool, len(g.particles))
	for i := range g.particles {
		out[i] = g.particles[i].Pinned
	}
	return out
}

func (g *Grid) indexError(row, col int) *IndexError {
	return &IndexError{Row: row, Col: col, Width: g.width, Height: g.height}
}
