package cloth

// ApplyWind pushes the sheet with a simplified strip drag model. For each
// edge the force is the wind's component along the edge normal, scaled by
// half the edge length, and it is added to the position of both endpoints
// unless pinned.
//
// Only the right and down edges of cells with row < height-1 and
// col < width-1 take part, so the last row's horizontal edges and the last
// column's vertical edges never catch wind.
func ApplyWind(g *Grid, wind Vec2) {
	for row := 0; row < g.height-1; row++ {
		for col := 0; col < g.width-1; col++ {
			i := row*g.width + col
			windEdge(&g.particles[i], &g.particles[i+1], wind)
			windEdge(&g.particles[i], &g.particles[i+g.width], wind)
		}
	}
}

func windEdge(a, b *Particle, wind Vec2) {
	e := b.Position.Sub(a.Position)
	length := e.Len()
	if length < Epsilon {
		return
	}

	normal := e.Perp().Scale(1 / length)
	intensity := wind.Dot(normal)
	force := normal.Scale(intensity * length / 2)

	if !a.Pinned {
		a.Position = a.Position.Add(force)
	}
	if !b.Pinned {
		b.Position = b.Position.Add(force)
	}
}
