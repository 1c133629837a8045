package cloth

// Particle is one point mass of the sheet. Velocity is never stored; it is
// Position - PreviousPosition.
type Particle struct {
	Pinned           bool
	Position         Vec2
	PreviousPosition Vec2
	// Acceleration accumulates for the current frame only and is cleared by Integrate.
	Acceleration Vec2
}

// Velocity returns the implicit per-step displacement.
func (p *Particle) Velocity() Vec2 {
	return p.Position.Sub(p.PreviousPosition)
}

// PinFunc decides at construction time whether the particle at (row, col) is anchored.
type PinFunc func(row, col int) bool

// PinTopCorners anchors (0, 0) and (0, width-1).
func PinTopCorners(width int) PinFunc {
	return func(row, col int) bool {
		return row == 0 && (col == 0 || col == width-1)
	}
}

// PinTopRow anchors every particle of the first row.
func PinTopRow() PinFunc {
	return func(row, _ int) bool { return row == 0 }
}

// PinNone leaves the sheet free.
func PinNone() PinFunc {
	return func(_, _ int) bool { return false }
}

// PinPolicy resolves a configuration name to a PinFunc. ok is false for
// unknown names.
func PinPolicy(name string, width int) (fn PinFunc, ok bool) {
	switch name {
	case "", "corners":
		return PinTopCorners(width), true
	case "top_row":
		return PinTopRow(), true
	case "none":
		return PinNone(), true
	}
	return nil, false
}

// PinPolicies lists the names accepted by PinPolicy.
func PinPolicies() []string {
	return []string{"corners", "top_row", "none"}
}
