package cloth

import (
	"fmt"
	"iter"
	"math"
	"strings"
)

// Tier selects a family of distance constraints.
type Tier uint8

const (
	// Structural links horizontal and vertical neighbours.
	Structural Tier = 1 << iota
	// Shear links both diagonals of every grid cell.
	Shear
	// Bend links particles two cells apart horizontally and vertically.
	Bend

	AllTiers = Structural | Shear | Bend
)

var tierNames = []struct {
	tier Tier
	name string
}{
	{Structural, "structural"},
	{Shear, "shear"},
	{Bend, "bend"},
}

func (t Tier) Has(o Tier) bool { return t&o == o }

func (t Tier) String() string {
	if t == 0 {
		return "none"
	}
	parts := make([]string, 0, len(tierNames))
	for _, tn := range tierNames {
		if t.Has(tn.tier) {
			parts = append(parts, tn.name)
		}
	}
	return strings.Join(parts, ",")
}

// ParseTiers parses a comma separated list such as "structural,shear".
// "all" selects every tier.
func ParseTiers(s string) (Tier, error) {
	var t Tier
	for _, field := range strings.Split(s, ",") {
		field = strings.ToLower(strings.TrimSpace(field))
		if field == "" {
			continue
		}
		if field == "all" {
			t |= AllTiers
			continue
		}
		found := false
		for _, tn := range tierNames {
			if tn.name == field {
				t |= tn.tier
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("cloth: unknown constraint tier %q", field)
		}
	}
	return t, nil
}

// Constraint is a distance constraint between two linear particle indices.
type Constraint struct {
	A, B       int
	RestLength float64
}

// Topology is the generative rule for the constraint set of a grid. Its
// output depends only on grid dimensions, active tiers and the base rest length.
type Topology struct {
	Tiers      Tier
	RestLength float64
}

// Constraints yields every constraint of a width × height grid in solve
// order: cells in row-major order, and within a cell structural (right,
// down), shear (diagonal, anti-diagonal), then bend (right+2, down+2).
func (t Topology) Constraints(width, height int) iter.Seq[Constraint] {
	diag := t.RestLength * math.Sqrt2
	bend := t.RestLength * 2

	return func(yield func(Constraint) bool) {
		for row := 0; row < height; row++ {
			for col := 0; col < width; col++ {
				i := row*width + col
				right := col+1 < width
				down := row+1 < height

				if t.Tiers.Has(Structural) {
					if right && !yield(Constraint{i, i + 1, t.RestLength}) {
						return
					}
					if down && !yield(Constraint{i, i + width, t.RestLength}) {
						return
					}
				}

				if t.Tiers.Has(Shear) && right && down {
					if !yield(Constraint{i, i + width + 1, diag}) {
						return
					}
					if !yield(Constraint{i + 1, i + width, diag}) {
						return
					}
				}

				if t.Tiers.Has(Bend) {
					if col+2 < width && !yield(Constraint{i, i + 2, bend}) {
						return
					}
					if row+2 < height && !yield(Constraint{i, i + 2*width, bend}) {
						return
					}
				}
			}
		}
	}
}

// Count returns the number of constraints Constraints would yield.
func (t Topology) Count(width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	n := 0
	if t.Tiers.Has(Structural) {
		n += height*(width-1) + (height-1)*width
	}
	if t.Tiers.Has(Shear) {
		n += 2 * (width - 1) * (height - 1)
	}
	if t.Tiers.Has(Bend) {
		n += height*max(width-2, 0) + max(height-2, 0)*width
	}
	return n
}
