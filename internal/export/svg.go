package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/viz"
)

const (
	background  = "#0a0a0a"
	pinColor    = "#ff0000"
	freeColor   = "#ffffff"
	linkColor   = "#ffffff"
	particleRad = 5.0
)

func writeHeader(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

// bounds returns the box around points grown by pad on every side.
func bounds(points []cloth.Vec2, pad float64) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return minX - pad, minY - pad, maxX + pad, maxY + pad
}

// GridToSVG draws one frame of a width x height sheet: structural links as
// lines and particles as circles, pinned ones red. The drawing is scaled
// uniformly to fit a size x size image; screen y grows downward as in the
// simulation.
func GridToSVG(positions []cloth.Vec2, pinned []bool, width, height int, size int) (string, error) {
	if width <= 0 || height <= 0 || len(positions) != width*height {
		return "", fmt.Errorf("export: %d positions do not form a %dx%d grid", len(positions), width, height)
	}
	if len(pinned) != 0 && len(pinned) != len(positions) {
		return "", fmt.Errorf("export: %d pin flags for %d particles", len(pinned), len(positions))
	}
	for i, p := range positions {
		if !p.IsValid() {
			return "", fmt.Errorf("export: particle %d has non-finite position %v", i, p)
		}
	}

	minX, minY, maxX, maxY := bounds(positions, 2*particleRad)
	scale := float64(size) / math.Max(math.Max(maxX-minX, maxY-minY), 1)
	tx := func(p cloth.Vec2) (float64, float64) {
		return (p.X - minX) * scale, (p.Y - minY) * scale
	}

	var sb strings.Builder
	writeHeader(&sb, float64(size), float64(size))

	fmt.Fprintf(&sb, "<g stroke=\"%s\" stroke-width=\"1\">\n", linkColor)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			i := row*width + col
			x0, y0 := tx(positions[i])
			if col+1 < width {
				x1, y1 := tx(positions[i+1])
				fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n", x0, y0, x1, y1)
			}
			if row+1 < height {
				x1, y1 := tx(positions[i+width])
				fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n", x0, y0, x1, y1)
			}
		}
	}
	sb.WriteString("</g>\n")

	r := math.Max(particleRad*scale, 0.5)
	for i, p := range positions {
		fill := freeColor
		if len(pinned) > 0 && pinned[i] {
			fill = pinColor
		}
		x, y := tx(p)
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", x, y, r, fill)
	}

	sb.WriteString("</svg>")
	return sb.String(), nil
}

// PathToSVG traces one particle across frames.
func PathToSVG(points []cloth.Vec2, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, minY, maxX, maxY := bounds(points, 0)
	rangeX := math.Max(maxX-minX, 1)
	rangeY := math.Max(maxY-minY, 1)
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	writeHeader(&sb, float64(width), float64(height))
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor)

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := (p.Y - minY) / rangeY * float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// CanvasToSVG converts a braille canvas to SVG, one dot per lit sub-pixel.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	var sb strings.Builder
	writeHeader(&sb, float64(canvas.SubWidth())*scale, float64(canvas.SubHeight())*scale)
	sb.WriteString("<g fill=\"#00ff00\">\n")

	dotRadius := scale * 0.4
	for y := 0; y < canvas.SubHeight(); y++ {
		for x := 0; x < canvas.SubWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
