package canvas

import (
	"math"

	"connroute/core"
)

// Terminal cells are about twice as tall as they are wide.
const (
	DefaultScaleX = 10.0
	DefaultScaleY = 20.0
)

// Viewport maps diagram coordinates to grid cells.
type Viewport struct {
	Origin core.Point // diagram point drawn at cell (Margin, Margin)
	ScaleX float64    // diagram units per column
	ScaleY float64    // diagram units per row
	Margin int
}

// Fit returns a viewport whose origin is the top-left corner of b. Non
// positive scales fall back to the defaults.
func Fit(b core.Bounds, scaleX, scaleY float64, margin int) Viewport {
	if scaleX <= 0 {
		scaleX = DefaultScaleX
	}
	if scaleY <= 0 {
		scaleY = DefaultScaleY
	}
	return Viewport{Origin: b.Min, ScaleX: scaleX, ScaleY: scaleY, Margin: max(margin, 0)}
}

// Cell returns the cell a diagram point falls in.
func (v Viewport) Cell(p core.Point) Cell {
	return Cell{
		X: int(math.Round((p.X-v.Origin.X)/v.ScaleX)) + v.Margin,
		Y: int(math.Round((p.Y-v.Origin.Y)/v.ScaleY)) + v.Margin,
	}
}

// Point returns the diagram point at the center of a cell.
func (v Viewport) Point(c Cell) core.Point {
	return core.Pt(
		v.Origin.X+float64(c.X-v.Margin)*v.ScaleX,
		v.Origin.Y+float64(c.Y-v.Margin)*v.ScaleY,
	)
}

// Cells maps a polyline to cells, dropping consecutive repeats.
func (v Viewport) Cells(pts []core.Point) []Cell {
	out := make([]Cell, 0, len(pts))
	for _, p := range pts {
		c := v.Cell(p)
		if n := len(out); n > 0 && out[n-1] == c {
			continue
		}
		out = append(out, c)
	}
	return out
}

// GridSize returns the grid dimensions needed to show b with the margin on
// every side.
func (v Viewport) GridSize(b core.Bounds) (int, int) {
	c := v.Cell(b.Max)
	return c.X + v.Margin + 1, c.Y + v.Margin + 1
}
