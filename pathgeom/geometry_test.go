package pathgeom

import (
	"math"
	"testing"

	"connroute/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundedCorner() Geometry {
	var g Geometry
	g.MoveTo(core.Pt(0, 0))
	g.LineTo(core.Pt(90, 0))
	g.ArcTo(10, true, core.Pt(100, 10))
	g.LineTo(core.Pt(100, 100))
	return g
}

func TestSVG(t *testing.T) {
	g := roundedCorner()
	assert.Equal(t, "M 0 0 L 90 0 A 10 10 0 0 1 100 10 L 100 100", g.SVG())

	var c Geometry
	c.MoveTo(core.Pt(0.004, -0.001))
	c.CubicTo(core.Pt(1.234, 2), core.Pt(3, 4.5678), core.Pt(5, 6))
	assert.Equal(t, "M 0 0 C 1.23 2 3 4.57 5 6", c.SVG())
}

func TestLengthMeasuresArcs(t *testing.T) {
	g := roundedCorner()
	want := 90 + math.Pi*10/2 + 90
	assert.InDelta(t, want, g.Length(), 1e-6)
}

func TestBounds(t *testing.T) {
	var g Geometry
	g.MoveTo(core.Pt(0, 0))
	g.CubicTo(core.Pt(0, -50), core.Pt(100, 150), core.Pt(100, 100))

	b := g.Bounds()
	assert.Equal(t, core.Pt(0, -50), b.Min)
	assert.Equal(t, core.Pt(100, 150), b.Max)
	assert.Equal(t, core.Bounds{}, Geometry{}.Bounds())
}

func TestFlattenStaysOnArc(t *testing.T) {
	g := roundedCorner()
	pts := g.Flatten()
	require.NotEmpty(t, pts)
	assert.Equal(t, core.Pt(0, 0), pts[0])
	assert.Equal(t, core.Pt(100, 100), pts[len(pts)-1])

	center := ArcCenter(core.Pt(90, 0), core.Pt(100, 10), 10, true)
	assert.InDelta(t, 90, center.X, 1e-9)
	assert.InDelta(t, 10, center.Y, 1e-9)

	for _, p := range pts {
		if p.X > 90 && p.Y < 10 {
			assert.InDelta(t, 10, p.Dist(center), 1e-6, "point %v is on the arc", p)
		}
	}
}

func TestArcCenterCounterClockwise(t *testing.T) {
	// right then up turns counter-clockwise on screen
	c := ArcCenter(core.Pt(90, 0), core.Pt(100, -10), 10, false)
	assert.InDelta(t, 90, c.X, 1e-9)
	assert.InDelta(t, -10, c.Y, 1e-9)
}

func TestEndpoints(t *testing.T) {
	g := roundedCorner()
	assert.Equal(t, core.Pt(0, 0), g.Start())
	assert.Equal(t, core.Pt(100, 100), g.End())
	assert.Len(t, g.Arcs(), 1)
	assert.False(t, g.IsEmpty())
	assert.True(t, Geometry{}.IsEmpty())
}

func TestEvalCubic(t *testing.T) {
	p0, c1, c2, p3 := core.Pt(0, 0), core.Pt(0, 100), core.Pt(100, 100), core.Pt(100, 0)
	assert.Equal(t, p0, EvalCubic(p0, c1, c2, p3, 0))
	assert.Equal(t, p3, EvalCubic(p0, c1, c2, p3, 1))
	mid := EvalCubic(p0, c1, c2, p3, 0.5)
	assert.InDelta(t, 50, mid.X, 1e-9)
	assert.InDelta(t, 75, mid.Y, 1e-9)
}
