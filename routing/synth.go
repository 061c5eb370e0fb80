package routing

import (
	"math"

	"connroute/core"
	"connroute/geometry"
	"connroute/pathgeom"
)

// Params is everything a connector path is computed from.
type Params struct {
	Start, End  core.Point
	LineType    core.LineType
	Offset      core.Point
	StartDir    core.Direction
	EndDir      core.Direction
	Mode        core.Mode // step lines only: layout pinned by a drag session
	DisableSnap bool
}

// Result is a synthesized connector path.
type Result struct {
	Geometry pathgeom.Geometry
	// Points is the skeleton of the path: the two endpoints of a straight
	// line, the corner polyline of a step path, or start, both control
	// points and end of a curve.
	Points []core.Point
	Mode   core.Mode
}

// IsEmpty reports whether the path draws nothing.
func (r Result) IsEmpty() bool {
	return r.Geometry.IsEmpty()
}

// Segments returns consecutive point pairs of the skeleton. For curves this
// is the control polygon.
func (r Result) Segments() [][2]core.Point {
	if len(r.Points) < 2 {
		return nil
	}
	segs := make([][2]core.Point, 0, len(r.Points)-1)
	for i := 1; i < len(r.Points); i++ {
		segs = append(segs, [2]core.Point{r.Points[i-1], r.Points[i]})
	}
	return segs
}

// Synthesize computes the path of a connector. It is a pure function of its
// arguments; non-finite input yields an empty path.
func Synthesize(cfg Config, p Params) Result {
	if !geometry.AllFinite(p.Start.X, p.Start.Y, p.End.X, p.End.Y, p.Offset.X, p.Offset.Y) {
		return Result{}
	}

	switch p.LineType {
	case core.Step:
		route := Step(cfg, StepInput{
			Start:       p.Start,
			End:         p.End,
			Offset:      p.Offset,
			DisableSnap: p.DisableSnap,
			StartDir:    p.StartDir,
			EndDir:      p.EndDir,
			Mode:        p.Mode,
		})
		return Result{Geometry: Round(cfg, route.Points), Points: route.Points, Mode: route.Mode}
	case core.Curve:
		c1, c2 := CurveControls(cfg, p.Start, p.End, p.Offset, p.StartDir, p.EndDir)
		var g pathgeom.Geometry
		g.MoveTo(p.Start)
		g.CubicTo(c1, c2, p.End)
		return Result{Geometry: g, Points: []core.Point{p.Start, c1, c2, p.End}}
	default:
		a, b := StraightLine(p.Start, p.End, p.Offset)
		var g pathgeom.Geometry
		g.MoveTo(a)
		g.LineTo(b)
		return Result{Geometry: g, Points: []core.Point{a, b}}
	}
}

// StraightLine returns the endpoints of a direct connector. Only the part
// of the offset perpendicular to the line is applied, so dragging bows the
// line sideways and never stretches it along its own axis.
func StraightLine(start, end, offset core.Point) (core.Point, core.Point) {
	d := end.Sub(start)
	n := geometry.Unit(core.Pt(-d.Y, d.X))
	shift := n.Scale(offset.Dot(n))
	return start.Add(shift), end.Add(shift)
}

// CurveControls returns the control points of a cubic connector. Each
// control point is pushed out of its endpoint along the port direction;
// the offset moves both control points and never the endpoints.
func CurveControls(cfg Config, start, end, offset core.Point, startDir, endDir core.Direction) (core.Point, core.Point) {
	dist := start.Dist(end)
	reach := math.Min(cfg.CurveControlRatio*dist, cfg.CurveMaxControl)

	if !startDir.Known() {
		startDir = dominantDirection(end.Sub(start))
	}
	if !endDir.Known() {
		endDir = dominantDirection(start.Sub(end))
	}

	c1 := start.Add(startDir.Vector().Scale(reach)).Add(offset)
	c2 := end.Add(endDir.Vector().Scale(reach)).Add(offset)
	return c1, c2
}

// dominantDirection returns the axis direction closest to v.
func dominantDirection(v core.Point) core.Direction {
	if math.Abs(v.X) >= math.Abs(v.Y) {
		if v.X < 0 {
			return core.Left
		}
		return core.Right
	}
	if v.Y < 0 {
		return core.Up
	}
	return core.Down
}
