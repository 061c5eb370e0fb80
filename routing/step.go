package routing

import (
	"math"

	"connroute/core"
	"connroute/geometry"
)

// StepInput describes an orthogonal connector between two points.
type StepInput struct {
	Start, End  core.Point
	Offset      core.Point     // manual displacement of the middle coordinates
	DisableSnap bool           // keep near-degenerate middle segments
	StartDir    core.Direction // outward direction of the start port, None if free
	EndDir      core.Direction // outward direction of the end port, None if free
	Mode        core.Mode      // locked layout during a drag, ModeAuto otherwise
}

// StepRoute is the corner polyline of a step path before rounding.
type StepRoute struct {
	Points []core.Point
	Mode   core.Mode
}

// Step lays out an orthogonal path. The general shape has four segments
// whose middle coordinates cx and cy are free:
//
//	horizontal-first: S -> (cx,sy) -> (cx,cy) -> (ex,cy) -> E
//	vertical-first:   S -> (sx,cy) -> (cx,cy) -> (cx,ey) -> E
//
// Port directions pin one of the coordinates where the layout needs fewer
// bends, stubs keep the first and last segment away from the shapes, and
// zero-length segments are dropped from the result.
func Step(cfg Config, in StepInput) StepRoute {
	s, e, off := in.Start, in.End, in.Offset
	if !geometry.AllFinite(s.X, s.Y, e.X, e.Y, off.X, off.Y) {
		return StepRoute{}
	}

	dx, dy := e.X-s.X, e.Y-s.Y
	if math.Abs(dx) < cfg.DegenerateThreshold || math.Abs(dy) < cfg.DegenerateThreshold {
		return StepRoute{Points: []core.Point{s, e}, Mode: ModeFor(in.StartDir, in.EndDir, dx, dy)}
	}

	mode := chooseMode(cfg, in, dx, dy)
	startDir, endDir := in.StartDir, in.EndDir
	bothKnown := startDir.Known() && endDir.Known()
	if !startDir.Known() {
		startDir = inferStartDir(mode, dx, dy)
	}
	if !endDir.Known() {
		endDir = inferEndDir(mode, dx, dy)
	}

	cx := s.X + dx/2 + off.X
	cy := s.Y + dy/2 + off.Y
	stub := cfg.MinStub

	var xs, ys span
	switch mode {
	case core.ModeHorizontalFirst:
		// cx sets the first segment, cy the last one.
		xs = outward(startDir, s.X, stub)
		ys = outward(endDir, e.Y, stub)
		switch {
		case startDir.IsHorizontal() && endDir.IsHorizontal():
			// H,V,H: the last bend lines up with the end port.
			cy = e.Y
			xs = xs.meetOrKeep(outward(endDir, e.X, stub))
			ys = span{lo: e.Y, hi: e.Y}
		case bothKnown && lShapeFits(in.Offset, cfg, xs, ys, e.X, s.Y):
			cx, cy = e.X, s.Y
			xs, ys = span{lo: e.X, hi: e.X}, span{lo: s.Y, hi: s.Y}
		}
	default:
		// cy sets the first segment, cx the last one.
		ys = outward(startDir, s.Y, stub)
		xs = outward(endDir, e.X, stub)
		switch {
		case startDir.IsVertical() && endDir.IsVertical():
			// V,H,V: the last bend lines up with the end port.
			cx = e.X
			ys = ys.meetOrKeep(outward(endDir, e.Y, stub))
			xs = span{lo: e.X, hi: e.X}
		case bothKnown && lShapeFits(in.Offset, cfg, xs, ys, s.X, e.Y):
			cx, cy = s.X, e.Y
			xs, ys = span{lo: s.X, hi: s.X}, span{lo: e.Y, hi: e.Y}
		}
	}

	cx = xs.clamp(cx)
	cy = ys.clamp(cy)

	corners := func(cx, cy float64) []core.Point {
		if mode == core.ModeHorizontalFirst {
			return Simplify([]core.Point{s, core.Pt(cx, s.Y), core.Pt(cx, cy), core.Pt(e.X, cy), e})
		}
		return Simplify([]core.Point{s, core.Pt(s.X, cy), core.Pt(cx, cy), core.Pt(cx, e.Y), e})
	}

	// A snap that folds the path back over itself is skipped.
	if !in.DisableSnap {
		if v := snap(cx, cfg.SnapThreshold, xs, e.X, s.X); !folds(corners(v, cy)) {
			cx = v
		}
		if v := snap(cy, cfg.SnapThreshold, ys, s.Y, e.Y); !folds(corners(cx, v)) {
			cy = v
		}
	}
	return StepRoute{Points: corners(cx, cy), Mode: mode}
}

// folds reports whether the polyline turns back on itself somewhere.
func folds(pts []core.Point) bool {
	for i := 1; i+1 < len(pts); i++ {
		in, out := pts[i].Sub(pts[i-1]), pts[i+1].Sub(pts[i])
		if math.Abs(geometry.Cross(in, out)) < 1e-6 && in.Dot(out) < 0 {
			return true
		}
	}
	return false
}

// ModeFor returns the layout implied by port directions alone, falling back
// to the dominant axis of the delta.
func ModeFor(startDir, endDir core.Direction, dx, dy float64) core.Mode {
	switch {
	case startDir.IsVertical():
		return core.ModeVerticalFirst
	case startDir.IsHorizontal():
		return core.ModeHorizontalFirst
	case endDir.IsVertical():
		return core.ModeHorizontalFirst
	case endDir.IsHorizontal():
		return core.ModeVerticalFirst
	}
	if math.Abs(dy) >= math.Abs(dx) {
		return core.ModeHorizontalFirst
	}
	return core.ModeVerticalFirst
}

// chooseMode applies, in increasing priority, the axis default, a previous
// single-axis manual edit, a drag lock, and the port directions.
func chooseMode(cfg Config, in StepInput, dx, dy float64) core.Mode {
	if in.StartDir.Known() || in.EndDir.Known() {
		return ModeFor(in.StartDir, in.EndDir, dx, dy)
	}
	if in.Mode != core.ModeAuto {
		return in.Mode
	}

	mode := ModeFor(core.None, core.None, dx, dy)
	ox, oy := math.Abs(in.Offset.X), math.Abs(in.Offset.Y)
	switch {
	case oy > cfg.IntentThreshold && ox < cfg.IntentThreshold:
		mode = core.ModeVerticalFirst
	case ox > cfg.IntentThreshold && oy < cfg.IntentThreshold:
		mode = core.ModeHorizontalFirst
	}
	return mode
}

// inferStartDir returns the direction of travel of the first segment.
func inferStartDir(mode core.Mode, dx, dy float64) core.Direction {
	if mode == core.ModeHorizontalFirst {
		if dx < 0 {
			return core.Left
		}
		return core.Right
	}
	if dy < 0 {
		return core.Up
	}
	return core.Down
}

// inferEndDir returns the outward direction of a virtual port at the end,
// which is opposite to the direction the last segment travels in.
func inferEndDir(mode core.Mode, dx, dy float64) core.Direction {
	if mode == core.ModeHorizontalFirst {
		if dy < 0 {
			return core.Down
		}
		return core.Up
	}
	if dx < 0 {
		return core.Right
	}
	return core.Left
}

// lShapeFits reports whether the single-bend path through (x, y) satisfies
// both stubs and no manual edit asks for a different layout.
func lShapeFits(off core.Point, cfg Config, xs, ys span, x, y float64) bool {
	if math.Abs(off.X) >= cfg.IntentThreshold || math.Abs(off.Y) >= cfg.IntentThreshold {
		return false
	}
	return xs.contains(x) && ys.contains(y)
}

// snap collapses v onto the first target within threshold, as long as the
// target is still allowed by the stub span.
func snap(v, threshold float64, allowed span, targets ...float64) float64 {
	for _, t := range targets {
		if math.Abs(v-t) <= threshold && allowed.contains(t) {
			return t
		}
	}
	return v
}

// span is the closed interval a middle coordinate may take.
type span struct {
	lo, hi float64
}

var anywhere = span{lo: math.Inf(-1), hi: math.Inf(1)}

// outward returns the coordinates that keep a segment at least stub away
// from a port at position v facing d.
func outward(d core.Direction, v, stub float64) span {
	switch d {
	case core.Down, core.Right:
		return span{lo: v + stub, hi: math.Inf(1)}
	case core.Up, core.Left:
		return span{lo: math.Inf(-1), hi: v - stub}
	default:
		return anywhere
	}
}

// meetOrKeep intersects two spans; when they are disjoint the receiver,
// which belongs to the start port, wins.
func (a span) meetOrKeep(b span) span {
	m := span{lo: math.Max(a.lo, b.lo), hi: math.Min(a.hi, b.hi)}
	if m.lo > m.hi {
		return a
	}
	return m
}

func (a span) contains(v float64) bool {
	return v >= a.lo-geometry.Epsilon && v <= a.hi+geometry.Epsilon
}

func (a span) clamp(v float64) float64 {
	return geometry.Clamp(v, a.lo, a.hi)
}

// Simplify drops repeated points and points lying between their neighbours
// on a straight run.
func Simplify(pts []core.Point) []core.Point {
	const tol = 1e-6
	out := make([]core.Point, 0, len(pts))
	for _, p := range pts {
		if n := len(out); n > 0 && geometry.Near(out[n-1], p, tol) {
			continue
		}
		out = append(out, p)
	}
	if len(out) < 3 {
		return out
	}

	res := []core.Point{out[0]}
	for i := 1; i < len(out)-1; i++ {
		prev := res[len(res)-1]
		cur, next := out[i], out[i+1]
		in, outv := cur.Sub(prev), next.Sub(cur)
		if math.Abs(geometry.Cross(in, outv)) < tol && in.Dot(outv) > 0 {
			continue
		}
		res = append(res, cur)
	}
	return append(res, out[len(out)-1])
}
