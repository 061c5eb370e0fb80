package routing

import (
	"math"

	"connroute/core"
	"connroute/geometry"
)

// Axis is the orientation of a grabbed path segment.
type Axis int

const (
	AxisNone Axis = iota
	AxisHorizontal
	AxisVertical
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return "none"
	}
}

// Reproject applies an incremental drag to a connector and returns the
// updated parameters with their path. Port selection is never revisited.
//
// Step lines only support four segments, so dragging a horizontal segment
// moves it vertically and clears the horizontal offset, and the other way
// round for a vertical segment. Callers that hold a drag open should set
// p.Mode so the layout cannot flip while the pointer moves.
func Reproject(cfg Config, p Params, seg Axis, delta core.Point) (Params, Result) {
	if !geometry.PointFinite(delta) {
		return p, Synthesize(cfg, p)
	}

	switch p.LineType {
	case core.Step:
		switch seg {
		case AxisHorizontal:
			p.Offset = core.Pt(0, p.Offset.Y+delta.Y)
		case AxisVertical:
			p.Offset = core.Pt(p.Offset.X+delta.X, 0)
		default:
			p.Offset = p.Offset.Add(delta)
		}
	default:
		p.Offset = p.Offset.Add(delta)
	}
	return p, Synthesize(cfg, p)
}

// DragSession pins the layout of a connector for the length of one pointer
// gesture.
type DragSession struct {
	cfg    Config
	params Params
	seg    Axis
	last   Result
}

// BeginDrag starts a drag on the segment of the connector closest to grab.
// The current step layout is locked into the session parameters.
func BeginDrag(cfg Config, p Params, grab core.Point) *DragSession {
	res := Synthesize(cfg, p)
	s := &DragSession{cfg: cfg, params: p, last: res}
	if p.LineType != core.Step {
		return s
	}
	if res.Mode != core.ModeAuto {
		s.params.Mode = res.Mode
	}
	s.seg = nearestAxis(res.Points, grab)
	return s
}

// Apply moves the grabbed segment by delta and returns the new path.
func (s *DragSession) Apply(delta core.Point) Result {
	s.params, s.last = Reproject(s.cfg, s.params, s.seg, delta)
	return s.last
}

// Segment returns the orientation of the grabbed segment, AxisNone for
// straight and curve connectors.
func (s *DragSession) Segment() Axis { return s.seg }

// Params returns the connector parameters including the accumulated offset
// and the locked mode.
func (s *DragSession) Params() Params { return s.params }

// Result returns the path after the latest move.
func (s *DragSession) Result() Result { return s.last }

// Offset returns the offset to persist when the gesture ends.
func (s *DragSession) Offset() core.Point { return s.params.Offset }

// nearestAxis returns the orientation of the polyline segment closest to p.
func nearestAxis(pts []core.Point, p core.Point) Axis {
	if len(pts) < 2 {
		return AxisNone
	}
	best, bestD := 0, math.Inf(1)
	for i := 1; i < len(pts); i++ {
		_, q := geometry.ProjectOnSegment(p, pts[i-1], pts[i])
		if d := geometry.DistSq(p, q); d < bestD {
			best, bestD = i, d
		}
	}
	if geometry.IsVertical(pts[best-1], pts[best]) {
		return AxisVertical
	}
	return AxisHorizontal
}
