// Package pathparam maps between points on a connector and the parametric
// position t in [0,1] along it. Labels are anchored with PointAt, and a
// dragged label or a click is turned back into a position with ParameterAt.
package pathparam

import (
	"math"

	"connroute/core"
	"connroute/geometry"
	"connroute/pathgeom"
	"connroute/routing"
)

// DefaultPosition is the label position used when a connector stores none.
const DefaultPosition = 0.5

const (
	curveSamples = 64
	refineSteps  = 40
)

// PointAt returns the point at parameter t along the connector. Step lines
// are measured by arc length over their segments; a nil t picks the middle
// of the longest segment, which keeps default labels off the bends. Straight
// and curved lines use the middle of the line.
func PointAt(cfg routing.Config, p routing.Params, t *float64) core.Point {
	res := routing.Synthesize(cfg, p)
	if len(res.Points) == 0 {
		return core.Point{}
	}

	switch p.LineType {
	case core.Step:
		if t == nil {
			return longestMidpoint(res.Points)
		}
		return alongPolyline(res.Points, clamp01(*t))
	case core.Curve:
		return pathgeom.EvalCubic(res.Points[0], res.Points[1], res.Points[2], res.Points[3], orDefault(t))
	default:
		return geometry.Lerp(res.Points[0], res.Points[1], orDefault(t))
	}
}

// ParameterAt returns the parameter of the point on the connector closest
// to q.
func ParameterAt(cfg routing.Config, p routing.Params, q core.Point) float64 {
	res := routing.Synthesize(cfg, p)
	if len(res.Points) == 0 || !geometry.PointFinite(q) {
		return DefaultPosition
	}
	if p.LineType == core.Curve {
		return nearestOnCubic(res.Points, q)
	}
	return nearestOnPolyline(res.Points, q)
}

// DistanceTo returns the distance from q to the drawn connector, bends and
// curves included. An empty connector is infinitely far away.
func DistanceTo(cfg routing.Config, p routing.Params, q core.Point) float64 {
	res := routing.Synthesize(cfg, p)
	flat := res.Geometry.Flatten()
	if len(flat) == 0 || !geometry.PointFinite(q) {
		return math.Inf(1)
	}
	if len(flat) == 1 {
		return q.Dist(flat[0])
	}
	best := math.Inf(1)
	for i := 1; i < len(flat); i++ {
		_, c := geometry.ProjectOnSegment(q, flat[i-1], flat[i])
		best = math.Min(best, geometry.DistSq(q, c))
	}
	return math.Sqrt(best)
}

// Hit reports whether q lies within tolerance of the connector.
func Hit(cfg routing.Config, p routing.Params, q core.Point, tolerance float64) bool {
	return DistanceTo(cfg, p, q) <= tolerance
}

func orDefault(t *float64) float64 {
	if t == nil {
		return DefaultPosition
	}
	return clamp01(*t)
}

func clamp01(t float64) float64 {
	if !geometry.IsFinite(t) {
		return DefaultPosition
	}
	return geometry.Clamp(t, 0, 1)
}

func segmentLengths(pts []core.Point) ([]float64, float64) {
	lens := make([]float64, len(pts)-1)
	total := 0.0
	for i := 1; i < len(pts); i++ {
		lens[i-1] = pts[i-1].Dist(pts[i])
		total += lens[i-1]
	}
	return lens, total
}

func longestMidpoint(pts []core.Point) core.Point {
	if len(pts) == 1 {
		return pts[0]
	}
	lens, _ := segmentLengths(pts)
	best := 0
	for i, l := range lens {
		if l > lens[best] {
			best = i
		}
	}
	return geometry.Lerp(pts[best], pts[best+1], 0.5)
}

func alongPolyline(pts []core.Point, t float64) core.Point {
	if len(pts) == 1 {
		return pts[0]
	}
	lens, total := segmentLengths(pts)
	if total < geometry.Epsilon {
		return pts[0]
	}

	target := t * total
	for i, l := range lens {
		if target <= l || i == len(lens)-1 {
			if l < geometry.Epsilon {
				return pts[i]
			}
			return geometry.Lerp(pts[i], pts[i+1], geometry.Clamp(target/l, 0, 1))
		}
		target -= l
	}
	return pts[len(pts)-1]
}

func nearestOnPolyline(pts []core.Point, q core.Point) float64 {
	if len(pts) < 2 {
		return 0
	}
	lens, total := segmentLengths(pts)
	if total < geometry.Epsilon {
		return 0
	}

	bestD, bestT := math.Inf(1), 0.0
	walked := 0.0
	for i, l := range lens {
		u, c := geometry.ProjectOnSegment(q, pts[i], pts[i+1])
		if d := geometry.DistSq(q, c); d < bestD {
			bestD = d
			bestT = (walked + u*l) / total
		}
		walked += l
	}
	return bestT
}

func nearestOnCubic(cp []core.Point, q core.Point) float64 {
	at := func(t float64) float64 {
		return geometry.DistSq(q, pathgeom.EvalCubic(cp[0], cp[1], cp[2], cp[3], t))
	}

	best, bestD := 0.0, math.Inf(1)
	for i := 0; i <= curveSamples; i++ {
		t := float64(i) / curveSamples
		if d := at(t); d < bestD {
			best, bestD = t, d
		}
	}

	lo := math.Max(0, best-1.0/curveSamples)
	hi := math.Min(1, best+1.0/curveSamples)
	for i := 0; i < refineSteps; i++ {
		m1 := lo + (hi-lo)/3
		m2 := hi - (hi-lo)/3
		if at(m1) < at(m2) {
			hi = m2
		} else {
			lo = m1
		}
	}
	return (lo + hi) / 2
}
