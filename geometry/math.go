// Package geometry holds small numeric helpers shared by the routing engine.
package geometry

import (
	"math"

	"connroute/core"
)

// Epsilon is the tolerance used when comparing coordinates.
const Epsilon = 1e-9

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// AllFinite reports whether every value is finite.
func AllFinite(vs ...float64) bool {
	for _, v := range vs {
		if !IsFinite(v) {
			return false
		}
	}
	return true
}

// PointFinite reports whether both coordinates of p are finite.
func PointFinite(p core.Point) bool {
	return IsFinite(p.X) && IsFinite(p.Y)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates between a and b.
func Lerp(a, b core.Point, t float64) core.Point {
	return core.Point{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// Near reports whether a and b are within tol of each other on both axes.
func Near(a, b core.Point, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

// IsVertical returns true if the line from a to b is more vertical than horizontal.
func IsVertical(a, b core.Point) bool {
	return math.Abs(b.Y-a.Y) > math.Abs(b.X-a.X)
}

// ProjectOnSegment returns the local parameter u in [0,1] of the point on
// segment ab closest to p, together with that point. A zero-length segment
// projects everything onto a.
func ProjectOnSegment(p, a, b core.Point) (float64, core.Point) {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq < Epsilon {
		return 0, a
	}
	u := Clamp(p.Sub(a).Dot(ab)/lenSq, 0, 1)
	return u, a.Add(ab.Scale(u))
}

// DistSq returns the squared distance between a and b.
func DistSq(a, b core.Point) float64 {
	d := b.Sub(a)
	return d.Dot(d)
}

// Cross returns the z component of the cross product of a and b.
func Cross(a, b core.Point) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Unit returns v scaled to length one, or the zero vector.
func Unit(v core.Point) core.Point {
	l := v.Len()
	if l < Epsilon {
		return core.Point{}
	}
	return v.Scale(1 / l)
}
