// Package pathgeom describes connector paths as a list of drawing commands
// that any 2D vector back-end can replay.
package pathgeom

import (
	"math"

	"connroute/core"
	"connroute/geometry"
)

// Op is a path drawing operation.
type Op uint8

const (
	MoveTo Op = iota
	LineTo
	ArcTo   // circular arc with radius and sweep, no center (SVG "A")
	CubicTo // cubic bezier (c1, c2, to)
)

// String returns the name of the operation.
func (o Op) String() string {
	switch o {
	case MoveTo:
		return "move"
	case LineTo:
		return "line"
	case ArcTo:
		return "arc"
	case CubicTo:
		return "cubic"
	default:
		return "unknown"
	}
}

// Command is one drawing step. To is the end point of every operation; C1
// and C2 are only used by CubicTo, Radius and Sweep only by ArcTo. Sweep
// true means the arc turns clockwise on a y-down screen.
type Command struct {
	Op     Op         `json:"op" msgpack:"op"`
	To     core.Point `json:"to" msgpack:"to"`
	C1     core.Point `json:"c1,omitempty" msgpack:"c1,omitempty"`
	C2     core.Point `json:"c2,omitempty" msgpack:"c2,omitempty"`
	Radius float64    `json:"r,omitempty" msgpack:"r,omitempty"`
	Sweep  bool       `json:"sweep,omitempty" msgpack:"sweep,omitempty"`
}

// Geometry is a connector path.
type Geometry struct {
	Cmds []Command `json:"cmds" msgpack:"cmds"`
}

// MoveTo starts a new subpath.
func (g *Geometry) MoveTo(p core.Point) {
	g.Cmds = append(g.Cmds, Command{Op: MoveTo, To: p})
}

// LineTo adds a straight segment.
func (g *Geometry) LineTo(p core.Point) {
	g.Cmds = append(g.Cmds, Command{Op: LineTo, To: p})
}

// ArcTo adds a circular arc of radius r ending at p.
func (g *Geometry) ArcTo(r float64, sweep bool, p core.Point) {
	g.Cmds = append(g.Cmds, Command{Op: ArcTo, To: p, Radius: r, Sweep: sweep})
}

// CubicTo adds a cubic bezier.
func (g *Geometry) CubicTo(c1, c2, p core.Point) {
	g.Cmds = append(g.Cmds, Command{Op: CubicTo, To: p, C1: c1, C2: c2})
}

// IsEmpty returns true if the geometry draws nothing.
func (g Geometry) IsEmpty() bool {
	return len(g.Cmds) < 2
}

// Start returns the first point of the path.
func (g Geometry) Start() core.Point {
	if len(g.Cmds) == 0 {
		return core.Point{}
	}
	return g.Cmds[0].To
}

// End returns the last point of the path.
func (g Geometry) End() core.Point {
	if len(g.Cmds) == 0 {
		return core.Point{}
	}
	return g.Cmds[len(g.Cmds)-1].To
}

// Arcs returns the arc commands of the path.
func (g Geometry) Arcs() []Command {
	var arcs []Command
	for _, c := range g.Cmds {
		if c.Op == ArcTo {
			arcs = append(arcs, c)
		}
	}
	return arcs
}

// Bounds returns an axis-aligned bounding box using end and control
// points, which is enough for viewport fitting and selection rectangles.
func (g Geometry) Bounds() core.Bounds {
	if len(g.Cmds) == 0 {
		return core.Bounds{}
	}
	b := core.Bounds{Min: g.Cmds[0].To, Max: g.Cmds[0].To}
	for _, c := range g.Cmds[1:] {
		b = b.Extend(c.To)
		if c.Op == CubicTo {
			b = b.Extend(c.C1).Extend(c.C2)
		}
	}
	return b
}

// Length returns the length of the path. Arcs are measured exactly, cubics
// by flattening.
func (g Geometry) Length() float64 {
	total := 0.0
	var cur core.Point
	for _, c := range g.Cmds {
		switch c.Op {
		case MoveTo:
		case LineTo:
			total += cur.Dist(c.To)
		case ArcTo:
			total += arcLength(cur, c.To, c.Radius)
		case CubicTo:
			pts := flattenCubic(cur, c.C1, c.C2, c.To, cubicSteps)
			for i := 1; i < len(pts); i++ {
				total += pts[i-1].Dist(pts[i])
			}
		}
		cur = c.To
	}
	return total
}

const (
	cubicSteps = 32
	arcSteps   = 8
)

// Flatten approximates the path by a polyline.
func (g Geometry) Flatten() []core.Point {
	var out []core.Point
	var cur core.Point
	for _, c := range g.Cmds {
		switch c.Op {
		case MoveTo, LineTo:
			out = append(out, c.To)
		case ArcTo:
			out = append(out, flattenArc(cur, c.To, c.Radius, c.Sweep, arcSteps)[1:]...)
		case CubicTo:
			out = append(out, flattenCubic(cur, c.C1, c.C2, c.To, cubicSteps)[1:]...)
		}
		cur = c.To
	}
	return out
}

// arcLength measures the minor arc of radius r between two points.
func arcLength(from, to core.Point, r float64) float64 {
	chord := from.Dist(to)
	if r <= 0 || chord <= geometry.Epsilon {
		return chord
	}
	half := math.Min(1, chord/(2*r))
	return 2 * r * math.Asin(half)
}

// ArcCenter returns the center of the minor arc from -> to with radius r.
func ArcCenter(from, to core.Point, r float64, sweep bool) core.Point {
	mid := geometry.Lerp(from, to, 0.5)
	chord := to.Sub(from)
	half := chord.Len() / 2
	if half <= geometry.Epsilon {
		return from
	}
	h := math.Sqrt(math.Max(0, r*r-half*half))
	// the normal to the left of travel points to the center of a clockwise arc
	n := geometry.Unit(core.Pt(-chord.Y, chord.X))
	if !sweep {
		n = n.Scale(-1)
	}
	return mid.Add(n.Scale(h))
}

func flattenArc(from, to core.Point, r float64, sweep bool, steps int) []core.Point {
	c := ArcCenter(from, to, r, sweep)
	a0 := math.Atan2(from.Y-c.Y, from.X-c.X)
	a1 := math.Atan2(to.Y-c.Y, to.X-c.X)
	delta := a1 - a0
	if sweep {
		for delta < 0 {
			delta += 2 * math.Pi
		}
	} else {
		for delta > 0 {
			delta -= 2 * math.Pi
		}
	}
	rad := from.Dist(c)
	pts := make([]core.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		a := a0 + delta*float64(i)/float64(steps)
		pts = append(pts, core.Pt(c.X+rad*math.Cos(a), c.Y+rad*math.Sin(a)))
	}
	pts[len(pts)-1] = to
	return pts
}

// EvalCubic evaluates a cubic bezier at t.
func EvalCubic(p0, c1, c2, p3 core.Point, t float64) core.Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return core.Point{
		X: a*p0.X + b*c1.X + c*c2.X + d*p3.X,
		Y: a*p0.Y + b*c1.Y + c*c2.Y + d*p3.Y,
	}
}

func flattenCubic(p0, c1, c2, p3 core.Point, steps int) []core.Point {
	pts := make([]core.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		pts = append(pts, EvalCubic(p0, c1, c2, p3, float64(i)/float64(steps)))
	}
	return pts
}
