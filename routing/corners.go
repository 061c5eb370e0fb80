package routing

import (
	"math"

	"connroute/core"
	"connroute/geometry"
	"connroute/pathgeom"
)

// CornerRadius returns the rounding radius for a bend joining segments of
// length a and b. It never exceeds RadiusRatio of either segment, so two
// corners sharing a segment cannot overlap.
func CornerRadius(cfg Config, a, b float64) float64 {
	return math.Min(cfg.BaseRadius, cfg.RadiusRatio*math.Min(a, b))
}

// Round converts a polyline into path geometry with rounded bends. Bends
// whose radius falls under MinRadius stay sharp, as do reversals.
func Round(cfg Config, pts []core.Point) pathgeom.Geometry {
	var g pathgeom.Geometry
	if len(pts) == 0 {
		return g
	}

	g.MoveTo(pts[0])
	for i := 1; i < len(pts)-1; i++ {
		prev, cur, next := pts[i-1], pts[i], pts[i+1]
		in, out := cur.Sub(prev), next.Sub(cur)
		turn := geometry.Cross(in, out)
		r := CornerRadius(cfg, in.Len(), out.Len())
		if r < cfg.MinRadius || math.Abs(turn) < geometry.Epsilon {
			g.LineTo(cur)
			continue
		}
		g.LineTo(cur.Sub(geometry.Unit(in).Scale(r)))
		g.ArcTo(r, turn > 0, cur.Add(geometry.Unit(out).Scale(r)))
	}
	if len(pts) > 1 {
		g.LineTo(pts[len(pts)-1])
	}
	return g
}
