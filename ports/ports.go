// Package ports enumerates the connection points of a shape and picks the
// pair of ports a connector between two shapes should use.
package ports

import (
	"math"

	"connroute/core"
	"connroute/geometry"
)

// Count is the number of ports on every shape.
const Count = 16

// All returns the 16 ports of a shape in fixed order: the four edge
// centers (top, right, bottom, left), the eight edge subdivisions, then the
// four corners. Callers rely on indices 0-3 being the center ports.
func All(s core.Shape) [Count]core.Port {
	var out [Count]core.Port
	for i, id := range core.PortIDs {
		out[i] = portAt(s, id)
	}
	return out
}

// Find returns the port with the given id.
func Find(s core.Shape, id core.PortID) (core.Port, bool) {
	if !id.Valid() {
		return core.Port{}, false
	}
	return portAt(s, id), true
}

// Nearest returns the port closest to p. Ties keep the earlier port in
// model order, so center ports win over subdivisions and corners.
func Nearest(s core.Shape, p core.Point) core.Port {
	all := All(s)
	best := all[0]
	bestDist := math.Inf(1)
	for _, port := range all {
		d := geometry.DistSq(port.Point(), p)
		if d < bestDist {
			best, bestDist = port, d
		}
	}
	return best
}

// portAt computes the position of a port from the current rectangle.
// start/end sit at 25% and 75% of an edge, measured left-to-right on
// horizontal edges and top-to-bottom on vertical edges.
func portAt(s core.Shape, id core.PortID) core.Port {
	x, y, w, h := s.X, s.Y, s.Width, s.Height
	var p core.Point
	switch id {
	case core.PortTop:
		p = core.Pt(x+w/2, y)
	case core.PortRight:
		p = core.Pt(x+w, y+h/2)
	case core.PortBottom:
		p = core.Pt(x+w/2, y+h)
	case core.PortLeft:
		p = core.Pt(x, y+h/2)
	case core.PortTopStart:
		p = core.Pt(x+w*0.25, y)
	case core.PortTopEnd:
		p = core.Pt(x+w*0.75, y)
	case core.PortRightStart:
		p = core.Pt(x+w, y+h*0.25)
	case core.PortRightEnd:
		p = core.Pt(x+w, y+h*0.75)
	case core.PortBottomStart:
		p = core.Pt(x+w*0.25, y+h)
	case core.PortBottomEnd:
		p = core.Pt(x+w*0.75, y+h)
	case core.PortLeftStart:
		p = core.Pt(x, y+h*0.25)
	case core.PortLeftEnd:
		p = core.Pt(x, y+h*0.75)
	case core.PortTopLeft:
		p = core.Pt(x, y)
	case core.PortTopRight:
		p = core.Pt(x+w, y)
	case core.PortBottomRight:
		p = core.Pt(x+w, y+h)
	case core.PortBottomLeft:
		p = core.Pt(x, y+h)
	}
	return core.Port{X: p.X, Y: p.Y, Dir: id.Direction(), ID: id}
}
