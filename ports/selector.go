package ports

import (
	"math"

	"connroute/core"
)

// pair is a (from, to) port id combination.
type pair struct {
	from, to core.PortID
}

var (
	below = pair{core.PortBottom, core.PortTop}
	above = pair{core.PortTop, core.PortBottom}
	right = pair{core.PortRight, core.PortLeft}
	left  = pair{core.PortLeft, core.PortRight}
)

// quadrant lists the pairs for a diagonal relationship. Each choice is an
// L-shape whose long leg arrives along the dominant axis, which keeps the
// connector from zig-zagging through an S.
type quadrant struct {
	vertical   pair // |dy| >= |dx|
	horizontal pair
}

var (
	downRight = quadrant{pair{core.PortRight, core.PortTop}, pair{core.PortBottom, core.PortLeft}}
	downLeft  = quadrant{pair{core.PortLeft, core.PortTop}, pair{core.PortBottom, core.PortRight}}
	upRight   = quadrant{pair{core.PortRight, core.PortBottom}, pair{core.PortTop, core.PortLeft}}
	upLeft    = quadrant{pair{core.PortLeft, core.PortBottom}, pair{core.PortTop, core.PortRight}}
)

// SelectBest picks the ports a connector from one shape to another should
// leave and enter by. It is a fixed decision table over the relative
// position of the shape centers, never a search.
func SelectBest(from, to core.Shape) (core.Port, core.Port) {
	p := choosePair(from, to)
	fp, _ := Find(from, p.from)
	tp, _ := Find(to, p.to)
	return fp, tp
}

// SelectTowardPoint picks the port of from facing a free point, treating
// the point as a shape of zero size.
func SelectTowardPoint(from core.Shape, target core.Point) core.Port {
	p := choosePair(from, core.Shape{X: target.X, Y: target.Y})
	fp, _ := Find(from, p.from)
	return fp
}

// SelectFromPoint picks the port of to facing a free start point.
func SelectFromPoint(origin core.Point, to core.Shape) core.Port {
	p := choosePair(core.Shape{X: origin.X, Y: origin.Y}, to)
	tp, _ := Find(to, p.to)
	return tp
}

// Resolve returns the ports to use for a connector, honouring ids that were
// pinned by an earlier render. Unset or unknown ids are selected afresh.
func Resolve(from, to core.Shape, fromID, toID core.PortID) (core.Port, core.Port) {
	bestFrom, bestTo := SelectBest(from, to)
	if fp, ok := Find(from, fromID); ok {
		bestFrom = fp
	}
	if tp, ok := Find(to, toID); ok {
		bestTo = tp
	}
	return bestFrom, bestTo
}

func choosePair(from, to core.Shape) pair {
	fc, tc := from.Center(), to.Center()
	dx := tc.X - fc.X
	dy := tc.Y - fc.Y
	absDx, absDy := math.Abs(dx), math.Abs(dy)

	// The half extents of both shapes form a dead zone: inside it the
	// shapes overlap on that axis and the target sits straight across.
	overlapX := absDx <= (from.Width+to.Width)/2
	overlapY := absDy <= (from.Height+to.Height)/2

	switch {
	case overlapX && !overlapY:
		return vertical(dy)
	case overlapY && !overlapX:
		return horizontal(dx)
	case overlapX && overlapY:
		if absDy >= absDx {
			return vertical(dy)
		}
		return horizontal(dx)
	}

	var q quadrant
	switch {
	case dx > 0 && dy > 0:
		q = downRight
	case dx < 0 && dy > 0:
		q = downLeft
	case dx > 0 && dy < 0:
		q = upRight
	default:
		q = upLeft
	}
	if absDy >= absDx {
		return q.vertical
	}
	return q.horizontal
}

func vertical(dy float64) pair {
	if dy < 0 {
		return above
	}
	return below
}

func horizontal(dx float64) pair {
	if dx < 0 {
		return left
	}
	return right
}
