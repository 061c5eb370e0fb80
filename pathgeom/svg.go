package pathgeom

import (
	"math"
	"strconv"
	"strings"
)

// SVG serializes the geometry as SVG path data. Coordinates are rounded to
// two decimals.
func (g Geometry) SVG() string {
	var sb strings.Builder
	for i, c := range g.Cmds {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch c.Op {
		case MoveTo:
			sb.WriteString("M ")
			writeNums(&sb, c.To.X, c.To.Y)
		case LineTo:
			sb.WriteString("L ")
			writeNums(&sb, c.To.X, c.To.Y)
		case ArcTo:
			sweep := 0.0
			if c.Sweep {
				sweep = 1
			}
			sb.WriteString("A ")
			writeNums(&sb, c.Radius, c.Radius, 0, 0, sweep, c.To.X, c.To.Y)
		case CubicTo:
			sb.WriteString("C ")
			writeNums(&sb, c.C1.X, c.C1.Y, c.C2.X, c.C2.Y, c.To.X, c.To.Y)
		}
	}
	return sb.String()
}

func writeNums(sb *strings.Builder, vs ...float64) {
	for i, v := range vs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(FormatNum(v))
	}
}

// FormatNum formats a coordinate the way path data does.
func FormatNum(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
