package core

import "fmt"

// PortID names one of the 16 connection points of a shape.
type PortID string

const (
	PortNone PortID = ""

	PortTop    PortID = "top"
	PortRight  PortID = "right"
	PortBottom PortID = "bottom"
	PortLeft   PortID = "left"

	PortTopStart    PortID = "top-start"
	PortTopEnd      PortID = "top-end"
	PortRightStart  PortID = "right-start"
	PortRightEnd    PortID = "right-end"
	PortBottomStart PortID = "bottom-start"
	PortBottomEnd   PortID = "bottom-end"
	PortLeftStart   PortID = "left-start"
	PortLeftEnd     PortID = "left-end"

	PortTopLeft     PortID = "top-left"
	PortTopRight    PortID = "top-right"
	PortBottomRight PortID = "bottom-right"
	PortBottomLeft  PortID = "bottom-left"
)

// PortIDs lists every port id in port model order.
var PortIDs = [16]PortID{
	PortTop, PortRight, PortBottom, PortLeft,
	PortTopStart, PortTopEnd, PortRightStart, PortRightEnd,
	PortBottomStart, PortBottomEnd, PortLeftStart, PortLeftEnd,
	PortTopLeft, PortTopRight, PortBottomRight, PortBottomLeft,
}

// Valid reports whether id is one of the 16 port names.
func (id PortID) Valid() bool {
	for _, known := range PortIDs {
		if id == known {
			return true
		}
	}
	return false
}

// String returns the port name.
func (id PortID) String() string {
	return string(id)
}

// Direction returns the approach direction of ports with this id.
// Corners follow the top or bottom side they are named after.
func (id PortID) Direction() Direction {
	switch id {
	case PortTop, PortTopStart, PortTopEnd, PortTopLeft, PortTopRight:
		return Up
	case PortBottom, PortBottomStart, PortBottomEnd, PortBottomLeft, PortBottomRight:
		return Down
	case PortLeft, PortLeftStart, PortLeftEnd:
		return Left
	case PortRight, PortRightStart, PortRightEnd:
		return Right
	default:
		return None
	}
}

// Mirror returns the port id on the opposite side after a 180° rotation.
func (id PortID) Mirror() PortID {
	switch id {
	case PortTop:
		return PortBottom
	case PortBottom:
		return PortTop
	case PortLeft:
		return PortRight
	case PortRight:
		return PortLeft
	case PortTopStart:
		return PortBottomEnd
	case PortTopEnd:
		return PortBottomStart
	case PortBottomStart:
		return PortTopEnd
	case PortBottomEnd:
		return PortTopStart
	case PortLeftStart:
		return PortRightEnd
	case PortLeftEnd:
		return PortRightStart
	case PortRightStart:
		return PortLeftEnd
	case PortRightEnd:
		return PortLeftStart
	case PortTopLeft:
		return PortBottomRight
	case PortBottomRight:
		return PortTopLeft
	case PortTopRight:
		return PortBottomLeft
	case PortBottomLeft:
		return PortTopRight
	default:
		return id
	}
}

// ParsePortID validates a port name. The empty string parses to PortNone.
func ParsePortID(s string) (PortID, error) {
	id := PortID(s)
	if id == PortNone || id.Valid() {
		return id, nil
	}
	return PortNone, fmt.Errorf("unknown port id: %q", s)
}

// Port is a directional anchor on a shape's boundary.
type Port struct {
	X   float64   `json:"x"`
	Y   float64   `json:"y"`
	Dir Direction `json:"dir"`
	ID  PortID    `json:"id"`
}

// Point returns the position of the port.
func (p Port) Point() Point {
	return Point{X: p.X, Y: p.Y}
}
