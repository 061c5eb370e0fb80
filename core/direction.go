package core

import (
	"fmt"
	"strings"
)

// Direction is the approach direction a connector travels when leaving or
// entering a port. None means the direction is unknown.
type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

// String returns the string representation of a Direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Opposite returns the opposite direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return d
	}
}

// Vector returns the unit vector of the direction in screen coordinates.
func (d Direction) Vector() Point {
	switch d {
	case Up:
		return Point{Y: -1}
	case Down:
		return Point{Y: 1}
	case Left:
		return Point{X: -1}
	case Right:
		return Point{X: 1}
	default:
		return Point{}
	}
}

// IsVertical reports whether d is Up or Down.
func (d Direction) IsVertical() bool {
	return d == Up || d == Down
}

// IsHorizontal reports whether d is Left or Right.
func (d Direction) IsHorizontal() bool {
	return d == Left || d == Right
}

// Known reports whether d carries a direction.
func (d Direction) Known() bool {
	return d != None
}

// ParseDirection accepts direction names as well as the side names a port
// lives on ("top" means Up, "bottom" means Down).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "up", "top", "north":
		return Up, nil
	case "down", "bottom", "south":
		return Down, nil
	case "left", "west":
		return Left, nil
	case "right", "east":
		return Right, nil
	default:
		return None, fmt.Errorf("unknown direction: %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	parsed, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
