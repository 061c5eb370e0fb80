package core

import (
	"fmt"
	"strings"
)

// LineType selects the path style of a connector.
type LineType int

const (
	Straight LineType = iota
	Step
	Curve
)

// String returns the string representation of a LineType.
func (l LineType) String() string {
	switch l {
	case Straight:
		return "straight"
	case Step:
		return "step"
	case Curve:
		return "curve"
	default:
		return "unknown"
	}
}

// ParseLineType converts a name to a LineType. Empty means Straight.
func ParseLineType(s string) (LineType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "straight", "line":
		return Straight, nil
	case "step", "orthogonal", "elbow":
		return Step, nil
	case "curve", "bezier", "curved":
		return Curve, nil
	default:
		return Straight, fmt.Errorf("unknown line type: %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l LineType) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *LineType) UnmarshalText(b []byte) error {
	parsed, err := ParseLineType(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Next cycles through the line types.
func (l LineType) Next() LineType {
	return (l + 1) % 3
}

// Mode is the layout of a 4-segment step path, named by the orientation of
// its first segment.
type Mode int

const (
	// ModeAuto lets the synthesizer pick the layout.
	ModeAuto Mode = iota
	// ModeHorizontalFirst lays out segments H,V,H,V.
	ModeHorizontalFirst
	// ModeVerticalFirst lays out segments V,H,V,H.
	ModeVerticalFirst
)

// String returns the string representation of a Mode.
func (m Mode) String() string {
	switch m {
	case ModeHorizontalFirst:
		return "horizontal-first"
	case ModeVerticalFirst:
		return "vertical-first"
	default:
		return "auto"
	}
}
