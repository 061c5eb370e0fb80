// Package scene holds the document the routing engine works on: shapes,
// the connectors between them, and the layout computed from both.
package scene

import (
	"errors"

	"connroute/core"
)

// ErrShapeNotFound is returned when a connector names a missing shape.
var ErrShapeNotFound = errors.New("shape not found")

// Connector is an edge between two shapes, a shape and a free point, or two
// free points. Absolute coordinates only count for unattached ends.
type Connector struct {
	ID       string        `json:"id,omitempty" msgpack:"id" validate:"required"`
	FromID   string        `json:"fromId,omitempty" msgpack:"from_id,omitempty"`
	ToID     string        `json:"toId,omitempty" msgpack:"to_id,omitempty"`
	X        float64       `json:"x,omitempty" msgpack:"x,omitempty" validate:"finite"`
	Y        float64       `json:"y,omitempty" msgpack:"y,omitempty" validate:"finite"`
	EndX     float64       `json:"endX,omitempty" msgpack:"end_x,omitempty" validate:"finite"`
	EndY     float64       `json:"endY,omitempty" msgpack:"end_y,omitempty" validate:"finite"`
	FromPort core.PortID   `json:"fromPort,omitempty" msgpack:"from_port,omitempty" validate:"omitempty,port_id"`
	ToPort   core.PortID   `json:"toPort,omitempty" msgpack:"to_port,omitempty" validate:"omitempty,port_id"`
	LineType core.LineType `json:"lineType" msgpack:"line_type" validate:"line_type"`
	OffsetX  float64       `json:"offsetX,omitempty" msgpack:"offset_x,omitempty" validate:"finite"`
	OffsetY  float64       `json:"offsetY,omitempty" msgpack:"offset_y,omitempty" validate:"finite"`
	// LabelPosition is the parametric position of the label, 0.5 when unset.
	LabelPosition *float64 `json:"labelPosition,omitempty" msgpack:"label_position,omitempty" validate:"omitempty,gte=0,lte=1"`
	Label         string   `json:"label,omitempty" msgpack:"label,omitempty"`
}

// Offset returns the manual displacement as a point.
func (c Connector) Offset() core.Point {
	return core.Pt(c.OffsetX, c.OffsetY)
}

// SetOffset stores a manual displacement.
func (c *Connector) SetOffset(p core.Point) {
	c.OffsetX, c.OffsetY = p.X, p.Y
}

// Start returns the stored start coordinates.
func (c Connector) Start() core.Point {
	return core.Pt(c.X, c.Y)
}

// End returns the stored end coordinates.
func (c Connector) End() core.Point {
	return core.Pt(c.EndX, c.EndY)
}

// Metadata contains optional scene metadata.
type Metadata struct {
	Name    string `json:"name,omitempty" msgpack:"name,omitempty"`
	Created string `json:"created,omitempty" msgpack:"created,omitempty"`
	Version string `json:"version,omitempty" msgpack:"version,omitempty"`
}

// Scene is a set of shapes and connectors.
type Scene struct {
	Shapes     []core.Shape `json:"shapes" msgpack:"shapes" validate:"dive"`
	Connectors []Connector  `json:"connectors" msgpack:"connectors" validate:"dive"`
	Metadata   Metadata     `json:"metadata,omitempty" msgpack:"metadata"`
}

// Clone returns a deep copy of the scene. Routing reads from a clone so both
// ends of every connector come from the same snapshot.
func (s *Scene) Clone() *Scene {
	if s == nil {
		return nil
	}

	clone := &Scene{
		Shapes:     make([]core.Shape, len(s.Shapes)),
		Connectors: make([]Connector, len(s.Connectors)),
		Metadata:   s.Metadata,
	}
	copy(clone.Shapes, s.Shapes)
	for i, c := range s.Connectors {
		if c.LabelPosition != nil {
			pos := *c.LabelPosition
			c.LabelPosition = &pos
		}
		clone.Connectors[i] = c
	}
	return clone
}

// Shape returns the shape with the given id.
func (s *Scene) Shape(id string) (core.Shape, bool) {
	if i := s.shapeIndex(id); i >= 0 {
		return s.Shapes[i], true
	}
	return core.Shape{}, false
}

// ShapeRef returns a pointer to the shape with the given id for in-place
// edits, or nil.
func (s *Scene) ShapeRef(id string) *core.Shape {
	if i := s.shapeIndex(id); i >= 0 {
		return &s.Shapes[i]
	}
	return nil
}

func (s *Scene) shapeIndex(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.Shapes {
		if s.Shapes[i].ID == id {
			return i
		}
	}
	return -1
}

// Connector returns a pointer to the connector with the given id, or nil.
func (s *Scene) Connector(id string) *Connector {
	for i := range s.Connectors {
		if s.Connectors[i].ID == id {
			return &s.Connectors[i]
		}
	}
	return nil
}
