// Package core contains the fundamental types shared by the connector routing engine.
package core

import (
	"fmt"
	"math"
)

// Point represents a 2D coordinate in diagram space. Y grows downward.
type Point struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p multiplied by k.
func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Len returns the euclidean length of p treated as a vector.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return q.Sub(p).Len()
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Shape is an axis-aligned rectangle supplied by the editor's document model.
type Shape struct {
	ID     string  `json:"id" msgpack:"id" validate:"required"`
	X      float64 `json:"x" msgpack:"x" validate:"finite"`
	Y      float64 `json:"y" msgpack:"y" validate:"finite"`
	Width  float64 `json:"width" msgpack:"width" validate:"finite,gte=0"`
	Height float64 `json:"height" msgpack:"height" validate:"finite,gte=0"`
}

// Center returns the center point of the shape.
func (s Shape) Center() Point {
	return Point{
		X: s.X + s.Width/2,
		Y: s.Y + s.Height/2,
	}
}

// Contains checks if a point is inside the shape, edges included.
func (s Shape) Contains(p Point) bool {
	return p.X >= s.X && p.X <= s.X+s.Width &&
		p.Y >= s.Y && p.Y <= s.Y+s.Height
}

// Bounds returns the rectangle of the shape.
func (s Shape) Bounds() Bounds {
	return Bounds{
		Min: Point{X: s.X, Y: s.Y},
		Max: Point{X: s.X + s.Width, Y: s.Y + s.Height},
	}
}

// Bounds represents a rectangular area.
type Bounds struct {
	Min, Max Point
}

// Width returns the width of the bounds.
func (b Bounds) Width() float64 {
	return b.Max.X - b.Min.X
}

// Height returns the height of the bounds.
func (b Bounds) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// Contains checks if a point is within the bounds.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Union returns the smallest bounds covering b and o.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		Min: Point{X: math.Min(b.Min.X, o.Min.X), Y: math.Min(b.Min.Y, o.Min.Y)},
		Max: Point{X: math.Max(b.Max.X, o.Max.X), Y: math.Max(b.Max.Y, o.Max.Y)},
	}
}

// Extend returns b grown to include p.
func (b Bounds) Extend(p Point) Bounds {
	return b.Union(Bounds{Min: p, Max: p})
}
