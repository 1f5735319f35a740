// Package geom holds the small 2D vocabulary shared by the simulation and
// the renderers: points, vectors and axis-aligned rectangles. Coordinates
// are float32 in canvas pixels, y growing downward.
package geom

import "math"

// Point is a position on the canvas.
type Point struct {
	X float32
	Y float32
}

// Add returns the point translated by v.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// DistSq returns the squared distance between p and q.
func (p Point) DistSq(q Point) float32 {
	dx := q.X - p.X
	dy := q.Y - p.Y
	return dx*dx + dy*dy
}

// Vector is a displacement, velocity or acceleration.
type Vector struct {
	X float32
	Y float32
}

// Add returns the component-wise sum of v and w.
func (v Vector) Add(w Vector) Vector {
	return Vector{X: v.X + w.X, Y: v.Y + w.Y}
}

// Rotate returns v rotated by deg degrees, counterclockwise in the
// canvas coordinate system (y down, so it appears clockwise on screen).
func (v Vector) Rotate(deg float32) Vector {
	rad := float64(deg) * math.Pi / 180.0
	sin, cos := math.Sincos(rad)
	return Vector{
		X: v.X*float32(cos) - v.Y*float32(sin),
		Y: v.X*float32(sin) + v.Y*float32(cos),
	}
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// Contains reports whether p lies inside r, boundary included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}
