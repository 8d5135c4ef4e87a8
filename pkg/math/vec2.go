// Package math provides the small vector types shared by the atlas, UV and mesh packages.
package math

import "math"

// Vec2 is a 2D vector, used for UV coordinates.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Cross returns the z component of the 3D cross product of v and other.
func (v Vec2) Cross(other Vec2) float32 {
	return v.X*other.Y - v.Y*other.X
}

// ApproxEqual reports whether both components differ by at most eps.
func (v Vec2) ApproxEqual(other Vec2, eps float32) bool {
	return math.Abs(float64(v.X-other.X)) <= float64(eps) &&
		math.Abs(float64(v.Y-other.Y)) <= float64(eps)
}

// In01 reports whether the point lies inside the unit square.
func (v Vec2) In01() bool {
	return v.X >= 0 && v.X <= 1 && v.Y >= 0 && v.Y <= 1
}
