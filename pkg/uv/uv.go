// Package uv holds the atlas UV rectangle type and the transforms that adapt it
// to the face conventions of different mesh layouts.
package uv

import (
	gomath "math"

	"github.com/Faultbox/voxeltex/pkg/math"
)

// Corner indices of a Quad.
//
//	0 -- 1
//	|    |
//	3 -- 2
const (
	Top    = 0
	Right  = 1
	Bottom = 2
	Left   = 3
)

// Quad is a 4-corner UV rectangle in atlas-relative [0,1] space, ordered
// top, right, bottom, left (clockwise from the top-left corner).
type Quad [4]math.Vec2

// FromPixels builds the quad for a pixel rectangle inside a surface of size w×h.
func FromPixels(x, y, rw, rh, w, h int) Quad {
	fw, fh := float32(w), float32(h)
	x0, y0 := float32(x)/fw, float32(y)/fh
	x1, y1 := float32(x+rw)/fw, float32(y+rh)/fh
	return Quad{
		{X: x0, Y: y0},
		{X: x1, Y: y0},
		{X: x1, Y: y1},
		{X: x0, Y: y1},
	}
}

// Rotate shifts the cyclic corner order by (4 - ceil(degrees/90)) mod 4 steps.
// degrees is expected to be a multiple of 90; 0 returns q unchanged.
func Rotate(q Quad, degrees int) Quad {
	if degrees == 0 {
		return q
	}
	steps := int(gomath.Ceil(float64(degrees) / 90))
	i := ((4-steps)%4 + 4) % 4

	var out Quad
	for j := 0; j < 4; j++ {
		out[j] = q[i]
		i = (i + 1) % 4
	}
	return out
}

// Invert reverses the corner order (top<->left, right<->bottom), mapping a
// vertically flipped face winding back onto the atlas rectangle.
func Invert(q Quad) Quad {
	return Quad{q[3], q[2], q[1], q[0]}
}

// Within01 reports whether every corner lies in [0,1]².
func (q Quad) Within01() bool {
	for _, c := range q {
		if !c.In01() {
			return false
		}
	}
	return true
}

// Area returns the absolute area enclosed by the quad (shoelace formula).
func (q Quad) Area() float32 {
	var sum float32
	for i := 0; i < 4; i++ {
		sum += q[i].Cross(q[(i+1)%4])
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}

// Origin returns the top corner, which the tile shader uses as the tile offset.
func (q Quad) Origin() math.Vec2 {
	return q[Top]
}
