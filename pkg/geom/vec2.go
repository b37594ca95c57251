package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec2 is a point or direction in the plane.
type Vec2 r2.Vec

// Up is the reference direction for arc angles (towards -y).
var Up = Vec2{X: 0, Y: -1}

// Left is the initial sweep direction of the contour tracer.
var Left = Vec2{X: -1, Y: 0}

// V returns the vector ⟨x, y⟩.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) String() string {
	return fmt.Sprintf("⟨%g, %g⟩", v.X, v.Y)
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2(r2.Add(r2.Vec(v), r2.Vec(o)))
}

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2(r2.Sub(r2.Vec(v), r2.Vec(o)))
}

// Scale returns v multiplied by f.
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2(r2.Scale(f, r2.Vec(v)))
}

// Magnitude returns the euclidean length of v.
func (v Vec2) Magnitude() float64 {
	return r2.Norm(r2.Vec(v))
}

// Distance returns the euclidean distance between v and o.
func (v Vec2) Distance(o Vec2) float64 {
	return v.Sub(o).Magnitude()
}

// Unit returns v scaled to length 1. The zero vector is returned unchanged.
func (v Vec2) Unit() Vec2 {
	if v.X == 0 && v.Y == 0 {
		return v
	}
	return Vec2(r2.Unit(r2.Vec(v)))
}

// Angle returns the angle from v to o in [0, 2π), computed as the difference
// of their atan2 headings.
func (v Vec2) Angle(o Vec2) float64 {
	a := math.Atan2(o.Y, o.X) - math.Atan2(v.Y, v.X)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// IsFinite reports whether both coordinates are finite numbers.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
