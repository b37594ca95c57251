// Package geom provides the 2D value types used by layout and contour tracing.
//
// # Types
//
//   - [Vec2]: a point or direction in the plane
//   - [Circle]: a disk given by its center and radius
//   - [Arc]: a circular arc segment of a contour
//
// All types are immutable values. Every operation returns a fresh value, so
// geometry can be shared freely between goroutines.
//
// # Angles
//
// Two angle conventions are used. [Vec2.Angle] measures the counter-clockwise
// (in y-up terms) angle from one vector to another in [0, 2π) and drives
// the ordering decisions of the contour sweep. [Arc] angles are measured from
// [Up] with positive angles turning towards +x, which matches how ring
// segments are emitted for SVG (y-down) output.
//
// # Degenerate Input
//
// [Circle.IntersectionPoints] reports ok == false instead of returning NaN
// coordinates when both centers coincide. Callers are expected to skip such
// pairs.
package geom
