package geom

import "math"

// Circle is a disk with a non-negative radius.
type Circle struct {
	Center Vec2
	Radius float64
}

// C returns the circle centered at (x, y) with radius r.
func C(x, y, r float64) Circle {
	return Circle{Center: V(x, y), Radius: r}
}

// Inflate returns c with its radius grown by dr.
func (c Circle) Inflate(dr float64) Circle {
	return Circle{Center: c.Center, Radius: c.Radius + dr}
}

// Leftmost returns the smallest x coordinate covered by c.
func (c Circle) Leftmost() float64 {
	return c.Center.X - c.Radius
}

// Area returns the area of c.
func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

// Intersects reports whether the boundaries of c and o cross or touch.
// Disjoint circles and circles nested inside one another do not intersect.
//
// See http://paulbourke.net/geometry/circlesphere/.
func (c Circle) Intersects(o Circle) bool {
	d := c.Center.Distance(o.Center)
	if d > c.Radius+o.Radius {
		return false
	}
	if d < math.Abs(c.Radius-o.Radius) {
		return false
	}
	return true
}

// Contains reports whether o lies entirely inside c.
func (c Circle) Contains(o Circle) bool {
	return c.Center.Distance(o.Center)+o.Radius <= c.Radius
}

// IntersectionPoints returns the two points where the boundaries of c and o
// cross. For tangent circles both points coincide. ok is false when the
// centers coincide, in which case the construction is undefined.
//
// The points are built from the chord midpoint p2 on the line between the
// centers, offset perpendicular to that line by the half chord h.
func (c Circle) IntersectionPoints(o Circle) (p, q Vec2, ok bool) {
	p0, p1 := c.Center, o.Center
	d := p0.Distance(p1)
	if d == 0 || math.IsNaN(d) {
		return Vec2{}, Vec2{}, false
	}

	a := (c.Radius*c.Radius - o.Radius*o.Radius + d*d) / (2 * d)
	h := math.Sqrt(math.Max(0, c.Radius*c.Radius-a*a))

	p2 := p1.Sub(p0).Scale(a / d).Add(p0)
	ox := h * (p1.Y - p0.Y) / d
	oy := h * (p1.X - p0.X) / d

	p = Vec2{X: p2.X + ox, Y: p2.Y - oy}
	q = Vec2{X: p2.X - ox, Y: p2.Y + oy}
	return p, q, true
}
