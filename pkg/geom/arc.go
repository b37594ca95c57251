package geom

import "math"

// FullTurn is one revolution in radians.
const FullTurn = 2 * math.Pi

// Arc is a circular arc. Angles are measured from [Up], turning towards +x,
// and are evaluated modulo 2π.
type Arc struct {
	Center     Vec2
	StartAngle float64
	EndAngle   float64
	Radius     float64
}

// FullCircle returns an arc covering the whole boundary of c.
func FullCircle(c Circle) Arc {
	return Arc{Center: c.Center, StartAngle: 0, EndAngle: FullTurn, Radius: c.Radius}
}

// ArcAngle returns the angle of direction v measured from [Up].
func ArcAngle(v Vec2) float64 {
	return Up.Angle(v)
}

// Normalized returns the arc with StartAngle <= EndAngle. If the start lies
// after the end, a full turn is subtracted from the start so the arc sweeps
// the correctly oriented way.
func (a Arc) Normalized() Arc {
	if a.StartAngle > a.EndAngle {
		a.StartAngle -= FullTurn
	}
	return a
}

// Sweep returns the angular extent of the normalized arc.
func (a Arc) Sweep() float64 {
	n := a.Normalized()
	return n.EndAngle - n.StartAngle
}

// Point returns the point on the arc's circle at arc angle theta.
func (a Arc) Point(theta float64) Vec2 {
	return Vec2{
		X: a.Center.X + a.Radius*math.Sin(theta),
		Y: a.Center.Y - a.Radius*math.Cos(theta),
	}
}

// Start returns the first point of the arc.
func (a Arc) Start() Vec2 { return a.Point(a.StartAngle) }

// End returns the last point of the arc.
func (a Arc) End() Vec2 { return a.Point(a.EndAngle) }
