package contour

import (
	"fmt"
	"math"

	"github.com/matzehuels/bubbletreemap/pkg/errors"
	"github.com/matzehuels/bubbletreemap/pkg/geom"
)

// Epsilon is the angular and positional tolerance of the boundary walk.
const Epsilon = 1e-5

// ErrRingNotClosed is returned when the boundary walk does not return to
// its first vertex within the possible number of vertices.
var ErrRingNotClosed = errors.New(errors.ErrCodeDegenerateGeometry, "contour ring did not close")

// Vertex is one step of the boundary walk: the walk arrived on Circle at
// Point, where Circle is the input circle with index Index.
type Vertex struct {
	Circle geom.Circle
	Point  geom.Vec2
	Index  int
}

// Contour is the outline of one cluster.
type Contour struct {
	Rings   [][]Vertex // One closed walk per connected part
	Circles []geom.Arc // Arcs along the input circles
	Fillets []geom.Arc // Rounding arcs at the ring vertices
}

// Arcs returns circle arcs followed by fillets.
func (c Contour) Arcs() []geom.Arc {
	out := make([]geom.Arc, 0, len(c.Circles)+len(c.Fillets))
	out = append(out, c.Circles...)
	return append(out, c.Fillets...)
}

// Trace outlines circles with fillets of radius curvature. The circles
// must already include their contour padding.
func Trace(circles []geom.Circle, curvature float64) (Contour, error) {
	var out Contour
	switch len(circles) {
	case 0:
		return out, nil
	case 1:
		out.Circles = []geom.Arc{geom.FullCircle(circles[0])}
		return out, nil
	}

	enlarged := make([]geom.Circle, len(circles))
	for i, c := range circles {
		if !c.Center.IsFinite() || math.IsNaN(c.Radius) {
			return out, errors.New(errors.ErrCodeDegenerateGeometry, "circle %d is not finite", i)
		}
		enlarged[i] = c.Inflate(curvature)
	}

	for _, part := range components(enlarged) {
		start := leftmost(enlarged, part)
		if hidden(enlarged, start) {
			continue
		}
		ring, err := walk(circles, enlarged, start)
		if err != nil {
			return out, err
		}
		if len(ring) == 0 {
			for _, i := range part {
				if !hidden(enlarged, i) {
					out.Circles = append(out.Circles, geom.FullCircle(circles[i]))
				}
			}
			continue
		}
		out.Rings = append(out.Rings, ring)
		out.Circles = append(out.Circles, circleArcs(ring)...)
		out.Fillets = append(out.Fillets, fillets(ring, curvature)...)
	}
	return out, nil
}

// walk follows the boundary clockwise from circle start. An empty ring
// means start crosses no other circle.
func walk(circles, enlarged []geom.Circle, start int) ([]Vertex, error) {
	var ring []Vertex
	limit := len(enlarged)*(len(enlarged)-1) + 1
	index := start
	direction := geom.Left
	for {
		next, point, ok := nextIntersection(enlarged, index, direction)
		if !ok {
			return ring, nil
		}
		index = next
		circle := circles[index]
		direction = point.Sub(circle.Center)

		if len(ring) > 0 && index == ring[0].Index && point.Distance(ring[0].Point) < Epsilon {
			return ring, nil
		}
		if len(ring) >= limit {
			return nil, fmt.Errorf("after %d vertices: %w", len(ring), ErrRingNotClosed)
		}
		ring = append(ring, Vertex{Circle: circle, Point: point, Index: index})
	}
}

// nextIntersection returns the intersection point on circle current with
// the smallest positive angle from direction, and the circle it crosses.
func nextIntersection(circles []geom.Circle, current int, direction geom.Vec2) (int, geom.Vec2, bool) {
	cur := circles[current]
	best, bestAngle := -1, 7.0
	var bestPoint geom.Vec2
	for i, c := range circles {
		if i == current || !c.Intersects(cur) {
			continue
		}
		p, q, ok := c.IntersectionPoints(cur)
		if !ok {
			continue
		}
		for _, pt := range [2]geom.Vec2{p, q} {
			angle := direction.Angle(pt.Sub(cur.Center))
			if angle > Epsilon && angle < bestAngle {
				best, bestAngle, bestPoint = i, angle, pt
			}
		}
	}
	return best, bestPoint, best >= 0
}

func circleArcs(ring []Vertex) []geom.Arc {
	arcs := make([]geom.Arc, len(ring))
	for i, v := range ring {
		next := ring[(i+1)%len(ring)].Point
		arcs[i] = geom.Arc{
			Center:     v.Circle.Center,
			StartAngle: geom.ArcAngle(v.Point.Sub(v.Circle.Center)),
			EndAngle:   geom.ArcAngle(next.Sub(v.Circle.Center)),
			Radius:     v.Circle.Radius,
		}
	}
	return arcs
}

// fillets rounds each vertex, sweeping from the direction of the current
// circle's centre to the direction of the previous circle's centre.
func fillets(ring []Vertex, curvature float64) []geom.Arc {
	arcs := make([]geom.Arc, len(ring))
	for i, v := range ring {
		prev := ring[(i+len(ring)-1)%len(ring)].Circle
		arcs[i] = geom.Arc{
			Center:     v.Point,
			StartAngle: geom.ArcAngle(v.Circle.Center.Sub(v.Point)),
			EndAngle:   geom.ArcAngle(prev.Center.Sub(v.Point)),
			Radius:     curvature,
		}
	}
	return arcs
}

// components groups circle indices by boundary crossings, in order of
// their smallest index.
func components(circles []geom.Circle) [][]int {
	parent := make([]int, len(circles))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	for i := range circles {
		for j := i + 1; j < len(circles); j++ {
			if circles[i].Intersects(circles[j]) {
				if a, b := find(i), find(j); a != b {
					parent[max(a, b)] = min(a, b)
				}
			}
		}
	}

	var order []int
	groups := map[int][]int{}
	for i := range circles {
		r := find(i)
		if _, ok := groups[r]; !ok {
			order = append(order, r)
		}
		groups[r] = append(groups[r], i)
	}
	out := make([][]int, len(order))
	for k, r := range order {
		out[k] = groups[r]
	}
	return out
}

func leftmost(circles []geom.Circle, part []int) int {
	best := part[0]
	for _, i := range part[1:] {
		if circles[i].Leftmost() < circles[best].Leftmost() {
			best = i
		}
	}
	return best
}

// hidden reports whether circle i lies inside another circle. Of two equal
// circles the later one is hidden.
func hidden(circles []geom.Circle, i int) bool {
	for j, c := range circles {
		if j == i || !c.Contains(circles[i]) {
			continue
		}
		if !circles[i].Contains(c) || j < i {
			return true
		}
	}
	return false
}
