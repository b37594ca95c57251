package layout

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/matzehuels/bubbletreemap/pkg/geom"
)

// Centroid returns the area-weighted centroid of circles. When every circle
// has zero area it returns the plain average and ok is false. An empty
// input yields the zero vector.
func Centroid(circles []geom.Circle) (c geom.Vec2, ok bool) {
	if len(circles) == 0 {
		return geom.Vec2{}, false
	}
	xs := make([]float64, len(circles))
	ys := make([]float64, len(circles))
	ws := make([]float64, len(circles))
	total := 0.0
	for i, ci := range circles {
		xs[i], ys[i] = ci.Center.X, ci.Center.Y
		ws[i] = ci.Area()
		total += ws[i]
	}
	if total <= 0 || math.IsInf(total, 0) || math.IsNaN(total) {
		return geom.V(stat.Mean(xs, nil), stat.Mean(ys, nil)), false
	}
	return geom.V(stat.Mean(xs, ws), stat.Mean(ys, ws)), true
}

// dedupe returns the distinct keys in first-seen order.
func dedupe[K comparable](keys []K) []K {
	seen := make(map[K]bool, len(keys))
	var out []K
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
