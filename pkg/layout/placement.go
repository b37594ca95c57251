package layout

import (
	"github.com/matzehuels/bubbletreemap/pkg/geom"
	"github.com/matzehuels/bubbletreemap/pkg/hierarchy"
)

// Placement stores the circle of every node, indexed by node ID.
//
// The packer writes the initial placement and the engine refines it in
// place. Readers such as the contour tracer treat it as read-only.
type Placement struct {
	Centers []geom.Vec2 `json:"centers"`
	Radii   []float64   `json:"radii"`
}

// NewPlacement allocates a placement for n nodes.
func NewPlacement(n int) *Placement {
	return &Placement{
		Centers: make([]geom.Vec2, n),
		Radii:   make([]float64, n),
	}
}

// Len returns the number of nodes in the placement.
func (p *Placement) Len() int { return len(p.Centers) }

// Circle returns the circle of node id.
func (p *Placement) Circle(id int) geom.Circle {
	return geom.Circle{Center: p.Centers[id], Radius: p.Radii[id]}
}

// Set stores the circle of node id.
func (p *Placement) Set(id int, c geom.Circle) {
	p.Centers[id] = c.Center
	p.Radii[id] = c.Radius
}

// Clone returns a deep copy.
func (p *Placement) Clone() *Placement {
	out := NewPlacement(p.Len())
	copy(out.Centers, p.Centers)
	copy(out.Radii, p.Radii)
	return out
}

// Fits reports whether the placement covers every node of tree.
func (p *Placement) Fits(tree *hierarchy.Tree) bool {
	return p != nil && len(p.Centers) == tree.Len() && len(p.Radii) == tree.Len()
}
