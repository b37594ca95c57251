package pack

import (
	"github.com/matzehuels/bubbletreemap/pkg/geom"
	"github.com/matzehuels/bubbletreemap/pkg/hierarchy"
	"github.com/matzehuels/bubbletreemap/pkg/layout"
)

// Packer produces an initial, overlap-free placement of every node.
type Packer interface {
	Pack(tree *hierarchy.Tree, width, height float64) *layout.Placement
}

// Enclosure is the default Packer.
type Enclosure struct {
	// Padding is added around siblings while they are packed, leaving a gap
	// of Padding between neighbours. Zero packs circles tangent.
	Padding float64
}

var _ Packer = Enclosure{}

// Pack places the tree with its root at (width/2, height/2).
func (e Enclosure) Pack(tree *hierarchy.Tree, width, height float64) *layout.Placement {
	nodes := tree.Nodes()
	circles := make([]circle, len(nodes))
	for _, n := range nodes {
		if n.IsLeaf() {
			circles[n.ID].r = max(0, n.Radius)
		}
	}

	random := lcg()
	// Children before parents: reverse preorder visits every child first.
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if n.IsLeaf() {
			continue
		}
		siblings := make([]*circle, len(n.Children))
		for j, c := range n.Children {
			siblings[j] = &circles[c.ID]
		}
		pad := e.Padding / 2
		if pad > 0 {
			for _, s := range siblings {
				s.r += pad
			}
		}
		r := packSiblings(siblings, random)
		if pad > 0 {
			for _, s := range siblings {
				s.r -= pad
			}
		}
		circles[n.ID].r = r + pad
	}

	p := layout.NewPlacement(len(nodes))
	root := tree.Root
	circles[root.ID].x, circles[root.ID].y = width/2, height/2
	for _, n := range nodes {
		c := &circles[n.ID]
		if n.Parent != nil {
			pc := circles[n.Parent.ID]
			c.x += pc.x
			c.y += pc.y
		}
		p.Set(n.ID, geom.C(c.x, c.y, c.r))
	}
	return p
}

// Siblings packs circles tightly around the origin and returns the radius of
// their enclosing circle. Centers are written back into the slice.
func Siblings(cs []geom.Circle) float64 {
	ptrs := make([]*circle, len(cs))
	store := make([]circle, len(cs))
	for i, c := range cs {
		store[i] = circle{r: c.Radius}
		ptrs[i] = &store[i]
	}
	r := packSiblings(ptrs, lcg())
	for i := range cs {
		cs[i].Center = geom.V(store[i].x, store[i].y)
	}
	return r
}

// Enclose returns the smallest circle enclosing cs.
func Enclose(cs []geom.Circle) geom.Circle {
	if len(cs) == 0 {
		return geom.Circle{}
	}
	ptrs := make([]*circle, len(cs))
	for i, c := range cs {
		ptrs[i] = &circle{x: c.Center.X, y: c.Center.Y, r: c.Radius}
	}
	e := enclose(ptrs, lcg())
	return geom.C(e.x, e.y, e.r)
}
