package hierarchy

// Node is one bubble of the hierarchy.
type Node struct {
	ID          int     // Preorder index, dense from 0
	Name        string  // Display label
	Value       float64 // Data value
	Radius      float64 // Circle radius before layout
	Uncertainty float64 // Extra margin around the subtree
	Depth       int     // Distance from the root
	Height      int     // Longest distance to a leaf below
	Parent      *Node
	Children    []*Node
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Walk visits n and its descendants in preorder.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Descendants returns n and all nodes below it in preorder.
func (n *Node) Descendants() []*Node {
	var out []*Node
	n.Walk(func(d *Node) { out = append(out, d) })
	return out
}

// Leaves returns the leaf descendants of n in preorder. A leaf returns
// itself.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.Walk(func(d *Node) {
		if d.IsLeaf() {
			out = append(out, d)
		}
	})
	return out
}

// Ancestors returns n followed by its parent chain up to the root.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for a := n; a != nil; a = a.Parent {
		out = append(out, a)
	}
	return out
}

// AncestorAt returns the ancestor of n at depth, or nil if depth is below
// n or negative. A node is its own ancestor at its own depth.
func (n *Node) AncestorAt(depth int) *Node {
	if depth < 0 || depth > n.Depth {
		return nil
	}
	a := n
	for a.Depth > depth {
		a = a.Parent
	}
	return a
}

// Tree is a validated hierarchy with nodes indexed by ID.
type Tree struct {
	Root  *Node
	nodes []*Node
}

// NewTree indexes root and computes depth, height and IDs. The caller
// keeps ownership of the nodes; NewTree only fills derived fields.
func NewTree(root *Node) *Tree {
	t := &Tree{Root: root}
	root.Parent = nil
	var index func(n *Node, depth int) int
	index = func(n *Node, depth int) int {
		n.ID = len(t.nodes)
		n.Depth = depth
		t.nodes = append(t.nodes, n)
		h := 0
		for _, c := range n.Children {
			c.Parent = n
			if ch := index(c, depth+1) + 1; ch > h {
				h = ch
			}
		}
		n.Height = h
		return h
	}
	index(root, 0)
	return t
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Nodes returns all nodes in preorder. The slice is shared.
func (t *Tree) Nodes() []*Node { return t.nodes }

// Node returns the node with the given ID, or nil.
func (t *Tree) Node(id int) *Node {
	if id < 0 || id >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Height returns the height of the root.
func (t *Tree) Height() int { return t.Root.Height }

// AtDepth returns the nodes at depth d in preorder.
func (t *Tree) AtDepth(d int) []*Node {
	var out []*Node
	for _, n := range t.nodes {
		if n.Depth == d {
			out = append(out, n)
		}
	}
	return out
}

// Leaves returns every leaf in preorder.
func (t *Tree) Leaves() []*Node { return t.Root.Leaves() }

// Find returns the first node in preorder with the given name.
func (t *Tree) Find(name string) (*Node, bool) {
	for _, n := range t.nodes {
		if n.Name == name {
			return n, true
		}
	}
	return nil, false
}
