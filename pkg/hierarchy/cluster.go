package hierarchy

// Spacing selects how much extra clearance separates neighbouring clusters
// in the physics stage.
type Spacing int

const (
	// SpacingProportional uses half the padding.
	SpacingProportional Spacing = iota
	// SpacingConstant uses a fixed ConstantSpacing regardless of padding.
	SpacingConstant
)

// ConstantSpacing is the clearance used by SpacingConstant.
const ConstantSpacing = 5.0

// String returns the policy name used in flags and config files.
func (s Spacing) String() string {
	if s == SpacingConstant {
		return "constant"
	}
	return "proportional"
}

// ParseSpacing maps a policy name to a Spacing. Unknown names report false.
func ParseSpacing(name string) (Spacing, bool) {
	switch name {
	case "", "proportional":
		return SpacingProportional, true
	case "constant":
		return SpacingConstant, true
	}
	return SpacingProportional, false
}

func (s Spacing) amount(padding float64) float64 {
	if s == SpacingConstant {
		return ConstantSpacing
	}
	return padding / 2
}

// Member is a leaf of a cluster with its clearances for that cluster.
type Member struct {
	Node           *Node
	ContourPadding float64 // Distance between circle and drawn contour
	PlanckPadding  float64 // Collision margin used by the physics stage
}

// Cluster is the set of leaves below one node of a given depth.
type Cluster struct {
	Parent  *Node
	Members []Member
}

// Nodes returns the member nodes in order.
func (c Cluster) Nodes() []*Node {
	out := make([]*Node, len(c.Members))
	for i, m := range c.Members {
		out[i] = m.Node
	}
	return out
}

// BuildClusters returns one cluster per node at depth, in preorder, with
// proportional inter-cluster spacing.
func BuildClusters(root *Node, depth int, padding float64) []Cluster {
	return BuildClustersWithSpacing(root, depth, padding, SpacingProportional)
}

// BuildClustersWithSpacing is BuildClusters with an explicit spacing policy.
//
// For a leaf l below cluster parent p:
//
//	contourPadding = (l.Depth-p.Depth)*padding + u + p.Uncertainty/2
//	planckPadding  = (l.Depth-p.Depth)*padding + u + pu + spacing
//
// where u sums the uncertainty of the nodes strictly between l and p, pu is
// p.Uncertainty unless l is p, and spacing is zero for single-leaf clusters.
func BuildClustersWithSpacing(root *Node, depth int, padding float64, spacing Spacing) []Cluster {
	var clusters []Cluster
	root.Walk(func(p *Node) {
		if p.Depth != depth {
			return
		}
		leaves := p.Leaves()
		gap := 0.0
		if len(leaves) > 1 {
			gap = spacing.amount(padding)
		}
		c := Cluster{Parent: p, Members: make([]Member, len(leaves))}
		for i, l := range leaves {
			u := 0.0
			for a := l.Parent; a != nil && a != p && l != p; a = a.Parent {
				u += a.Uncertainty
			}
			planckParentU := p.Uncertainty
			if l == p {
				planckParentU = 0
			}
			levels := float64(l.Depth-p.Depth) * padding
			c.Members[i] = Member{
				Node:           l,
				ContourPadding: levels + u + p.Uncertainty/2,
				PlanckPadding:  levels + u + planckParentU + gap,
			}
		}
		clusters = append(clusters, c)
	})
	return clusters
}
