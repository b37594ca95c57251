package contour

import (
	"encoding/json"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/bubbletreemap/pkg/geom"
	"github.com/matzehuels/bubbletreemap/pkg/hierarchy"
	"github.com/matzehuels/bubbletreemap/pkg/layout"
)

// Kind distinguishes the two arc types of a contour.
type Kind int

const (
	KindCircle Kind = iota
	KindFillet
)

func (k Kind) String() string {
	if k == KindFillet {
		return "fillet"
	}
	return "circle"
}

// MarshalJSON encodes the kind by name.
func (k Kind) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }

// UnmarshalJSON decodes a kind name.
func (k *Kind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "circle":
		*k = KindCircle
	case "fillet":
		*k = KindFillet
	default:
		return fmt.Errorf("unknown segment kind %q", s)
	}
	return nil
}

// Segment is one arc of a cluster outline.
type Segment struct {
	Arc         geom.Arc
	Kind        Kind
	Depth       int     // Depth of the cluster parent
	ParentID    int     // Node ID of the cluster parent
	StrokeWidth float64 // Uncertainty of the cluster parent
}

// Failure records a cluster whose outline could not be traced.
type Failure struct {
	Depth    int
	ParentID int
	NodeIDs  []int
	Err      error
}

// Result is the outcome of TraceHierarchy.
type Result struct {
	Segments []Segment
	Failures []Failure
}

// Inflate returns the circles of members grown by their contour padding.
func Inflate(members []hierarchy.Member, p *layout.Placement) []geom.Circle {
	out := make([]geom.Circle, len(members))
	for i, m := range members {
		out[i] = p.Circle(m.Node.ID).Inflate(m.ContourPadding)
	}
	return out
}

// TraceHierarchy outlines every cluster from the deepest internal level up
// to the root. Segments come out ordered by depth (deepest first), then
// cluster, then circle arcs before fillets. p is only read.
func TraceHierarchy(tree *hierarchy.Tree, p *layout.Placement, padding, curvature float64) *Result {
	var clusters []hierarchy.Cluster
	for depth := tree.Height() - 1; depth >= 0; depth-- {
		clusters = append(clusters, hierarchy.BuildClusters(tree.Root, depth, padding)...)
	}

	contours := make([]Contour, len(clusters))
	errs := make([]error, len(clusters))
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range clusters {
		eg.Go(func() error {
			contours[i], errs[i] = Trace(Inflate(c.Members, p), curvature)
			return nil
		})
	}
	_ = eg.Wait()

	res := &Result{}
	for i, c := range clusters {
		parent := c.Parent
		if errs[i] != nil {
			ids := make([]int, len(c.Members))
			for k, m := range c.Members {
				ids[k] = m.Node.ID
			}
			res.Failures = append(res.Failures, Failure{Depth: parent.Depth, ParentID: parent.ID, NodeIDs: ids, Err: errs[i]})
			continue
		}
		emit := func(arcs []geom.Arc, kind Kind) {
			for _, a := range arcs {
				res.Segments = append(res.Segments, Segment{
					Arc:         a,
					Kind:        kind,
					Depth:       parent.Depth,
					ParentID:    parent.ID,
					StrokeWidth: parent.Uncertainty,
				})
			}
		}
		emit(contours[i].Circles, KindCircle)
		emit(contours[i].Fillets, KindFillet)
	}
	return res
}
