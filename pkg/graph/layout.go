package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/bubbletreemap/pkg/color"
	"github.com/matzehuels/bubbletreemap/pkg/contour"
	"github.com/matzehuels/bubbletreemap/pkg/hierarchy"
	"github.com/matzehuels/bubbletreemap/pkg/layout"
	"github.com/matzehuels/bubbletreemap/pkg/render/path"
)

// =============================================================================
// Layout - Bubble Treemap Serialization
// =============================================================================

// Layout is the serialized result of a bubble treemap run.
type Layout struct {
	Width     float64 `json:"width" bson:"width"`
	Height    float64 `json:"height" bson:"height"`
	Padding   float64 `json:"padding" bson:"padding"`
	Curvature float64 `json:"curvature" bson:"curvature"`

	Nodes    []Node    `json:"nodes" bson:"nodes"`
	Contours []Contour `json:"contours,omitempty" bson:"contours,omitempty"`

	// Diagnostics
	Degenerate []Degenerate `json:"degenerate,omitempty" bson:"degenerate,omitempty"`
	Overlaps   []Overlap    `json:"overlaps,omitempty" bson:"overlaps,omitempty"`
	Failures   []Failure    `json:"failures,omitempty" bson:"failures,omitempty"`
}

// Node is one positioned bubble.
type Node struct {
	ID          int     `json:"id" bson:"id"`
	Parent      int     `json:"parent" bson:"parent"` // -1 for the root
	Name        string  `json:"name" bson:"name"`
	Depth       int     `json:"depth" bson:"depth"`
	X           float64 `json:"x" bson:"x"`
	Y           float64 `json:"y" bson:"y"`
	R           float64 `json:"r" bson:"r"`
	Value       float64 `json:"value" bson:"value"`
	Uncertainty float64 `json:"uncertainty,omitempty" bson:"uncertainty,omitempty"`
	Color       string  `json:"color,omitempty" bson:"color,omitempty"`
	Leaf        bool    `json:"leaf,omitempty" bson:"leaf,omitempty"`
}

// Contour is one contour segment ready for an SVG path element.
type Contour struct {
	D           string  `json:"d" bson:"d"`
	Transform   string  `json:"transform" bson:"transform"`
	Kind        string  `json:"kind" bson:"kind"`
	Depth       int     `json:"depth" bson:"depth"`
	Parent      int     `json:"parent" bson:"parent"`
	StrokeWidth float64 `json:"stroke_width" bson:"stroke_width"`
	Color       string  `json:"color,omitempty" bson:"color,omitempty"`
	Arc         Arc     `json:"arc" bson:"arc"`
}

// Arc is the geometry behind a contour path. Angles are in radians from
// straight up, turning clockwise on screen, with Start <= End.
type Arc struct {
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
	R     float64 `json:"r" bson:"r"`
	Start float64 `json:"start" bson:"start"`
	End   float64 `json:"end" bson:"end"`
}

// Degenerate lists nodes laid out with the zero-mass fallback.
type Degenerate struct {
	Depth int   `json:"depth" bson:"depth"`
	Nodes []int `json:"nodes" bson:"nodes"`
}

// Overlap reports two leaves of different clusters left overlapping.
type Overlap struct {
	Depth  int     `json:"depth" bson:"depth"`
	A      int     `json:"a" bson:"a"`
	B      int     `json:"b" bson:"b"`
	Amount float64 `json:"amount" bson:"amount"`
}

// Failure reports a cluster whose contour could not be traced.
type Failure struct {
	Depth  int    `json:"depth" bson:"depth"`
	Parent int    `json:"parent" bson:"parent"`
	Nodes  []int  `json:"nodes" bson:"nodes"`
	Error  string `json:"error" bson:"error"`
}

// Leaves returns the leaf nodes in order.
func (l *Layout) Leaves() []Node {
	var out []Node
	for _, n := range l.Nodes {
		if n.Leaf {
			out = append(out, n)
		}
	}
	return out
}

// MaxDepth returns the largest node depth.
func (l *Layout) MaxDepth() int {
	d := 0
	for _, n := range l.Nodes {
		d = max(d, n.Depth)
	}
	return d
}

// =============================================================================
// Construction
// =============================================================================

// Inputs bundles the stage outputs a Layout is built from. Result and
// Contours may be nil when the corresponding stage did not run.
type Inputs struct {
	Tree      *hierarchy.Tree
	Placement *layout.Placement
	Result    *layout.Result
	Colors    color.Assignment
	Contours  *contour.Result
	Paths     path.Formatter

	Width, Height      float64
	Padding, Curvature float64
}

// NewLayout converts stage outputs into the serialization format.
func NewLayout(in Inputs) Layout {
	l := Layout{
		Width:     in.Width,
		Height:    in.Height,
		Padding:   in.Padding,
		Curvature: in.Curvature,
	}

	colorOf := func(id int) string {
		if id < len(in.Colors) {
			return in.Colors[id]
		}
		return ""
	}

	for _, n := range in.Tree.Nodes() {
		c := in.Placement.Circle(n.ID)
		parent := -1
		if n.Parent != nil {
			parent = n.Parent.ID
		}
		l.Nodes = append(l.Nodes, Node{
			ID:          n.ID,
			Parent:      parent,
			Name:        n.Name,
			Depth:       n.Depth,
			X:           c.Center.X,
			Y:           c.Center.Y,
			R:           c.Radius,
			Value:       n.Value,
			Uncertainty: n.Uncertainty,
			Color:       colorOf(n.ID),
			Leaf:        n.IsLeaf(),
		})
	}

	if in.Result != nil {
		for _, d := range in.Result.Degenerate {
			l.Degenerate = append(l.Degenerate, Degenerate{Depth: d.Depth, Nodes: d.NodeIDs})
		}
		for _, o := range in.Result.Overlaps {
			l.Overlaps = append(l.Overlaps, Overlap{Depth: o.Depth, A: o.A, B: o.B, Amount: o.Amount})
		}
	}

	if in.Contours != nil {
		for _, s := range in.Contours.Segments {
			p := in.Paths.Ring(s.Arc)
			a := s.Arc.Normalized()
			l.Contours = append(l.Contours, Contour{
				D:           p.D,
				Transform:   p.Transform,
				Kind:        s.Kind.String(),
				Depth:       s.Depth,
				Parent:      s.ParentID,
				StrokeWidth: s.StrokeWidth,
				Color:       colorOf(s.ParentID),
				Arc:         Arc{X: a.Center.X, Y: a.Center.Y, R: a.Radius, Start: a.StartAngle, End: a.EndAngle},
			})
		}
		for _, f := range in.Contours.Failures {
			l.Failures = append(l.Failures, Failure{Depth: f.Depth, Parent: f.ParentID, Nodes: f.NodeIDs, Error: f.Err.Error()})
		}
	}
	return l
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if len(l.Nodes) == 0 {
		return Layout{}, fmt.Errorf("layout must contain nodes")
	}
	if l.Width <= 0 || l.Height <= 0 {
		return Layout{}, fmt.Errorf("layout must have a positive canvas size")
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, filename string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(filename string) (Layout, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", filename, err)
	}
	return UnmarshalLayout(data)
}
