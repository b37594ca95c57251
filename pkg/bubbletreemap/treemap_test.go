package bubbletreemap

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/bubbletreemap/pkg/color"
	"github.com/matzehuels/bubbletreemap/pkg/errors"
	"github.com/matzehuels/bubbletreemap/pkg/geom"
	"github.com/matzehuels/bubbletreemap/pkg/hierarchy"
	"github.com/matzehuels/bubbletreemap/pkg/layout"
	"github.com/matzehuels/bubbletreemap/pkg/physics"
)

// stillSolver leaves every fixture where it was packed.
type stillSolver struct{}

func (stillSolver) Settle(_ geom.Vec2, bodies []physics.Body) ([]physics.Settled, error) {
	var out []physics.Settled
	for _, b := range bodies {
		for _, f := range b.Fixtures {
			out = append(out, physics.Settled{ID: f.ID, Center: f.Center})
		}
	}
	return out, nil
}

func ptr(v float64) *float64 { return &v }

func testTree(t *testing.T) *hierarchy.Tree {
	t.Helper()
	tree, err := hierarchy.Build(hierarchy.Data{
		Name: "root",
		Children: []hierarchy.Data{
			{Name: "A", Children: []hierarchy.Data{
				{Name: "a1", Radius: ptr(20)},
				{Name: "a2", Radius: ptr(12)},
			}},
			{Name: "B", Uncertainty: ptr(2), Children: []hierarchy.Data{
				{Name: "b1", Radius: ptr(16)},
				{Name: "b2", Radius: ptr(8)},
			}},
			{Name: "C", Radius: ptr(10)},
		},
	})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return tree
}

func TestNewDefaults(t *testing.T) {
	tm := New()
	if tm.Padding() != 10 || tm.Curvature() != 10 {
		t.Errorf("padding, curvature = %v, %v, want 10, 10", tm.Padding(), tm.Curvature())
	}
	if tm.Width() != 800 || tm.Height() != 800 {
		t.Errorf("canvas = %vx%v, want 800x800", tm.Width(), tm.Height())
	}
	if tm.Colormap() == nil || len(tm.Colormap()) != 0 {
		t.Errorf("Colormap() = %v, want empty", tm.Colormap())
	}
	if tm.Hierarchy() != nil || tm.Placement() != nil || tm.Colors() != nil {
		t.Error("new treemap should carry no hierarchy or results")
	}
}

func TestSettersChain(t *testing.T) {
	tree := testTree(t)
	tm := New()
	got := tm.SetHierarchy(tree).
		SetPadding(4).
		SetCurvature(6).
		SetCanvasSize(300, 200).
		SetColormap([]string{"#fff"})
	if got != tm {
		t.Fatal("setters should return the receiver")
	}
	if tm.Hierarchy() != tree || tm.Padding() != 4 || tm.Curvature() != 6 {
		t.Errorf("unexpected configuration: %v %v %v", tm.Hierarchy(), tm.Padding(), tm.Curvature())
	}
	if tm.Width() != 300 || tm.Height() != 200 {
		t.Errorf("canvas = %vx%v, want 300x200", tm.Width(), tm.Height())
	}
	tm.SetWidth(50).SetHeight(60)
	if tm.Width() != 50 || tm.Height() != 60 {
		t.Errorf("canvas = %vx%v, want 50x60", tm.Width(), tm.Height())
	}
	if diff := cmp.Diff([]string{"#fff"}, tm.Colormap()); diff != "" {
		t.Errorf("Colormap() mismatch (-want +got):\n%s", diff)
	}
	if tm.Placement() != nil || tm.Colors() != nil {
		t.Error("setters should not run any stage")
	}
}

func TestRunLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		tm   *Treemap
	}{
		{"no hierarchy", New()},
		{"negative padding", New().SetHierarchy(testTree(t)).SetPadding(-1)},
		{"empty canvas", New().SetHierarchy(testTree(t)).SetCanvasSize(0, 100)},
		{"nan padding", New().SetHierarchy(testTree(t)).SetPadding(math.NaN())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.tm.RunLayout(); err == nil {
				t.Error("RunLayout() expected error")
			}
		})
	}
}

func TestRunLayout(t *testing.T) {
	tree := testTree(t)
	tm := New(WithSolver(stillSolver{})).SetHierarchy(tree)
	if err := tm.RunLayout(); err != nil {
		t.Fatalf("RunLayout() error: %v", err)
	}
	p := tm.Placement()
	if !p.Fits(tree) {
		t.Fatal("placement does not cover the tree")
	}
	for _, leaf := range tree.Leaves() {
		if got := p.Radii[leaf.ID]; got != leaf.Radius {
			t.Errorf("%s radius = %v, want %v", leaf.Name, got, leaf.Radius)
		}
	}
	if tm.LayoutResult() == nil || tm.LayoutResult().Simulations == 0 {
		t.Error("expected at least one simulation")
	}

	// A second run starts over from a fresh packing.
	first := p.Clone()
	if err := tm.RunLayout(); err != nil {
		t.Fatalf("RunLayout() error: %v", err)
	}
	if tm.Placement() == p {
		t.Error("RunLayout should produce a new placement")
	}
	if diff := cmp.Diff(first, tm.Placement()); diff != "" {
		t.Errorf("deterministic solver should reproduce the layout (-first +second):\n%s", diff)
	}
}

func TestRunLayoutSeparatesClusters(t *testing.T) {
	if testing.Short() {
		t.Skip("runs a physics simulation")
	}
	tree := testTree(t)
	tm := New().SetHierarchy(tree)
	if err := tm.RunLayout(); err != nil {
		t.Fatalf("RunLayout() error: %v", err)
	}
	p := tm.Placement()

	clusterOf := map[int]int{}
	padOf := map[int]float64{}
	for _, c := range hierarchy.BuildClusters(tree.Root, 1, tm.Padding()) {
		for _, m := range c.Members {
			clusterOf[m.Node.ID] = c.Parent.ID
			padOf[m.Node.ID] = m.PlanckPadding
		}
	}

	leaves := tree.Leaves()
	for i, a := range leaves {
		for _, b := range leaves[i+1:] {
			if clusterOf[a.ID] == clusterOf[b.ID] {
				continue
			}
			want := a.Radius + padOf[a.ID] + b.Radius + padOf[b.ID]
			got := p.Centers[a.ID].Distance(p.Centers[b.ID])
			if got < want-layout.DefaultTolerance {
				t.Errorf("%s-%s distance = %.3f, want >= %.3f", a.Name, b.Name, got, want)
			}
		}
	}
}

func TestRunColoring(t *testing.T) {
	tree := testTree(t)
	palette := []string{"#FF0000", "#00f"}
	tm := New().SetHierarchy(tree).SetColormap(palette)
	if err := tm.RunColoring(); err != nil {
		t.Fatalf("RunColoring() error: %v", err)
	}
	colors := tm.Colors()

	want := map[string]string{
		"root": "",
		"A":    "#ff0000", "a1": "#ff0000", "a2": "#ff0000",
		"B": "#0000ff", "b1": "#0000ff", "b2": "#0000ff",
		"C": "#ff0000",
	}
	for name, c := range want {
		n, ok := tree.Find(name)
		if !ok {
			t.Fatalf("node %q not found", name)
		}
		if colors[n.ID] != c {
			t.Errorf("%s colour = %q, want %q", name, colors[n.ID], c)
		}
	}

	// Same palette and shape, same colours.
	again := New().SetHierarchy(tree).SetColormap(palette)
	if err := again.RunColoring(); err != nil {
		t.Fatalf("RunColoring() error: %v", err)
	}
	if diff := cmp.Diff(colors, again.Colors()); diff != "" {
		t.Errorf("colouring not idempotent (-want +got):\n%s", diff)
	}
}

func TestRunColoringErrors(t *testing.T) {
	if err := New().RunColoring(); err == nil {
		t.Error("expected error without hierarchy")
	}
	err := New().SetHierarchy(testTree(t)).SetColormap([]string{"blue"}).RunColoring()
	if !errors.Is(err, errors.ErrCodeInvalidColor) {
		t.Errorf("RunColoring() error = %v, want INVALID_COLOR", err)
	}

	tm := New().SetHierarchy(testTree(t))
	if err := tm.RunColoring(); err != nil {
		t.Fatalf("RunColoring() error: %v", err)
	}
	for id, c := range tm.Colors() {
		if c != "" {
			t.Errorf("node %d coloured %q with empty colour map", id, c)
		}
	}
}

func TestComputeContoursRequiresLayout(t *testing.T) {
	if _, err := New().SetHierarchy(testTree(t)).ComputeContours(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ComputeContours() error = %v, want INVALID_INPUT", err)
	}
	if _, err := New().ComputeContours(); err == nil {
		t.Error("expected error without hierarchy")
	}
}

func TestComputeContours(t *testing.T) {
	tree := testTree(t)
	tm := New(WithSolver(stillSolver{})).SetHierarchy(tree)
	if err := tm.RunLayout(); err != nil {
		t.Fatalf("RunLayout() error: %v", err)
	}
	before := tm.Placement().Clone()

	paths, err := tm.ComputeContours()
	if err != nil {
		t.Fatalf("ComputeContours() error: %v", err)
	}
	if len(paths) == 0 {
		t.Fatal("expected contour paths")
	}
	for i, p := range paths {
		if !strings.HasPrefix(p.D, "M") || !strings.HasSuffix(p.D, "Z") {
			t.Errorf("path %d = %q, want closed ring", i, p.D)
		}
		if !strings.HasPrefix(p.Transform, "translate(") {
			t.Errorf("path %d transform = %q", i, p.Transform)
		}
	}

	if diff := cmp.Diff(before, tm.Placement()); diff != "" {
		t.Errorf("ComputeContours changed the placement (-before +after):\n%s", diff)
	}

	segs, err := tm.Segments()
	if err != nil {
		t.Fatalf("Segments() error: %v", err)
	}
	if len(segs.Segments) != len(paths) {
		t.Errorf("segments = %d, paths = %d", len(segs.Segments), len(paths))
	}
	// Leaf C forms a cluster of its own at depth 1, outlined by one full arc.
	c, _ := tree.Find("C")
	n := 0
	for _, s := range segs.Segments {
		if s.ParentID == c.ID {
			n++
			if got := s.Arc.Sweep(); math.Abs(got-2*math.Pi) > 1e-9 {
				t.Errorf("C sweep = %v, want full turn", got)
			}
		}
	}
	if n != 1 {
		t.Errorf("C segments = %d, want 1", n)
	}
}

func TestLayout(t *testing.T) {
	tree := testTree(t)
	tm := New(WithSolver(stillSolver{})).
		SetHierarchy(tree).
		SetColormap(color.Category10)
	if err := tm.RunLayout(); err != nil {
		t.Fatalf("RunLayout() error: %v", err)
	}
	if err := tm.RunColoring(); err != nil {
		t.Fatalf("RunColoring() error: %v", err)
	}
	l, err := tm.Layout()
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	if len(l.Nodes) != tree.Len() {
		t.Errorf("nodes = %d, want %d", len(l.Nodes), tree.Len())
	}
	if len(l.Leaves()) != len(tree.Leaves()) {
		t.Errorf("leaves = %d, want %d", len(l.Leaves()), len(tree.Leaves()))
	}
	if l.Width != 800 || l.Padding != 10 {
		t.Errorf("canvas/padding not carried over: %+v", l)
	}
	if len(l.Contours) == 0 {
		t.Error("expected contours")
	}
	a, _ := tree.Find("A")
	if l.Nodes[a.ID].Color != color.Category10[0] {
		t.Errorf("A colour = %q, want %q", l.Nodes[a.ID].Color, color.Category10[0])
	}
}
