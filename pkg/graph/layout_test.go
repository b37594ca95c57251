package graph

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/bubbletreemap/pkg/color"
	"github.com/matzehuels/bubbletreemap/pkg/contour"
	"github.com/matzehuels/bubbletreemap/pkg/geom"
	"github.com/matzehuels/bubbletreemap/pkg/hierarchy"
	"github.com/matzehuels/bubbletreemap/pkg/layout"
	"github.com/matzehuels/bubbletreemap/pkg/render/path"
)

func testInputs(t *testing.T) Inputs {
	t.Helper()
	r := func(v float64) *float64 { return &v }
	tree, err := hierarchy.Build(hierarchy.Data{
		Name: "root",
		Children: []hierarchy.Data{
			{Name: "a", Radius: r(10), Uncertainty: r(1)},
			{Name: "b", Radius: r(20)},
		},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	p := layout.NewPlacement(tree.Len())
	p.Set(0, geom.C(50, 50, 40))
	p.Set(1, geom.C(30, 50, 10))
	p.Set(2, geom.C(70, 50, 20))

	return Inputs{
		Tree:      tree,
		Placement: p,
		Result:    &layout.Result{Overlaps: []layout.Overlap{{Depth: 0, A: 1, B: 2, Amount: 3}}},
		Colors:    color.Assign(tree, color.Palette{"#ff0000", "#00ff00"}),
		Contours: &contour.Result{Segments: []contour.Segment{
			{Arc: geom.FullCircle(geom.C(30, 50, 10)), Kind: contour.KindCircle, Depth: 1, ParentID: 1, StrokeWidth: 1},
		}},
		Paths:  path.Formatter{Digits: 2},
		Width:  100,
		Height: 100,
	}
}

func TestNewLayout(t *testing.T) {
	l := NewLayout(testInputs(t))

	want := []Node{
		{ID: 0, Parent: -1, Name: "root", Depth: 0, X: 50, Y: 50, R: 40, Value: 0},
		{ID: 1, Parent: 0, Name: "a", Depth: 1, X: 30, Y: 50, R: 10, Value: 0, Uncertainty: 1, Color: "#ff0000", Leaf: true},
		{ID: 2, Parent: 0, Name: "b", Depth: 1, X: 70, Y: 50, R: 20, Value: 0, Color: "#00ff00", Leaf: true},
	}
	if diff := cmp.Diff(want, l.Nodes); diff != "" {
		t.Errorf("Nodes mismatch (-want +got):\n%s", diff)
	}
	if len(l.Contours) != 1 || l.Contours[0].Transform != "translate(30,50)" || l.Contours[0].Color != "#ff0000" {
		t.Errorf("Contours = %+v", l.Contours)
	}
	if len(l.Overlaps) != 1 || l.Overlaps[0].Amount != 3 {
		t.Errorf("Overlaps = %+v", l.Overlaps)
	}
	if got := len(l.Leaves()); got != 2 {
		t.Errorf("Leaves() = %d, want 2", got)
	}
	if got := l.MaxDepth(); got != 1 {
		t.Errorf("MaxDepth() = %d, want 1", got)
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	l := NewLayout(testInputs(t))
	file := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutFile(l, file); err != nil {
		t.Fatalf("WriteLayoutFile() error = %v", err)
	}
	got, err := ReadLayoutFile(file)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error = %v", err)
	}
	if diff := cmp.Diff(l, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{`},
		{"no nodes", `{"width": 10, "height": 10}`},
		{"no canvas", `{"nodes": [{"id": 0, "parent": -1, "name": "r"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalLayout([]byte(tt.data)); err == nil {
				t.Error("UnmarshalLayout() error = nil, want error")
			}
		})
	}
}
