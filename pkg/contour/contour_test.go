package contour

import (
	"math"
	"testing"

	"github.com/matzehuels/bubbletreemap/pkg/geom"
	"github.com/matzehuels/bubbletreemap/pkg/hierarchy"
	"github.com/matzehuels/bubbletreemap/pkg/layout"
)

const tol = 1e-9

func near(a, b geom.Vec2) bool { return a.Distance(b) < tol }

func TestTraceEmpty(t *testing.T) {
	c, err := Trace(nil, 10)
	if err != nil {
		t.Fatalf("Trace() error = %v", err)
	}
	if len(c.Arcs()) != 0 {
		t.Errorf("Arcs() = %v, want none", c.Arcs())
	}
}

func TestTraceSingleCircle(t *testing.T) {
	c, err := Trace([]geom.Circle{geom.C(5, 5, 20)}, 10)
	if err != nil {
		t.Fatalf("Trace() error = %v", err)
	}
	if len(c.Circles) != 1 || len(c.Fillets) != 0 {
		t.Fatalf("got %d circle arcs and %d fillets, want 1 and 0", len(c.Circles), len(c.Fillets))
	}
	a := c.Circles[0]
	if a.Radius != 20 || a.Center != geom.V(5, 5) {
		t.Errorf("arc = %+v, want full turn of the input circle", a)
	}
	if math.Abs(a.Sweep()-geom.FullTurn) > tol {
		t.Errorf("Sweep() = %v, want 2π", a.Sweep())
	}
}

func TestTraceTwoCircles(t *testing.T) {
	circles := []geom.Circle{geom.C(0, 0, 10), geom.C(15, 0, 10)}
	c, err := Trace(circles, 5)
	if err != nil {
		t.Fatalf("Trace() error = %v", err)
	}

	if len(c.Rings) != 1 || len(c.Rings[0]) != 2 {
		t.Fatalf("rings = %v, want one ring of two vertices", c.Rings)
	}
	if len(c.Circles) != 2 || len(c.Fillets) != 2 {
		t.Fatalf("got %d circle arcs and %d fillets, want 2 and 2", len(c.Circles), len(c.Fillets))
	}

	ring := c.Rings[0]
	if ring[0].Index == ring[1].Index {
		t.Errorf("ring visits circle %d twice", ring[0].Index)
	}

	// Each circle keeps the outer two thirds of its boundary.
	for i, a := range c.Circles {
		if math.Abs(a.Sweep()-4*math.Pi/3) > 1e-9 {
			t.Errorf("circle arc %d sweep = %v, want 4π/3", i, a.Sweep())
		}
		if a.Radius != 10 {
			t.Errorf("circle arc %d radius = %v, want 10", i, a.Radius)
		}
	}
	for i, f := range c.Fillets {
		if f.Radius != 5 {
			t.Errorf("fillet %d radius = %v, want 5", i, f.Radius)
		}
		if math.Abs(f.Sweep()-math.Pi/3) > 1e-9 {
			t.Errorf("fillet %d sweep = %v, want π/3", i, f.Sweep())
		}
	}
	assertClosed(t, c)
}

// assertClosed checks that every fillet joins the end of the previous
// circle arc to the start of the current one.
func assertClosed(t *testing.T, c Contour) {
	t.Helper()
	n := len(c.Circles)
	for i := range c.Fillets {
		if !near(c.Fillets[i].Start(), c.Circles[i].Start()) {
			t.Errorf("fillet %d starts at %v, circle arc starts at %v", i, c.Fillets[i].Start(), c.Circles[i].Start())
		}
		prev := c.Circles[(i+n-1)%n]
		if !near(c.Fillets[i].End(), prev.End()) {
			t.Errorf("fillet %d ends at %v, previous circle arc ends at %v", i, c.Fillets[i].End(), prev.End())
		}
	}
}

func TestTraceChain(t *testing.T) {
	circles := []geom.Circle{geom.C(0, 0, 10), geom.C(18, 2, 12), geom.C(40, -3, 9), geom.C(20, 20, 8)}
	c, err := Trace(circles, 4)
	if err != nil {
		t.Fatalf("Trace() error = %v", err)
	}
	if len(c.Rings) != 1 {
		t.Fatalf("rings = %d, want 1", len(c.Rings))
	}
	if len(c.Circles) != len(c.Fillets) || len(c.Circles) < 3 {
		t.Fatalf("got %d circle arcs and %d fillets", len(c.Circles), len(c.Fillets))
	}
	assertClosed(t, c)
}

func TestTraceDisjoint(t *testing.T) {
	tests := []struct {
		name    string
		circles []geom.Circle
		want    int
	}{
		{"far apart", []geom.Circle{geom.C(0, 0, 10), geom.C(100, 0, 10)}, 2},
		{"nested", []geom.Circle{geom.C(0, 0, 50), geom.C(5, 0, 10)}, 1},
		{"identical", []geom.Circle{geom.C(0, 0, 10), geom.C(0, 0, 10)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Trace(tt.circles, 5)
			if err != nil {
				t.Fatalf("Trace() error = %v", err)
			}
			if len(c.Circles) != tt.want || len(c.Fillets) != 0 {
				t.Errorf("got %d circle arcs and %d fillets, want %d and 0", len(c.Circles), len(c.Fillets), tt.want)
			}
			for _, a := range c.Circles {
				if math.Abs(a.Sweep()-geom.FullTurn) > tol {
					t.Errorf("Sweep() = %v, want 2π", a.Sweep())
				}
			}
		})
	}
}

func TestTraceNaN(t *testing.T) {
	_, err := Trace([]geom.Circle{geom.C(0, 0, 1), geom.C(math.NaN(), 0, 1)}, 1)
	if err == nil {
		t.Error("Trace() error = nil, want error for non-finite input")
	}
}

func ptr(v float64) *float64 { return &v }

func TestTraceHierarchy(t *testing.T) {
	tree, err := hierarchy.Build(hierarchy.Data{
		Name: "root",
		Children: []hierarchy.Data{
			{Name: "a", Uncertainty: ptr(2), Children: []hierarchy.Data{
				{Name: "a1", Radius: ptr(10)},
				{Name: "a2", Radius: ptr(10)},
			}},
			{Name: "b", Radius: ptr(10)},
		},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	ids := map[string]int{}
	for _, n := range tree.Nodes() {
		ids[n.Name] = n.ID
	}

	p := layout.NewPlacement(tree.Len())
	p.Set(ids["a1"], geom.C(0, 0, 10))
	p.Set(ids["a2"], geom.C(15, 0, 10))
	p.Set(ids["b"], geom.C(50, 0, 10))

	res := TraceHierarchy(tree, p, 10, 10)
	if len(res.Failures) != 0 {
		t.Fatalf("Failures = %+v, want none", res.Failures)
	}

	prevDepth := math.MaxInt
	counts := map[int]int{}
	for _, s := range res.Segments {
		if s.Depth > prevDepth {
			t.Errorf("segment at depth %d after depth %d", s.Depth, prevDepth)
		}
		prevDepth = s.Depth
		counts[s.ParentID]++
		if s.ParentID == ids["a"] && s.StrokeWidth != 2 {
			t.Errorf("cluster a stroke width = %v, want 2", s.StrokeWidth)
		}
	}
	if counts[ids["a"]] != 4 {
		t.Errorf("cluster a has %d segments, want 4", counts[ids["a"]])
	}
	if counts[ids["b"]] != 1 {
		t.Errorf("cluster b has %d segments, want 1", counts[ids["b"]])
	}
	if counts[tree.Root.ID] == 0 {
		t.Error("root cluster has no segments")
	}

	// The placement is read only.
	if got := p.Circle(ids["a1"]); got != geom.C(0, 0, 10) {
		t.Errorf("a1 moved to %v", got)
	}
}

func TestTraceHierarchyFailures(t *testing.T) {
	tree, err := hierarchy.Build(hierarchy.Data{
		Name: "root",
		Children: []hierarchy.Data{
			{Name: "a", Children: []hierarchy.Data{{Name: "a1", Radius: ptr(10)}, {Name: "a2", Radius: ptr(10)}}},
			{Name: "b", Radius: ptr(10)},
		},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	a2, _ := tree.Find("a2")
	b, _ := tree.Find("b")
	a1, _ := tree.Find("a1")

	p := layout.NewPlacement(tree.Len())
	p.Set(a1.ID, geom.C(0, 0, 10))
	p.Set(a2.ID, geom.C(math.NaN(), 0, 10))
	p.Set(b.ID, geom.C(50, 0, 10))

	res := TraceHierarchy(tree, p, 10, 10)
	if len(res.Failures) != 2 {
		t.Fatalf("Failures = %d, want 2 (cluster a and root)", len(res.Failures))
	}
	for _, f := range res.Failures {
		if f.Err == nil {
			t.Error("failure without error")
		}
	}
	found := false
	for _, s := range res.Segments {
		if s.ParentID == b.ID {
			found = true
		}
	}
	if !found {
		t.Error("cluster b was not traced")
	}
}

func TestKindJSON(t *testing.T) {
	b, err := KindFillet.MarshalJSON()
	if err != nil || string(b) != `"fillet"` {
		t.Fatalf("MarshalJSON() = %s, %v", b, err)
	}
	var k Kind
	if err := k.UnmarshalJSON([]byte(`"circle"`)); err != nil || k != KindCircle {
		t.Errorf("UnmarshalJSON() = %v, %v", k, err)
	}
	if err := k.UnmarshalJSON([]byte(`"square"`)); err == nil {
		t.Error("UnmarshalJSON(square) error = nil")
	}
}
