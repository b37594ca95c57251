package pack

import (
	"math"
	"testing"

	"github.com/matzehuels/bubbletreemap/pkg/geom"
	"github.com/matzehuels/bubbletreemap/pkg/hierarchy"
)

const eps = 1e-6

func radius(v float64) *float64 { return &v }

func testTree(t *testing.T) *hierarchy.Tree {
	t.Helper()
	tree, err := hierarchy.Build(hierarchy.Data{
		Name: "root",
		Children: []hierarchy.Data{
			{Name: "a", Children: []hierarchy.Data{
				{Name: "a1", Radius: radius(10)},
				{Name: "a2", Radius: radius(20)},
				{Name: "a3", Radius: radius(5)},
				{Name: "a4", Radius: radius(12)},
			}},
			{Name: "b", Children: []hierarchy.Data{
				{Name: "b1", Radius: radius(8)},
			}},
			{Name: "c", Radius: radius(15)},
		},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return tree
}

func TestLCG(t *testing.T) {
	r := lcg()
	// (1664525*1 + 1013904223) mod 2^32 = 1015568748
	if got, want := r(), 1015568748.0/4294967296.0; got != want {
		t.Errorf("first value = %v, want %v", got, want)
	}
	for i := 0; i < 1000; i++ {
		if v := r(); v < 0 || v >= 1 {
			t.Fatalf("value %v out of [0, 1)", v)
		}
	}
}

func TestSiblings(t *testing.T) {
	tests := []struct {
		name  string
		radii []float64
		want  float64
	}{
		{"empty", nil, 0},
		{"one", []float64{7}, 7},
		{"two", []float64{3, 5}, 8},
		{"three equal", []float64{1, 1, 1}, 1 + 2/math.Sqrt(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := make([]geom.Circle, len(tt.radii))
			for i, r := range tt.radii {
				cs[i].Radius = r
			}
			if got := Siblings(cs); math.Abs(got-tt.want) > eps {
				t.Errorf("Siblings() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSiblingsNoOverlap(t *testing.T) {
	cs := make([]geom.Circle, 12)
	for i := range cs {
		cs[i].Radius = float64(3 + (i*7)%11)
	}
	r := Siblings(cs)
	for i := range cs {
		if d := cs[i].Center.Magnitude() + cs[i].Radius; d > r+eps {
			t.Errorf("circle %d reaches %v outside enclosing radius %v", i, d, r)
		}
		for j := i + 1; j < len(cs); j++ {
			gap := cs[i].Center.Distance(cs[j].Center) - cs[i].Radius - cs[j].Radius
			if gap < -eps {
				t.Errorf("circles %d and %d overlap by %v", i, j, -gap)
			}
		}
	}
}

func TestEnclose(t *testing.T) {
	tests := []struct {
		name string
		in   []geom.Circle
		want geom.Circle
	}{
		{"single", []geom.Circle{geom.C(1, 2, 3)}, geom.C(1, 2, 3)},
		{"two", []geom.Circle{geom.C(-2, 0, 1), geom.C(2, 0, 1)}, geom.C(0, 0, 3)},
		{"nested", []geom.Circle{geom.C(0, 0, 10), geom.C(1, 1, 2)}, geom.C(0, 0, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Enclose(tt.in)
			if got.Center.Distance(tt.want.Center) > eps || math.Abs(got.Radius-tt.want.Radius) > eps {
				t.Errorf("Enclose() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPack(t *testing.T) {
	tree := testTree(t)
	p := Enclosure{}.Pack(tree, 800, 600)

	if !p.Fits(tree) {
		t.Fatalf("placement has %d entries, want %d", p.Len(), tree.Len())
	}
	if c := p.Centers[tree.Root.ID]; c.Distance(geom.V(400, 300)) > eps {
		t.Errorf("root center = %v, want (400, 300)", c)
	}

	for _, n := range tree.Nodes() {
		if n.IsLeaf() && p.Radii[n.ID] != n.Radius {
			t.Errorf("%s radius = %v, want %v", n.Name, p.Radii[n.ID], n.Radius)
		}
		if n.Parent == nil {
			continue
		}
		// Every node lies inside its parent's circle.
		outer := p.Circle(n.Parent.ID)
		inner := p.Circle(n.ID)
		if d := outer.Center.Distance(inner.Center) + inner.Radius; d > outer.Radius+eps {
			t.Errorf("%s sticks out of %s by %v", n.Name, n.Parent.Name, d-outer.Radius)
		}
		// Siblings do not overlap.
		for _, s := range n.Parent.Children {
			if s.ID <= n.ID {
				continue
			}
			gap := p.Centers[n.ID].Distance(p.Centers[s.ID]) - p.Radii[n.ID] - p.Radii[s.ID]
			if gap < -eps {
				t.Errorf("%s and %s overlap by %v", n.Name, s.Name, -gap)
			}
		}
	}
}

func TestPackDeterministic(t *testing.T) {
	a := Enclosure{Padding: 4}.Pack(testTree(t), 500, 500)
	b := Enclosure{Padding: 4}.Pack(testTree(t), 500, 500)
	for i := range a.Centers {
		if a.Centers[i] != b.Centers[i] || a.Radii[i] != b.Radii[i] {
			t.Fatalf("node %d differs between runs: %v/%v vs %v/%v", i, a.Centers[i], a.Radii[i], b.Centers[i], b.Radii[i])
		}
	}
}
