package layout_test

import (
	"testing"

	"github.com/matzehuels/bubbletreemap/pkg/hierarchy"
	"github.com/matzehuels/bubbletreemap/pkg/layout"
	"github.com/matzehuels/bubbletreemap/pkg/pack"
)

func ptr(v float64) *float64 { return &v }

func TestRunSeparatesClusters(t *testing.T) {
	if testing.Short() {
		t.Skip("runs a physics simulation")
	}

	tree, err := hierarchy.Build(hierarchy.Data{
		Name: "root",
		Children: []hierarchy.Data{
			{Name: "A", Children: []hierarchy.Data{{Name: "a1", Radius: ptr(20)}, {Name: "a2", Radius: ptr(12)}}},
			{Name: "B", Children: []hierarchy.Data{{Name: "b1", Radius: ptr(16)}}},
		},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	const padding = 10.0

	p := pack.Enclosure{}.Pack(tree, 800, 800)
	a1, _ := tree.Find("a1")
	a2, _ := tree.Find("a2")
	rigid := p.Centers[a1.ID].Distance(p.Centers[a2.ID])

	res, err := layout.NewEngine().Run(tree, p, padding, 800, 800)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(res.Overlaps) != 0 {
		t.Errorf("Overlaps = %+v, want none", res.Overlaps)
	}

	padOf := map[int]float64{}
	for _, c := range hierarchy.BuildClusters(tree.Root, 1, padding) {
		for _, m := range c.Members {
			padOf[m.Node.ID] = m.PlanckPadding
		}
	}
	b1, _ := tree.Find("b1")
	for _, a := range []*hierarchy.Node{a1, a2} {
		want := a.Radius + padOf[a.ID] + b1.Radius + padOf[b1.ID]
		if got := p.Centers[a.ID].Distance(p.Centers[b1.ID]); got < want-layout.DefaultTolerance {
			t.Errorf("%s-b1 distance = %v, want >= %v", a.Name, got, want)
		}
	}

	if got := p.Centers[a1.ID].Distance(p.Centers[a2.ID]); got < rigid-1e-6 || got > rigid+1e-6 {
		t.Errorf("a1-a2 distance = %v, want unchanged %v", got, rigid)
	}
}
