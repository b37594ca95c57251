package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/bubbletreemap/pkg/color"
	"github.com/matzehuels/bubbletreemap/pkg/hierarchy"
)

func ptr(v float64) *float64 { return &v }

func testTree(t *testing.T) *hierarchy.Tree {
	t.Helper()
	tree, err := hierarchy.Build(hierarchy.Data{
		Name: "root",
		Children: []hierarchy.Data{
			{Name: "a", Children: []hierarchy.Data{
				{Name: "a1", Value: ptr(4)},
				{Name: "a2", Value: ptr(9), Uncertainty: ptr(0.5)},
			}},
			{Name: "b", Value: ptr(16)},
		},
	})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return tree
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testTree(t), Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("unexpected prefix: %.40s", dot)
	}
	for _, want := range []string{
		`n0 [label="root"]`,
		`n2 [label="a1", shape=ellipse, style=filled]`,
		"n0 -> n1;",
		"n1 -> n2;",
		"n1 -> n3;",
		"n0 -> n4;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("missing %q in:\n%s", want, dot)
		}
	}
	if got := strings.Count(dot, "->"); got != 4 {
		t.Errorf("edge count = %d, want 4", got)
	}
}

func TestToDOTDetailed(t *testing.T) {
	tree := testTree(t)
	colors := color.Assign(tree, color.Palette{"#ff0000", "#00ff00"})
	dot := ToDOT(tree, Options{Detailed: true, Colors: colors})

	if !strings.Contains(dot, `label="a2\nvalue: 9\nradius: 9\nuncertainty: 0.5\ndepth: 2"`) {
		t.Errorf("missing detailed label in:\n%s", dot)
	}
	if !strings.Contains(dot, `fillcolor="#00ff00"`) {
		t.Error("missing assigned colour")
	}
	if strings.Contains(dot, `n0 [label="root\nvalue: 29\nradius: 29\ndepth: 0", fillcolor`) {
		t.Error("root should not be coloured")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(testTree(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
	if !strings.Contains(string(svg), "a1") {
		t.Error("output should contain node labels")
	}
}
