package color

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/bubbletreemap/pkg/errors"
	"github.com/matzehuels/bubbletreemap/pkg/hierarchy"
)

func v(f float64) *float64 { return &f }

func TestAssign(t *testing.T) {
	leaf := func(name string) hierarchy.Data { return hierarchy.Data{Name: name, Value: v(1)} }
	tree, err := hierarchy.Build(hierarchy.Data{
		Name: "root",
		Children: []hierarchy.Data{
			{Name: "a", Children: []hierarchy.Data{leaf("a1"), leaf("a2")}},
			leaf("b"),
			leaf("c"),
		},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	palette := Palette{"#111111", "#222222"}
	got := Assign(tree, palette)

	want := map[string]string{
		"root": "",
		"a":    "#111111", "a1": "#111111", "a2": "#111111",
		"b": "#222222",
		"c": "#111111", // wraps around: index 2 mod 2
	}
	for _, n := range tree.Nodes() {
		if got[n.ID] != want[n.Name] {
			t.Errorf("%s = %q, want %q", n.Name, got[n.ID], want[n.Name])
		}
	}

	// Every top-level child i gets palette[i mod m].
	for i, c := range tree.Root.Children {
		if got[c.ID] != palette[i%len(palette)] {
			t.Errorf("child %d = %q, want %q", i, got[c.ID], palette[i%len(palette)])
		}
	}

	if empty := Assign(tree, nil); !cmp.Equal(empty, make(Assignment, tree.Len())) {
		t.Errorf("Assign(nil) = %v, want all empty", empty)
	}
}

func TestParse(t *testing.T) {
	got, err := Parse([]string{"#FF0000", "#0f0"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if want := (Palette{"#ff0000", "#00ff00"}); !cmp.Equal(got, want) {
		t.Errorf("Parse() = %v, want %v", got, want)
	}

	if _, err := Parse([]string{"#ff0000", "tomato"}); !errors.Is(err, errors.ErrCodeInvalidColor) {
		t.Errorf("Parse(tomato) error = %v, want %s", err, errors.ErrCodeInvalidColor)
	}
}

func TestGenerate(t *testing.T) {
	p := Generate(6)
	if len(p) != 6 {
		t.Fatalf("len(Generate(6)) = %d", len(p))
	}
	if _, err := Parse(p); err != nil {
		t.Errorf("Generate() produced invalid colours: %v", err)
	}
	seen := map[string]bool{}
	for _, c := range p {
		if seen[c] {
			t.Errorf("duplicate colour %s", c)
		}
		seen[c] = true
	}
}

func TestShade(t *testing.T) {
	if got := Shade("#ffffff", 0); got != "#ffffff" {
		t.Errorf("Shade(white, 0) = %s, want #ffffff", got)
	}
	if got := Shade("#ffffff", 1); got != "#000000" {
		t.Errorf("Shade(white, 1) = %s, want #000000", got)
	}
	if got := Shade("nope", 0.5); got != "nope" {
		t.Errorf("Shade(invalid) = %s, want input back", got)
	}
}
