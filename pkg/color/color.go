// Package color assigns palette colours to hierarchy nodes.
//
// The i-th child of the root and its whole subtree take palette[i mod m];
// the root itself stays uncoloured. Palettes are hex strings validated and
// normalized with go-colorful.
package color

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/bubbletreemap/pkg/errors"
	"github.com/matzehuels/bubbletreemap/pkg/hierarchy"
)

// Palette is an ordered list of "#rrggbb" colours.
type Palette []string

// Assignment maps node IDs to colours. Uncoloured nodes hold "".
type Assignment []string

// Category10 is the classic ten-colour categorical palette.
var Category10 = Palette{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Parse validates colours and normalizes them to lowercase "#rrggbb".
// Both "#rgb" and "#rrggbb" are accepted.
func Parse(colors []string) (Palette, error) {
	out := make(Palette, len(colors))
	for i, s := range colors {
		c, err := colorful.Hex(expand(s))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidColor, err, "colour %d (%q)", i, s)
		}
		out[i] = c.Hex()
	}
	return out, nil
}

func expand(s string) string {
	if len(s) == 4 && s[0] == '#' {
		return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	return s
}

// Generate returns n colours of equal lightness and chroma with hues
// spread evenly around the circle.
func Generate(n int) Palette {
	out := make(Palette, n)
	for i := range out {
		h := 360 * float64(i) / float64(n)
		out[i] = colorful.Hcl(h, 0.45, 0.65).Clamped().Hex()
	}
	return out
}

// Assign colours tree with palette. An empty palette leaves every node
// uncoloured.
func Assign(tree *hierarchy.Tree, palette Palette) Assignment {
	out := make(Assignment, tree.Len())
	if len(palette) == 0 {
		return out
	}
	for i, child := range tree.Root.Children {
		c := palette[i%len(palette)]
		child.Walk(func(n *hierarchy.Node) { out[n.ID] = c })
	}
	return out
}

// Shade darkens hex by amount in [0, 1] by blending towards black in Lab
// space. Invalid input is returned unchanged.
func Shade(hex string, amount float64) string {
	c, err := colorful.Hex(expand(hex))
	if err != nil {
		return hex
	}
	amount = math.Max(0, math.Min(1, amount))
	return c.BlendLab(colorful.Color{}, amount).Clamped().Hex()
}
