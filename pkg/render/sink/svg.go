package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/bubbletreemap/pkg/color"
	"github.com/matzehuels/bubbletreemap/pkg/graph"
)

const (
	// DefaultFill is used for leaves without an assigned colour.
	DefaultFill = "#cccccc"
	// DefaultStroke is used for contours of uncoloured clusters.
	DefaultStroke = "#333333"
	// DefaultFillOpacity is the opacity of leaf bubbles.
	DefaultFillOpacity = 0.8
	// DefaultShade is how much contour strokes are darkened.
	DefaultShade = 0.35
)

const bubbleCSS = `
    .bubble { stroke: none; }
    .bubble.internal { fill: none; stroke: #999999; stroke-dasharray: 2 2; }
    .contour { fill: none; stroke-linecap: round; }
    .contour.fillet { stroke-linejoin: round; }
    .label { font-family: sans-serif; text-anchor: middle; dominant-baseline: central; pointer-events: none; }`

const bubbleInteractionJS = `
    document.querySelectorAll('.bubble').forEach(el => {
      el.addEventListener('mouseenter', () => el.setAttribute('fill-opacity', '1'));
      el.addEventListener('mouseleave', () => el.setAttribute('fill-opacity', el.dataset.opacity));
    });`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels      bool
	internal    bool
	interactive bool
	background  string
	fillOpacity float64
	shade       float64
}

// WithLabels draws each leaf's name at its centre.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithInternalNodes outlines the enclosing circles of internal nodes.
func WithInternalNodes() SVGOption { return func(r *svgRenderer) { r.internal = true } }

// WithInteraction adds hover highlighting of leaves.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// WithBackground fills the canvas with c.
func WithBackground(c string) SVGOption { return func(r *svgRenderer) { r.background = c } }

// WithFillOpacity sets the leaf bubble opacity.
func WithFillOpacity(a float64) SVGOption { return func(r *svgRenderer) { r.fillOpacity = a } }

// WithShade sets how much contour strokes are darkened, in [0, 1].
func WithShade(s float64) SVGOption { return func(r *svgRenderer) { r.shade = s } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{fillOpacity: DefaultFillOpacity, shade: DefaultShade}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG renders the layout as an SVG document.
func RenderSVG(l graph.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", bubbleCSS)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect class="background" width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}

	renderBubbles(&buf, &r, l)
	renderContours(&buf, &r, l)
	if r.labels {
		renderLabels(&buf, l)
	}
	if r.interactive {
		fmt.Fprintf(&buf, "  <script><![CDATA[%s\n  ]]></script>\n", bubbleInteractionJS)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderBubbles(buf *bytes.Buffer, r *svgRenderer, l graph.Layout) {
	buf.WriteString(`  <g class="bubbles">` + "\n")
	if r.internal {
		for _, n := range l.Nodes {
			if n.Leaf || n.Parent < 0 {
				continue
			}
			fmt.Fprintf(buf, `    <circle class="bubble internal" id="node-%d" cx="%.2f" cy="%.2f" r="%.2f"/>`+"\n",
				n.ID, n.X, n.Y, n.R)
		}
	}
	for _, n := range l.Leaves() {
		fmt.Fprintf(buf, `    <circle class="bubble" id="node-%d" cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.2f" data-opacity="%.2f">`,
			n.ID, n.X, n.Y, n.R, fillOf(n), r.fillOpacity, r.fillOpacity)
		fmt.Fprintf(buf, "<title>%s</title></circle>\n", escapeXML(n.Name))
	}
	buf.WriteString("  </g>\n")
}

func renderContours(buf *bytes.Buffer, r *svgRenderer, l graph.Layout) {
	if len(l.Contours) == 0 {
		return
	}
	buf.WriteString(`  <g class="contours">` + "\n")
	for _, c := range l.Contours {
		fmt.Fprintf(buf, `    <path class="contour %s" d="%s" transform="%s" stroke="%s" stroke-width="%.2f" data-depth="%d" data-parent="%d"/>`+"\n",
			c.Kind, c.D, c.Transform, strokeOf(c, r.shade), strokeWidth(c), c.Depth, c.Parent)
	}
	buf.WriteString("  </g>\n")
}

func renderLabels(buf *bytes.Buffer, l graph.Layout) {
	buf.WriteString(`  <g class="labels">` + "\n")
	for _, n := range l.Leaves() {
		if n.Name == "" {
			continue
		}
		fmt.Fprintf(buf, `    <text class="label" x="%.2f" y="%.2f" font-size="%.1f">%s</text>`+"\n",
			n.X, n.Y, labelSize(n.R), escapeXML(n.Name))
	}
	buf.WriteString("  </g>\n")
}

func fillOf(n graph.Node) string {
	if n.Color == "" {
		return DefaultFill
	}
	return n.Color
}

func strokeOf(c graph.Contour, shade float64) string {
	if c.Color == "" {
		return DefaultStroke
	}
	return color.Shade(c.Color, shade)
}

func strokeWidth(c graph.Contour) float64 {
	if c.StrokeWidth <= 0 {
		return 1
	}
	return c.StrokeWidth
}

// labelSize scales text with the bubble and clamps it to a readable range.
func labelSize(r float64) float64 {
	return max(6, min(16, r/3))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
