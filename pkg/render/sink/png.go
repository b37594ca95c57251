package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/bubbletreemap/pkg/color"
	"github.com/matzehuels/bubbletreemap/pkg/errors"
	"github.com/matzehuels/bubbletreemap/pkg/graph"
	"github.com/matzehuels/bubbletreemap/pkg/render"
)

// DefaultScale renders PNGs at twice the layout resolution.
const DefaultScale = 2.0

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
	rsvg    bool
}

// WithPNGSVGOptions passes options through to the SVG renderer. Options that
// only make sense for SVG, such as interaction, are ignored by the native
// rasterizer.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithRSVG converts the SVG output with rsvg-convert instead of drawing
// natively.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func WithRSVG() PNGOption {
	return func(r *pngRenderer) { r.rsvg = true }
}

// RenderPNG renders the layout as PNG.
func RenderPNG(l graph.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}
	if err := errors.ValidatePositive("scale", r.scale); err != nil {
		return nil, err
	}
	if r.rsvg {
		return render.ToPNG(RenderSVG(l, r.svgOpts...), r.scale)
	}
	return rasterize(l, newSVGRenderer(r.svgOpts...), r.scale)
}

func rasterize(l graph.Layout, style svgRenderer, scale float64) ([]byte, error) {
	w := int(math.Ceil(l.Width * scale))
	h := int(math.Ceil(l.Height * scale))
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidOption, "canvas %gx%g is empty", l.Width, l.Height)
	}

	dc := gg.NewContext(w, h)
	dc.Scale(scale, scale)

	if style.background != "" {
		setColor(dc, style.background, 1)
		dc.Clear()
	}

	if style.internal {
		dc.SetRGB(0.6, 0.6, 0.6)
		dc.SetLineWidth(0.5)
		dc.SetDash(2, 2)
		for _, n := range l.Nodes {
			if n.Leaf || n.Parent < 0 {
				continue
			}
			dc.NewSubPath()
			dc.DrawCircle(n.X, n.Y, n.R)
			dc.Stroke()
		}
		dc.SetDash()
	}

	for _, n := range l.Leaves() {
		setColor(dc, fillOf(n), style.fillOpacity)
		dc.DrawCircle(n.X, n.Y, n.R)
		dc.Fill()
	}

	dc.SetLineCapRound()
	for _, c := range l.Contours {
		stroke := DefaultStroke
		if c.Color != "" {
			stroke = color.Shade(c.Color, style.shade)
		}
		setColor(dc, stroke, 1)
		dc.SetLineWidth(strokeWidth(c))
		drawArc(dc, c.Arc)
		dc.Stroke()
	}

	if style.labels {
		dc.SetRGB(0, 0, 0)
		for _, n := range l.Leaves() {
			if n.Name != "" {
				dc.DrawStringAnchored(n.Name, n.X, n.Y, 0.5, 0.5)
			}
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// drawArc adds a contour arc to the current path. Contour angles start at
// 12 o'clock while gg starts at 3 o'clock, both turning clockwise on screen.
func drawArc(dc *gg.Context, a graph.Arc) {
	if a.R <= 0 {
		return
	}
	dc.NewSubPath()
	dc.DrawArc(a.X, a.Y, a.R, a.Start-math.Pi/2, a.End-math.Pi/2)
}

func setColor(dc *gg.Context, hex string, alpha float64) {
	c, err := colorful.Hex(hex)
	if err != nil {
		c = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	}
	dc.SetRGBA(c.R, c.G, c.B, alpha)
}
