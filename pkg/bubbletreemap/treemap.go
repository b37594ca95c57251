package bubbletreemap

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bubbletreemap/pkg/color"
	"github.com/matzehuels/bubbletreemap/pkg/contour"
	"github.com/matzehuels/bubbletreemap/pkg/errors"
	"github.com/matzehuels/bubbletreemap/pkg/graph"
	"github.com/matzehuels/bubbletreemap/pkg/hierarchy"
	"github.com/matzehuels/bubbletreemap/pkg/layout"
	"github.com/matzehuels/bubbletreemap/pkg/pack"
	"github.com/matzehuels/bubbletreemap/pkg/physics"
	"github.com/matzehuels/bubbletreemap/pkg/render/path"
)

// Defaults for a new Treemap.
const (
	DefaultPadding   = 10.0
	DefaultCurvature = 10.0
	DefaultWidth     = 800.0
	DefaultHeight    = 800.0
)

// Treemap configures and runs a bubble treemap.
//
// Setters only store configuration. Stage results from an earlier run stay
// in place until the next RunLayout or RunColoring replaces them.
type Treemap struct {
	tree      *hierarchy.Tree
	padding   float64
	curvature float64
	width     float64
	height    float64
	colormap  []string

	logger  *log.Logger
	solver  physics.Solver
	packer  pack.Packer
	spacing hierarchy.Spacing
	target  layout.Target
	paths   path.Formatter

	placement *layout.Placement
	result    *layout.Result
	colors    color.Assignment
}

// Option configures a Treemap at construction.
type Option func(*Treemap)

// WithLogger sets the logger used by the layout stage.
func WithLogger(l *log.Logger) Option { return func(t *Treemap) { t.logger = l } }

// WithSolver replaces the default Box2D solver.
func WithSolver(s physics.Solver) Option { return func(t *Treemap) { t.solver = s } }

// WithPacker replaces the default enclosure packer.
func WithPacker(p pack.Packer) Option { return func(t *Treemap) { t.packer = p } }

// WithSpacing selects the inter-cluster spacing policy.
func WithSpacing(s hierarchy.Spacing) Option { return func(t *Treemap) { t.spacing = s } }

// WithTarget selects what cluster bodies are pulled towards.
func WithTarget(target layout.Target) Option { return func(t *Treemap) { t.target = target } }

// WithPathFormatter sets the number formatting of contour paths.
func WithPathFormatter(f path.Formatter) Option { return func(t *Treemap) { t.paths = f } }

// New returns a Treemap with the default configuration and no hierarchy.
func New(opts ...Option) *Treemap {
	t := &Treemap{
		padding:   DefaultPadding,
		curvature: DefaultCurvature,
		width:     DefaultWidth,
		height:    DefaultHeight,
		colormap:  []string{},
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
		paths:     path.Full,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// =============================================================================
// Configuration
// =============================================================================

func (t *Treemap) Hierarchy() *hierarchy.Tree { return t.tree }
func (t *Treemap) Padding() float64          { return t.padding }
func (t *Treemap) Curvature() float64        { return t.curvature }
func (t *Treemap) Width() float64            { return t.width }
func (t *Treemap) Height() float64           { return t.height }
func (t *Treemap) Colormap() []string        { return t.colormap }

func (t *Treemap) SetHierarchy(tree *hierarchy.Tree) *Treemap { t.tree = tree; return t }
func (t *Treemap) SetPadding(p float64) *Treemap              { t.padding = p; return t }
func (t *Treemap) SetCurvature(c float64) *Treemap            { t.curvature = c; return t }
func (t *Treemap) SetWidth(w float64) *Treemap                { t.width = w; return t }
func (t *Treemap) SetHeight(h float64) *Treemap               { t.height = h; return t }
func (t *Treemap) SetColormap(colors []string) *Treemap       { t.colormap = colors; return t }

// SetCanvasSize sets width and height together.
func (t *Treemap) SetCanvasSize(w, h float64) *Treemap {
	t.width, t.height = w, h
	return t
}

// =============================================================================
// Stages
// =============================================================================

// RunLayout packs the hierarchy and separates its clusters level by level.
// Every call starts from a fresh packing and simulation.
func (t *Treemap) RunLayout() error {
	if t.tree == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no hierarchy set")
	}
	if err := errors.ValidatePadding("padding", t.padding); err != nil {
		return err
	}
	if err := errors.ValidateCanvas(t.width, t.height); err != nil {
		return err
	}

	packer := t.packer
	if packer == nil {
		packer = pack.Enclosure{Padding: t.padding}
	}
	p := packer.Pack(t.tree, t.width, t.height)

	engine := layout.NewEngine()
	engine.Logger = t.logger
	engine.Spacing = t.spacing
	engine.Target = t.target
	if t.solver != nil {
		engine.Solver = t.solver
	}

	res, err := engine.Run(t.tree, p, t.padding, t.width, t.height)
	if err != nil {
		return err
	}
	t.placement, t.result = p, res
	return nil
}

// RunColoring assigns palette[i mod m] to the i-th top-level branch. The
// root stays uncoloured, as does everything when the colour map is empty.
func (t *Treemap) RunColoring() error {
	if t.tree == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no hierarchy set")
	}
	palette, err := color.Parse(t.colormap)
	if err != nil {
		return err
	}
	t.colors = color.Assign(t.tree, palette)
	return nil
}

// Segments traces the contours of every cluster of the laid-out hierarchy.
// Clusters that cannot be traced are listed in the result's Failures.
func (t *Treemap) Segments() (*contour.Result, error) {
	if err := t.requireLayout(); err != nil {
		return nil, err
	}
	if err := errors.ValidateNonNegative("curvature", t.curvature); err != nil {
		return nil, err
	}
	res := contour.TraceHierarchy(t.tree, t.placement, t.padding, t.curvature)
	for _, f := range res.Failures {
		t.logger.Warn("contour not traced", "depth", f.Depth, "parent", f.ParentID, "nodes", len(f.NodeIDs), "err", f.Err)
	}
	return res, nil
}

// ComputeContours returns the contour of every cluster as SVG paths, one
// per arc. It does not change the hierarchy or any stage output.
func (t *Treemap) ComputeContours() ([]path.Path, error) {
	res, err := t.Segments()
	if err != nil {
		return nil, err
	}
	out := make([]path.Path, len(res.Segments))
	for i, s := range res.Segments {
		out[i] = t.paths.Ring(s.Arc)
	}
	return out, nil
}

// Placement returns the positions from the last RunLayout, or nil.
func (t *Treemap) Placement() *layout.Placement { return t.placement }

// LayoutResult returns the diagnostics from the last RunLayout, or nil.
func (t *Treemap) LayoutResult() *layout.Result { return t.result }

// Colors returns the assignment from the last RunColoring, or nil.
func (t *Treemap) Colors() color.Assignment { return t.colors }

// Layout collects the current stage outputs into a serializable layout,
// tracing contours on the way.
func (t *Treemap) Layout() (graph.Layout, error) {
	segs, err := t.Segments()
	if err != nil {
		return graph.Layout{}, err
	}
	return graph.NewLayout(graph.Inputs{
		Tree:      t.tree,
		Placement: t.placement,
		Result:    t.result,
		Colors:    t.colors,
		Contours:  segs,
		Paths:     t.paths,
		Width:     t.width,
		Height:    t.height,
		Padding:   t.padding,
		Curvature: t.curvature,
	}), nil
}

func (t *Treemap) requireLayout() error {
	if t.tree == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no hierarchy set")
	}
	if t.placement == nil || !t.placement.Fits(t.tree) {
		return errors.New(errors.ErrCodeInvalidInput, "layout has not run for this hierarchy")
	}
	return nil
}
