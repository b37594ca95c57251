package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/bubbletreemap/pkg/bubbletreemap"
	"github.com/matzehuels/bubbletreemap/pkg/graph"
	"github.com/matzehuels/bubbletreemap/pkg/hierarchy"
	"github.com/matzehuels/bubbletreemap/pkg/layout"
	"github.com/matzehuels/bubbletreemap/pkg/observability"
	"github.com/matzehuels/bubbletreemap/pkg/physics"
	"github.com/matzehuels/bubbletreemap/pkg/render/path"
)

// =============================================================================
// Layout Generation
// =============================================================================

// ComputeLayout lays out, colours and outlines tree.
//
// Contour failures do not fail the layout; they are listed in the result's
// Failures next to the segments of every cluster that could be traced.
func ComputeLayout(ctx context.Context, tree *hierarchy.Tree, opts Options) (graph.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}
	tm := NewTreemap(tree, opts)
	hooks := observability.Pipeline()

	hooks.OnLayoutStart(ctx, tree.Len())
	start := time.Now()
	err := tm.RunLayout()
	if err == nil {
		err = tm.RunColoring()
	}
	hooks.OnLayoutComplete(ctx, tree.Len(), time.Since(start), err)
	if err != nil {
		return graph.Layout{}, err
	}
	res := tm.LayoutResult()
	opts.Logger.Debug("settled clusters",
		"simulations", res.Simulations,
		"overlaps", len(res.Overlaps),
		"degenerate", len(res.Degenerate),
		"duration", res.Duration)

	start = time.Now()
	l, err := tm.Layout()
	if err != nil {
		return graph.Layout{}, err
	}
	hooks.OnContourComplete(ctx, len(l.Contours), len(l.Failures), time.Since(start))
	for _, f := range l.Failures {
		opts.Logger.Warn("contour failed", "depth", f.Depth, "parent", f.Parent, "err", f.Error)
	}
	return l, nil
}

// NewTreemap configures a treemap for tree from validated options. The
// physics solver defaults to Box2D with opts.Physics.
func NewTreemap(tree *hierarchy.Tree, opts Options) *bubbletreemap.Treemap {
	spacing, _ := hierarchy.ParseSpacing(opts.Spacing)
	target, _ := layout.ParseTarget(opts.Target)

	solver := opts.Solver
	if solver == nil {
		b := physics.NewBox2D(opts.Physics)
		b.Logger = opts.Logger
		solver = b
	}

	return bubbletreemap.New(
		bubbletreemap.WithLogger(opts.Logger),
		bubbletreemap.WithSolver(solver),
		bubbletreemap.WithSpacing(spacing),
		bubbletreemap.WithTarget(target),
		bubbletreemap.WithPathFormatter(path.Formatter{Digits: opts.Precision}),
	).
		SetHierarchy(tree).
		SetPadding(*opts.Padding).
		SetCurvature(*opts.Curvature).
		SetCanvasSize(opts.Width, opts.Height).
		SetColormap(opts.Colormap)
}
