package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/bubbletreemap/pkg/color"
	"github.com/matzehuels/bubbletreemap/pkg/errors"
	"github.com/matzehuels/bubbletreemap/pkg/graph"
	"github.com/matzehuels/bubbletreemap/pkg/hierarchy"
	"github.com/matzehuels/bubbletreemap/pkg/observability"
	"github.com/matzehuels/bubbletreemap/pkg/render/nodelink"
	"github.com/matzehuels/bubbletreemap/pkg/render/sink"
)

// Render generates output artifacts in the requested formats. tree is only
// needed for the DOT format and may be nil otherwise.
func Render(ctx context.Context, l graph.Layout, tree *hierarchy.Tree, opts Options) (artifacts map[string][]byte, err error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	svgOpts := buildSVGOptions(opts)
	artifacts = make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var rerr error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case FormatPNG:
			data, rerr = sink.RenderPNG(l, sink.WithScale(opts.Scale), sink.WithPNGSVGOptions(svgOpts...))
		case FormatPDF:
			data, rerr = sink.RenderPDF(l, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, rerr = sink.RenderJSON(l, sink.WithJSONIndent(), sink.WithJSONDiagnostics())
		case FormatDOT:
			if tree == nil {
				return nil, errors.New(errors.ErrCodeUnsupported, "dot output needs the hierarchy")
			}
			data = []byte(nodelink.ToDOT(tree, nodelink.Options{
				Detailed: opts.Detailed,
				Colors:   colorsOf(l),
			}))
		default:
			return nil, ValidateFormat(format)
		}

		if rerr != nil {
			return nil, fmt.Errorf("render %s: %w", format, rerr)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Labels {
		svgOpts = append(svgOpts, sink.WithLabels())
	}
	if opts.InternalNodes {
		svgOpts = append(svgOpts, sink.WithInternalNodes())
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}
	return svgOpts
}

// colorsOf recovers the colour assignment stored in a layout.
func colorsOf(l graph.Layout) color.Assignment {
	n := 0
	for _, node := range l.Nodes {
		n = max(n, node.ID+1)
	}
	out := make(color.Assignment, n)
	for _, node := range l.Nodes {
		out[node.ID] = node.Color
	}
	return out
}
