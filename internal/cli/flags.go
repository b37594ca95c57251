package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/bubbletreemap/pkg/pipeline"
)

// layoutFlags holds the flags shared by every command that lays out a
// hierarchy. Values are applied only when set on the command line, so
// config file defaults survive.
type layoutFlags struct {
	input     string
	width     float64
	height    float64
	padding   float64
	curvature float64
	spacing   string
	target    string
	colormap  []string
	precision int
	steps     int
	noCache   bool
	refresh   bool
}

func (f *layoutFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.input, "input-format", "", "input format: json, yaml (default: detect)")
	fs.Float64Var(&f.width, "width", pipeline.DefaultWidth, "canvas width")
	fs.Float64Var(&f.height, "height", pipeline.DefaultHeight, "canvas height")
	fs.Float64Var(&f.padding, "padding", pipeline.DefaultPadding, "spacing unit per hierarchy level")
	fs.Float64Var(&f.curvature, "curvature", pipeline.DefaultCurvature, "contour fillet radius")
	fs.StringVar(&f.spacing, "spacing", "", "cluster spacing: proportional (default), constant")
	fs.StringVar(&f.target, "target", "", "attraction target: centroid (default), canvas")
	fs.StringSliceVar(&f.colormap, "colormap", nil, "palette of hex colours (comma-separated)")
	fs.IntVar(&f.precision, "precision", pipeline.DefaultPrecision, "decimals in contour paths, -1 for full precision")
	fs.IntVar(&f.steps, "steps", 0, "physics steps per simulation")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "ignore cached results")
}

// apply copies flags the user set onto opts.
func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fs := cmd.Flags()
	if fs.Changed("input-format") {
		opts.InputFormat = f.input
	}
	if fs.Changed("width") {
		opts.Width = f.width
	}
	if fs.Changed("height") {
		opts.Height = f.height
	}
	if fs.Changed("padding") {
		opts.Padding = pipeline.Float(f.padding)
	}
	if fs.Changed("curvature") {
		opts.Curvature = pipeline.Float(f.curvature)
	}
	if fs.Changed("spacing") {
		opts.Spacing = f.spacing
	}
	if fs.Changed("target") {
		opts.Target = f.target
	}
	if fs.Changed("colormap") {
		opts.Colormap = f.colormap
	}
	if fs.Changed("precision") {
		opts.Precision = f.precision
	}
	if fs.Changed("steps") {
		opts.Physics.Steps = f.steps
	}
	opts.Refresh = f.refresh
}

// renderFlags holds the output flags of the render command.
type renderFlags struct {
	formats    string
	labels     bool
	internal   bool
	background string
	scale      float64
	detailed   bool
}

func (f *renderFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	fs.BoolVar(&f.labels, "labels", false, "label leaf bubbles")
	fs.BoolVar(&f.internal, "internal", false, "draw internal nodes as dashed outlines")
	fs.StringVar(&f.background, "background", "", "background colour (default: transparent)")
	fs.Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	fs.BoolVar(&f.detailed, "detailed", false, "show values in DOT labels")
}

func (f *renderFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fs := cmd.Flags()
	if fs.Changed("format") || len(opts.Formats) == 0 {
		opts.Formats = parseFormats(f.formats)
	}
	if fs.Changed("labels") {
		opts.Labels = f.labels
	}
	if fs.Changed("internal") {
		opts.InternalNodes = f.internal
	}
	if fs.Changed("background") {
		opts.Background = f.background
	}
	if fs.Changed("scale") {
		opts.Scale = f.scale
	}
	if fs.Changed("detailed") {
		opts.Detailed = f.detailed
	}
}
