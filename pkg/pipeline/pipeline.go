// Package pipeline provides the decode → layout → render pipeline shared by
// the CLI and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: read a JSON or YAML hierarchy, nested or flat, and validate it
//  2. Layout: pack, simulate, colour and trace contours
//  3. Render: produce SVG, PNG, PDF, JSON or DOT output
//
// Layouts are cached by hierarchy hash and layout options; artifacts are
// cached by layout hash and render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, data, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	tree, err := pipeline.Decode(ctx, data, opts)
//	l, hit, err := runner.LayoutWithCacheInfo(ctx, tree, opts)
//	artifacts, err := pipeline.Render(ctx, l, tree, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bubbletreemap/pkg/cache"
	"github.com/matzehuels/bubbletreemap/pkg/color"
	"github.com/matzehuels/bubbletreemap/pkg/errors"
	"github.com/matzehuels/bubbletreemap/pkg/graph"
	"github.com/matzehuels/bubbletreemap/pkg/hierarchy"
	bio "github.com/matzehuels/bubbletreemap/pkg/io"
	"github.com/matzehuels/bubbletreemap/pkg/layout"
	"github.com/matzehuels/bubbletreemap/pkg/physics"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Library
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 800.0

	// DefaultPadding is the default spacing unit per hierarchy level.
	DefaultPadding = 10.0

	// DefaultCurvature is the default fillet radius of contours.
	DefaultCurvature = 10.0

	// DefaultPrecision is the number of decimals in contour paths.
	DefaultPrecision = 3

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT}

// ContentTypes maps output formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// It supports JSON for API requests and TOML for config files.
type Options struct {
	// Input options
	InputFormat string `json:"input_format,omitempty" toml:"input_format"` // json, yaml or empty to detect

	// Layout options
	Width     float64        `json:"width,omitempty" toml:"width"`
	Height    float64        `json:"height,omitempty" toml:"height"`
	Padding   *float64       `json:"padding,omitempty" toml:"padding"`
	Curvature *float64       `json:"curvature,omitempty" toml:"curvature"`
	Spacing   string         `json:"spacing,omitempty" toml:"spacing"` // proportional or constant
	Target    string         `json:"target,omitempty" toml:"target"`   // centroid or canvas
	Colormap  []string       `json:"colormap,omitempty" toml:"colormap"`
	Precision int            `json:"precision,omitempty" toml:"precision"` // Path decimals; -1 for full precision
	Physics   physics.Config `json:"physics,omitempty" toml:"physics"`

	// Render options
	Formats       []string `json:"formats,omitempty" toml:"formats"`
	Labels        bool     `json:"labels,omitempty" toml:"labels"`
	InternalNodes bool     `json:"internal_nodes,omitempty" toml:"internal_nodes"`
	Background    string   `json:"background,omitempty" toml:"background"`
	Scale         float64  `json:"scale,omitempty" toml:"scale"`
	Detailed      bool     `json:"detailed,omitempty" toml:"detailed"` // DOT labels with values

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty" toml:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger    `json:"-" toml:"-"`
	Solver physics.Solver `json:"-" toml:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string

	// Tree is the decoded hierarchy.
	Tree *hierarchy.Tree

	// HierarchyHash is the content hash of the tree, independent of the
	// input format.
	HierarchyHash string

	// Layout is the positioned and outlined treemap.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LeafCount  int
	Depth      int
	Segments   int
	DecodeTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, ValidFormats)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateInputFormat checks that an input format is valid. Empty means
// detect from content.
func ValidateInputFormat(format string) error {
	if format == bio.FormatAuto {
		return nil
	}
	return errors.ValidateFormat(format, bio.Formats)
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for the
// full pipeline. Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForDecode(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForDecode checks the input options.
func (o *Options) ValidateForDecode() error {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return ValidateInputFormat(o.InputFormat)
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Padding == nil {
		p := DefaultPadding
		o.Padding = &p
	}
	if o.Curvature == nil {
		c := DefaultCurvature
		o.Curvature = &c
	}
	if o.Colormap == nil {
		o.Colormap = append([]string(nil), color.Category10...)
	}
	if o.Precision == 0 {
		o.Precision = DefaultPrecision
	}
	o.Physics.SetDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateCanvas(o.Width, o.Height); err != nil {
		return err
	}
	if err := errors.ValidatePadding("padding", *o.Padding); err != nil {
		return err
	}
	if err := errors.ValidatePadding("curvature", *o.Curvature); err != nil {
		return err
	}
	if _, ok := hierarchy.ParseSpacing(o.Spacing); !ok {
		return errors.New(errors.ErrCodeInvalidOption, "invalid spacing: %q (must be one of: proportional, constant)", o.Spacing)
	}
	if _, ok := layout.ParseTarget(o.Target); !ok {
		return errors.New(errors.ErrCodeInvalidOption, "invalid target: %q (must be one of: centroid, canvas)", o.Target)
	}
	if _, err := color.Parse(o.Colormap); err != nil {
		return err
	}
	if o.Precision < -1 {
		return errors.New(errors.ErrCodeInvalidOption, "precision must be -1 or more, got %d", o.Precision)
	}
	return o.Physics.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Background != "" {
		if _, err := color.Parse([]string{o.Background}); err != nil {
			return err
		}
	}
	return errors.ValidatePositive("scale", o.Scale)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	physicsHash, _ := cache.HashJSON(o.Physics)
	return cache.LayoutKeyOpts{
		Width:     o.Width,
		Height:    o.Height,
		Padding:   deref(o.Padding),
		Curvature: deref(o.Curvature),
		Spacing:   o.Spacing,
		Target:    o.Target,
		Colormap:  o.Colormap,
		Precision: o.Precision,
		Physics:   physicsHash,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:     format,
		Labels:     o.Labels,
		Internal:   o.InternalNodes,
		Background: o.Background,
	}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
	case FormatDOT:
		k.Labels = o.Detailed
	}
	return k
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Float returns a pointer to v, for the pointer fields of Options.
func Float(v float64) *float64 { return &v }

func (o Options) String() string {
	return fmt.Sprintf("%gx%g padding=%g curvature=%g formats=%v",
		o.Width, o.Height, deref(o.Padding), deref(o.Curvature), o.Formats)
}
