// Package sink provides output format renderers for bubble treemaps.
//
// # Overview
//
// A "sink" transforms a computed [graph.Layout] into a final output format.
// This package provides renderers for:
//
//   - SVG: leaf bubbles and contour paths, optionally labelled
//   - PNG: raster output drawn natively with gg, or via rsvg-convert
//   - PDF: print-ready output (requires rsvg-convert)
//   - JSON: the layout itself, for external tools
//
// # SVG Output
//
// Leaves are drawn as filled circles in their node colour. Each contour
// segment becomes one path element whose stroke is a darker shade of the
// colour of the cluster it outlines and whose width grows with the
// uncertainty recorded for that cluster.
//
//	svg := sink.RenderSVG(l,
//	    sink.WithLabels(),
//	    sink.WithBackground("#ffffff"),
//	)
//
// # PNG Output
//
// [RenderPNG] rasterizes the same scene with gg, so no external tool is
// needed. [WithRSVG] switches to converting the SVG output instead, which
// gives identical text rendering between SVG and PNG.
package sink
