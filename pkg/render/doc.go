// Package render provides output rendering for bubble treemap layouts.
//
// # Overview
//
// This package contains the rendering side of the pipeline. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Output sinks for computed layouts (in [sink] subpackage)
//   - Contour path data (in [path] subpackage)
//   - Hierarchy node-link diagrams (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := sink.RenderSVG(l)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// The [sink] package also draws PNG natively with gg, which needs no
// external tool.
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the input hierarchy as a tree diagram
// using Graphviz, which helps when checking what a treemap was built from.
//
//	dot := nodelink.ToDOT(tree, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
package render
