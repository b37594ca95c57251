// Package nodelink renders the input hierarchy as a node-link tree diagram.
//
// # Overview
//
// A bubble treemap hides the tree it was built from inside nested contours.
// This package draws that tree explicitly with Graphviz, which helps when
// checking values, radii or colours before a layout is run.
//
// # Usage
//
// Convert a tree to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(tree, nodelink.Options{Colors: colors})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: labels carry value, radius, uncertainty and depth
//   - Colors: fill each node with its assigned treemap colour
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG go through rsvg-convert.
package nodelink
