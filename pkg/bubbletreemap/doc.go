// Package bubbletreemap is the entry point for laying out and outlining a
// hierarchy as a bubble treemap.
//
// A [Treemap] holds the configuration (hierarchy, padding, curvature,
// canvas size and colour map) and runs the three stages in order:
//
//	tm := bubbletreemap.New().
//	    SetHierarchy(tree).
//	    SetPadding(10).
//	    SetCurvature(10).
//	    SetCanvasSize(800, 800).
//	    SetColormap(color.Category10)
//
//	if err := tm.RunLayout(); err != nil { ... }
//	if err := tm.RunColoring(); err != nil { ... }
//	paths, err := tm.ComputeContours()
//
// RunLayout packs the leaves and then separates the clusters of every
// level with a physics simulation, deepest level first. RunColoring gives
// each top-level branch a palette colour. ComputeContours traces a smooth
// outline around every cluster and returns the outlines as SVG paths.
//
// Stage outputs live next to the hierarchy rather than on it: positions in
// a [layout.Placement] and colours in a [color.Assignment], both indexed by
// node ID.
package bubbletreemap
