// Package contour traces the smooth outline around a cluster of circles.
//
// [Trace] inflates every circle by the curvature, walks the outer boundary
// of the inflated set clockwise from its leftmost point, and turns the walk
// into two kinds of arcs: circle arcs along the original circles between
// consecutive boundary vertices, and fillet arcs of radius curvature that
// round off each vertex. Disconnected parts of a cluster get one outline
// each; a lone circle gets a full-turn arc.
//
// [TraceHierarchy] outlines every cluster of every depth of a laid out
// tree. A cluster whose boundary walk fails is recorded as a [Failure] and
// the remaining clusters are still traced.
package contour
