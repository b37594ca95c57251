// Package hierarchy holds the tree model that every layout stage reads.
//
// # Model
//
// A [Tree] owns a rooted tree of [Node] values. Each node carries the
// source data of a bubble: a display name, a numeric value, an optional
// explicit radius and an uncertainty margin. Nodes receive a dense integer
// ID in preorder, so downstream stages can store their results in plain
// slices indexed by node ID instead of writing fields back onto the tree.
//
// # Ingestion
//
// [Build] accepts the nested form:
//
//	{"name": "root", "children": [
//	    {"name": "a", "value": 12, "uncertainty": 2},
//	    {"name": "b", "radius": 8}
//	]}
//
// [FromFlat] accepts the stratified form, one row per node with a parent
// reference. Both validate the input and fail fast with an
// errors.ErrCodeInvalidHierarchy error. After ingestion every node has
// a finite, non-negative radius, value and uncertainty; a missing radius
// falls back to the value, and a missing internal value is the sum of the
// child values.
//
// # Clusters
//
// [BuildClusters] groups the leaves of the tree under each node of a given
// depth and computes the contour and physics clearances of every leaf.
// Clusters are recomputed on every call and never stored on the tree.
package hierarchy
