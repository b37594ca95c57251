// Package graph provides the serialization format of computed layouts.
//
// [Layout] is the wire format for a finished bubble treemap: canvas size,
// every node with its circle and colour, every contour segment as SVG path
// data, and the diagnostics the layout and contour stages reported. It is
// used for JSON files, API responses, the layout cache and the document
// store, which is why every field also carries a bson tag.
//
// Build a Layout with [NewLayout] from the outputs of the pipeline stages;
// read and write it with [MarshalLayout], [UnmarshalLayout],
// [WriteLayoutFile] and [ReadLayoutFile].
package graph
