// Package io reads and writes hierarchies in JSON and YAML.
//
// # Overview
//
// Two input shapes are accepted in either format.
//
// The nested form is a single object whose children are listed inline:
//
//	{
//	  "name": "root",
//	  "children": [
//	    {"name": "a", "value": 4, "uncertainty": 0.5},
//	    {"name": "b", "children": [{"name": "b1", "radius": 3}]}
//	  ]
//	}
//
// The flat (stratified) form is an array of rows that point at their parent
// by id. The root is the row without a parent:
//
//	- {id: root}
//	- {id: a, parent: root, value: 4}
//	- {id: b, parent: root}
//	- {id: b1, parent: b, radius: 3}
//
// # Node Fields
//
//   - name: display name (flat rows fall back to id)
//   - value: size of the node; internal nodes default to the sum of children
//   - radius: circle radius; defaults to value
//   - uncertainty: widens the contour and collision margin around the node
//
// Every leaf needs a value or a radius. Negative or non-finite numbers are
// rejected, as are cycles and rows pointing at unknown parents.
//
// # Formats
//
// [ReadHierarchy] takes "json", "yaml" or "" to detect the format from the
// content. [ReadFile] picks the format from the file extension.
// [WriteHierarchy] always writes the nested form, which reads back into an
// identical tree.
package io
