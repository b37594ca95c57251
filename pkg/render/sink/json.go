package sink

import (
	"encoding/json"

	"github.com/matzehuels/bubbletreemap/pkg/graph"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	indent      bool
	noContours  bool
	diagnostics bool
}

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

// WithJSONNodesOnly omits contour segments, leaving only positioned nodes.
func WithJSONNodesOnly() JSONOption { return func(r *jsonRenderer) { r.noContours = true } }

// WithJSONDiagnostics keeps degenerate groups, overlaps and contour
// failures in the output. They are dropped by default.
func WithJSONDiagnostics() JSONOption { return func(r *jsonRenderer) { r.diagnostics = true } }

// RenderJSON serializes the layout for external tools. The output can be
// read back with [graph.UnmarshalLayout].
func RenderJSON(l graph.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.noContours {
		l.Contours = nil
	}
	if !r.diagnostics {
		l.Degenerate, l.Overlaps, l.Failures = nil, nil, nil
	}
	if r.indent {
		return json.MarshalIndent(l, "", "  ")
	}
	return json.Marshal(l)
}
