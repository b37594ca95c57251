// Package pkg provides the libraries behind bubbletreemap.
//
// # Overview
//
// A bubble treemap draws a hierarchy as nested clusters of circles. Leaves
// are circles whose area follows their value; every inner node is drawn as a
// smooth contour around its descendants, with spacing that grows towards the
// root. The pkg directory is organized into four areas:
//
//  1. Model: [hierarchy], [io], [geom]
//  2. Algorithms: [pack], [physics], [layout], [contour], [color]
//  3. Output: [graph], [render], [render/sink], [render/nodelink], [render/path]
//  4. Infrastructure: [pipeline], [cache], [storage], [config], [observability]
//
// # Architecture
//
// The data flow through a layout:
//
//	hierarchy.json / hierarchy.yaml
//	         ↓
//	    [io] package (decode, build the tree)
//	         ↓
//	    [pack] package (initial front-chain packing)
//	         ↓
//	    [layout] + [physics] (settle each level bottom-up)
//	         ↓
//	    [contour] package (trace outlines of inner nodes)
//	         ↓
//	    [graph] Layout → [render/sink] (SVG, PNG, PDF, JSON)
//
// # Quick Start
//
//	tree, _ := io.ReadFile("hierarchy.json")
//	tm := bubbletreemap.New().SetHierarchy(tree).SetCanvasSize(800, 600)
//	if err := tm.RunLayout(); err != nil {
//	    return err
//	}
//	_ = tm.RunColoring()
//	l, _ := tm.Layout()
//	svg := sink.RenderSVG(l, sink.WithLabels())
//
// The [pipeline] package wraps these steps with option validation and
// caching, and is what the CLI and HTTP API call.
//
// [hierarchy]: https://pkg.go.dev/github.com/matzehuels/bubbletreemap/pkg/hierarchy
// [io]: https://pkg.go.dev/github.com/matzehuels/bubbletreemap/pkg/io
// [geom]: https://pkg.go.dev/github.com/matzehuels/bubbletreemap/pkg/geom
// [pack]: https://pkg.go.dev/github.com/matzehuels/bubbletreemap/pkg/pack
// [physics]: https://pkg.go.dev/github.com/matzehuels/bubbletreemap/pkg/physics
// [layout]: https://pkg.go.dev/github.com/matzehuels/bubbletreemap/pkg/layout
// [contour]: https://pkg.go.dev/github.com/matzehuels/bubbletreemap/pkg/contour
// [color]: https://pkg.go.dev/github.com/matzehuels/bubbletreemap/pkg/color
// [graph]: https://pkg.go.dev/github.com/matzehuels/bubbletreemap/pkg/graph
// [render]: https://pkg.go.dev/github.com/matzehuels/bubbletreemap/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/bubbletreemap/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/bubbletreemap/pkg/render/nodelink
// [render/path]: https://pkg.go.dev/github.com/matzehuels/bubbletreemap/pkg/render/path
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/bubbletreemap/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/bubbletreemap/pkg/cache
// [storage]: https://pkg.go.dev/github.com/matzehuels/bubbletreemap/pkg/storage
// [config]: https://pkg.go.dev/github.com/matzehuels/bubbletreemap/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/bubbletreemap/pkg/observability
package pkg
