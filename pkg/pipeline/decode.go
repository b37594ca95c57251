package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/bubbletreemap/pkg/cache"
	"github.com/matzehuels/bubbletreemap/pkg/hierarchy"
	bio "github.com/matzehuels/bubbletreemap/pkg/io"
	"github.com/matzehuels/bubbletreemap/pkg/observability"
)

// Decode reads and validates a hierarchy.
func Decode(ctx context.Context, data []byte, opts Options) (*hierarchy.Tree, error) {
	if err := opts.ValidateForDecode(); err != nil {
		return nil, err
	}
	format := opts.InputFormat
	if format == bio.FormatAuto {
		format = bio.Detect(data)
	}

	hooks := observability.Pipeline()
	hooks.OnDecodeStart(ctx, format)
	start := time.Now()

	tree, err := bio.Decode(data, format)

	n := 0
	if tree != nil {
		n = tree.Len()
	}
	hooks.OnDecodeComplete(ctx, format, n, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("decoded hierarchy", "format", format, "nodes", n, "height", tree.Height())
	return tree, nil
}

// HierarchyHash hashes the resolved nested form of tree, so the same
// hierarchy hashes equal whether it came in as JSON or YAML, nested or flat.
func HierarchyHash(tree *hierarchy.Tree) (string, error) {
	return cache.HashJSON(tree.Data())
}
