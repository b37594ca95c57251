package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bubbletreemap/pkg/graph"
	bio "github.com/matzehuels/bubbletreemap/pkg/io"
	"github.com/matzehuels/bubbletreemap/pkg/pipeline"
)

// layoutCommand creates the layout command for computing treemap layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		treeOut string
		flags   layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [hierarchy.json|hierarchy.yaml]",
		Short: "Compute a bubble treemap layout",
		Long: `Compute a bubble treemap layout.

The layout command reads a hierarchy (JSON or YAML, nested or flat), packs
and settles every level, colours the top-level groups and traces their
contours. The output is a layout.json file (same format as 'render -f json')
that can be rendered with 'render' or browsed with 'inspect'.

Results are cached locally for faster subsequent runs. Use "-" to read
from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			flags.apply(cmd, &opts)
			return c.runLayout(cmd.Context(), args[0], opts, output, treeOut, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&treeOut, "tree", "", "also write the resolved hierarchy (.json or .yaml)")
	flags.register(cmd.Flags())

	return cmd
}

// runLayout loads the hierarchy, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output, treeOut string, noCache bool) error {
	data, err := readInput(input, &opts)
	if err != nil {
		return err
	}
	tree, err := pipeline.Decode(ctx, data, opts)
	if err != nil {
		return wrapInput(input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, tree, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = outputBase("", input) + ".layout.json"
	}
	if err := graph.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	if treeOut != "" {
		if err := bio.WriteFile(tree, treeOut); err != nil {
			return fmt.Errorf("write hierarchy %s: %w", treeOut, err)
		}
		printFile(treeOut)
	}
	printStats(tree.Len(), len(tree.Leaves()), len(l.Contours), cacheHit)
	printDiagnostics(l)
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)

	return nil
}

// printDiagnostics warns about overlaps, degenerate groups and contour
// failures recorded in the layout.
func printDiagnostics(l graph.Layout) {
	if n := len(l.Overlaps); n > 0 {
		printWarning("%d leaf pairs still overlap", n)
	}
	if n := len(l.Degenerate); n > 0 {
		printWarning("%d groups had no mass and were centred on their plain average", n)
	}
	for _, f := range l.Failures {
		printWarning("contour of node %d at depth %d failed: %s", f.Parent, f.Depth, f.Error)
	}
}
