package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bubbletreemap/pkg/pipeline"
	"github.com/matzehuels/bubbletreemap/pkg/render/path"
)

// contourCommand prints the contour paths of a hierarchy without rendering.
func (c *CLI) contourCommand() *cobra.Command {
	var (
		asJSON bool
		flags  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "contour [hierarchy]",
		Short: "Print the contour paths of a hierarchy",
		Long: `Lay out a hierarchy and print its contour paths.

Each path is a zero-thickness ring sector centred on the origin plus a
translate transform, ready to paste into an SVG <path> element. Paths are
printed as SVG elements, or as a JSON array with --json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			flags.apply(cmd, &opts)
			return c.runContour(cmd.Context(), args[0], opts, asJSON, os.Stdout)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON array")
	flags.register(cmd.Flags())

	return cmd
}

func (c *CLI) runContour(ctx context.Context, input string, opts pipeline.Options, asJSON bool, w io.Writer) error {
	data, err := readInput(input, &opts)
	if err != nil {
		return err
	}
	tree, err := pipeline.Decode(ctx, data, opts)
	if err != nil {
		return wrapInput(input, err)
	}
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	tm := pipeline.NewTreemap(tree, opts)
	if err := tm.RunLayout(); err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	paths, err := tm.ComputeContours()
	if err != nil {
		return fmt.Errorf("compute contours: %w", err)
	}
	c.Logger.Debug("traced contours", "paths", len(paths))
	return writePaths(w, paths, asJSON)
}

func writePaths(w io.Writer, paths []path.Path, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if paths == nil {
			paths = []path.Path{}
		}
		return enc.Encode(paths)
	}
	for _, p := range paths {
		if _, err := fmt.Fprintf(w, "<path d=\"%s\" transform=\"%s\"/>\n", p.D, p.Transform); err != nil {
			return err
		}
	}
	return nil
}
