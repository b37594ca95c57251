package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bubbletreemap/pkg/graph"
	"github.com/matzehuels/bubbletreemap/pkg/pipeline"
)

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output string
		flags  layoutFlags
		rflags renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [hierarchy|layout.json]",
		Short: "Render a hierarchy or layout to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a hierarchy or a precomputed layout.

Given a hierarchy, render runs the full pipeline: decode, layout and render.
Given a layout.json written by 'layout', it renders that layout as is; DOT
output needs the hierarchy and is not available in that case.

PDF output and --rsvg PNG output need rsvg-convert (librsvg).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			flags.apply(cmd, &opts)
			rflags.apply(cmd, &opts)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	flags.register(cmd.Flags())
	rflags.register(cmd.Flags())

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	data, err := readInput(input, &opts)
	if err != nil {
		return err
	}
	p := newProgress(c.Logger)

	var artifacts map[string][]byte
	if isLayout(data) {
		l, err := graph.UnmarshalLayout(data)
		if err != nil {
			return wrapInput(input, err)
		}
		c.Logger.Debug("rendering precomputed layout", "nodes", len(l.Nodes))
		artifacts, err = pipeline.Render(ctx, l, nil, opts)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		printSuccess("Rendered layout")
		printStats(len(l.Nodes), len(l.Leaves()), len(l.Contours), false)
	} else {
		runner, err := c.newRunner(ctx, noCache)
		if err != nil {
			return fmt.Errorf("initialize runner: %w", err)
		}
		defer runner.Close()

		spinner := newSpinnerWithContext(ctx, "Rendering...")
		spinner.Start()
		res, err := runner.Execute(ctx, data, opts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		spinner.Stop()
		artifacts = res.Artifacts

		printSuccess("Rendered %s", input)
		printStats(res.Stats.NodeCount, res.Stats.LeafCount, res.Stats.Segments, res.CacheInfo.LayoutHit)
		printDiagnostics(res.Layout)
	}

	paths, err := writeArtifacts(artifacts, opts.Formats, output, input)
	if err != nil {
		return err
	}
	for _, path := range paths {
		printFile(path)
	}
	p.done(fmt.Sprintf("Wrote %d file(s)", len(paths)))
	return nil
}

// writeArtifacts writes one file per format in order. A single format goes
// to output verbatim when given.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) ([]string, error) {
	var paths []string
	base := outputBase(output, input)
	for _, format := range formats {
		path := base + "." + format
		if len(formats) == 1 && output != "" {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
