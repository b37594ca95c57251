package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bubbletreemap/pkg/graph"
	"github.com/matzehuels/bubbletreemap/pkg/pipeline"
)

// inspectCommand browses the nodes of a laid out hierarchy.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain bool
		flags layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "inspect [hierarchy|layout.json]",
		Short: "Browse the nodes of a layout interactively",
		Long: `Browse the nodes of a layout in an interactive terminal view.

The input is a hierarchy, which is laid out first, or a layout.json written
by 'layout'. With --plain the nodes are printed as a table instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			flags.apply(cmd, &opts)
			l, err := c.loadLayout(cmd.Context(), args[0], opts, flags.noCache)
			if err != nil {
				return err
			}
			if plain {
				fmt.Println(layoutTable(l))
				printDiagnostics(l)
				return nil
			}
			_, err = tea.NewProgram(NewNodeBrowserModel(l), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print a table instead of the interactive view")
	flags.register(cmd.Flags())

	return cmd
}

// loadLayout reads a layout.json, or lays out a hierarchy through the cache.
func (c *CLI) loadLayout(ctx context.Context, input string, opts pipeline.Options, noCache bool) (graph.Layout, error) {
	data, err := readInput(input, &opts)
	if err != nil {
		return graph.Layout{}, err
	}
	if isLayout(data) {
		l, err := graph.UnmarshalLayout(data)
		if err != nil {
			return graph.Layout{}, wrapInput(input, err)
		}
		return l, nil
	}

	tree, err := pipeline.Decode(ctx, data, opts)
	if err != nil {
		return graph.Layout{}, wrapInput(input, err)
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return graph.Layout{}, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	return runner.Layout(ctx, tree, opts)
}
