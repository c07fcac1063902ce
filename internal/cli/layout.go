package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arcgraph/pkg/graph"
	"github.com/matzehuels/arcgraph/pkg/pipeline"
)

// layoutCommand creates the layout command, which computes node positions
// without analyzing edges.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  pipelineFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute node positions for a graph",
		Long: `Compute node positions for a graph.

The layout command places the graph's unpositioned nodes (or all nodes with
--force) and writes the positions as <input>.layout.json. Layouts are cached
by graph content, engine and scale.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions(cmd, &flags)
			return c.runLayout(cmd.Context(), args[0], output, opts, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input, output string, opts pipeline.Options, noCache bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger, "layout")

	g, err := pipeline.ParseFile(input)
	if err != nil {
		return fmt.Errorf("read graph: %w", err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()
	net, l, hit, err := runner.Position(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		prog.fail(err)
		return err
	}
	spinner.Stop()

	if l == nil {
		// Every node already had coordinates; report them as they are.
		l = &graph.Layout{Engine: "none"}
		for _, id := range net.Nodes() {
			if v, ok := net.Position(id); ok {
				l.Positions = append(l.Positions, graph.Position{ID: string(id), X: v.X, Y: v.Y, Z: v.Z})
			}
		}
	}

	if output == "" {
		output = outputPath(input, ".layout.json")
	}
	if err := graph.WriteLayoutFile(*l, output); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}

	prog.done(fmt.Sprintf("Placed %d nodes with %s", len(l.Positions), l.Engine))
	printSuccess("Layout written")
	printFile(output)
	printStats(len(net.Nodes()), len(net.Edges()), hit)
	return nil
}
