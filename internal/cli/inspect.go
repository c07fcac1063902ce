package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arcgraph/pkg/pipeline"
)

// inspectCommand creates the inspect command, an interactive browser over
// the analyzed edges of a graph.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "inspect [graph.json]",
		Short: "Browse the analyzed edges of a graph",
		Long: `Browse the analyzed edges of a graph.

Shows every edge with its pair, ordinal, kind and arc metrics. Press enter to
toggle the sampled path of the selected edge.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions(cmd, &flags)
			return c.runInspect(cmd.Context(), args[0], opts, flags.noCache)
		},
	}

	flags.register(cmd)

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, opts pipeline.Options, noCache bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	g, err := pipeline.ParseFile(input)
	if err != nil {
		return fmt.Errorf("read graph: %w", err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	net, _, _, err := runner.Position(ctx, g, opts)
	if err != nil {
		return err
	}
	a := runner.Analyze(net, opts)

	m := NewRecordListModel(newRecordRows(a, opts.Segments))
	_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}
