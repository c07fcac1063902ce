package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arcgraph/pkg/graph"
	"github.com/matzehuels/arcgraph/pkg/pipeline"
	"github.com/matzehuels/arcgraph/pkg/scene"
)

// analyzeCommand creates the analyze command, which writes the edge scene of
// a graph as JSON.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		output string
		flags  pipelineFlags
	)

	cmd := &cobra.Command{
		Use:   "analyze [graph.json]",
		Short: "Compute edge geometry for a graph",
		Long: `Compute edge geometry for a graph.

Nodes without coordinates are placed with the layout engine first. Every edge
is then classified as straight, curved or self-loop, and the resulting scene
(positions, arc metrics and sampled paths) is written as JSON.

Pass "-" to read the graph from stdin. Use -o - to write the scene to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions(cmd, &flags)
			opts.Formats = []string{scene.FormatJSON}
			return c.runAnalyze(cmd.Context(), args[0], output, opts, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.scene.json, - for stdout)")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runAnalyze(ctx context.Context, input, output string, opts pipeline.Options, noCache bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger, "analyze")

	g, err := pipeline.ParseFile(input)
	if err != nil {
		return fmt.Errorf("read graph: %w", err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Analyzing edges...")
	spinner.Start()
	result, err := runner.Execute(ctx, g, opts)
	spinner.Stop()
	if err != nil {
		prog.fail(err)
		return err
	}

	data := result.Artifacts[scene.FormatJSON]
	if output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if output == "" {
		output = outputPath(input, ".scene.json")
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}

	prog.done(fmt.Sprintf("Analyzed %d edges", result.Scene.Stats.Records))
	printSuccess("Scene written")
	printFile(output)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit)
	printSceneStats(result.Scene.Stats)
	if n := result.Scene.Stats.Degenerate; n > 0 {
		printWarning("%d edges are not drawable (unresolved or coincident endpoints)", n)
	}
	printNewline()
	printNextStep("Preview", fmt.Sprintf("%s render %s -f svg", appName, input))
	return nil
}

// sceneSummary returns a one-line description of a scene for log output.
func sceneSummary(s graph.Scene) string {
	st := s.Stats
	return fmt.Sprintf("%d records: %d straight, %d curved, %d self-loops", st.Records, st.Straight, st.Curved, st.SelfLoops)
}
