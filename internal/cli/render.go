package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arcgraph/pkg/graph"
	"github.com/matzehuels/arcgraph/pkg/pipeline"
	"github.com/matzehuels/arcgraph/pkg/scene"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string // base path; each format is written to <base>.<format>
	formats    string // comma-separated: svg, json, dot
	layoutFile string // precomputed layout applied before analysis
}

// renderCommand creates the render command, which runs the full pipeline and
// writes one file per output format.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		ro    renderOpts
		flags pipelineFlags
	)

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a graph to SVG, JSON or DOT",
		Long: `Render a graph to SVG, JSON or DOT.

The graph is positioned and analyzed, then exported in every requested format:

  svg   top-down preview of nodes and edge paths
  json  the edge scene, as written by 'analyze'
  dot   Graphviz source with the computed positions pinned

A layout written by 'arcgraph layout' can be supplied with --layout; its
positions replace the graph's before analysis.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions(cmd, &flags)
			opts.Formats = parseFormats(ro.formats)
			return c.runRender(cmd.Context(), args[0], ro, opts, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output base path (default: input path without extension)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "svg", "output formats, comma-separated: svg, json, dot")
	cmd.Flags().StringVarP(&ro.layoutFile, "layout", "l", "", "apply positions from a layout file")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, ro renderOpts, opts pipeline.Options, noCache bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger, "render")

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	g, err := pipeline.ParseFile(input)
	if err != nil {
		return fmt.Errorf("read graph: %w", err)
	}
	if ro.layoutFile != "" {
		if g, err = applyLayoutFile(g, ro.layoutFile); err != nil {
			return err
		}
		logger.Debug("applied layout", "file", ro.layoutFile)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()
	result, err := runner.Execute(ctx, g, opts)
	spinner.Stop()
	if err != nil {
		prog.fail(err)
		return err
	}
	logger.Debug(sceneSummary(result.Scene))

	base := ro.output
	if base == "" {
		base = outputPath(input, "")
	}
	for _, f := range scene.Formats() {
		base = strings.TrimSuffix(base, "."+f)
	}

	paths := make([]string, 0, len(opts.Formats))
	for _, f := range opts.Formats {
		path := base + "." + f
		if err := os.WriteFile(path, result.Artifacts[f], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", f, err)
		}
		paths = append(paths, path)
	}

	prog.done(fmt.Sprintf("Rendered %d formats", len(paths)))
	printSuccess("Rendered %s", strings.Join(opts.Formats, ", "))
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit && result.CacheInfo.ExportHit)
	return nil
}

// applyLayoutFile returns a copy of g with the positions from the layout at
// path. Positions in the file override coordinates already in g.
func applyLayoutFile(g graph.Graph, path string) (graph.Graph, error) {
	l, err := graph.ReadLayoutFile(path)
	if err != nil {
		return graph.Graph{}, err
	}
	net, err := graph.NewNetwork(g)
	if err != nil {
		return graph.Graph{}, err
	}
	l.Apply(net, true)
	return net.Graph(), nil
}
