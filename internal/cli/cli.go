package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arcgraph/pkg/buildinfo"
	"github.com/matzehuels/arcgraph/pkg/cache"
	"github.com/matzehuels/arcgraph/pkg/config"
	"github.com/matzehuels/arcgraph/pkg/pipeline"
	"github.com/matzehuels/arcgraph/pkg/scene"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. The config file is loaded when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "arcgraph computes drawable edge geometry for node-link graphs",
		Long: `arcgraph positions the nodes of a graph, then computes how every edge is
drawn: straight lines for single edges, fanned arcs for parallel edges and
stacked loops for self-edges. Results export as a JSON scene, an SVG preview
or Graphviz DOT.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/arcgraph/config.toml)")

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Cache keys are scoped by
// version so entries from older builds are never reused.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

// newCache opens the configured cache backend. An unreachable Redis or an
// unknown home directory disables caching instead of failing the command.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: c.Config.Cache.RedisAddr})
		if err != nil {
			c.Logger.Warn("redis unavailable, caching disabled", "addr", c.Config.Cache.RedisAddr, "error", err)
			return cache.NewNullCache(), nil
		}
		return cache.Observed(rc), nil
	default:
		dir, err := c.cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return cache.Observed(fc), nil
	}
}

// cacheDir returns the configured file cache directory, defaulting to the
// XDG location.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/arcgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// outputPath derives an output file from the input path: graph.json with
// suffix ".scene.json" becomes graph.scene.json.
func outputPath(input, suffix string) string {
	if input == "-" {
		return "arcgraph" + suffix
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineFlags are the flags shared by the commands that run the pipeline.
// Values from the config file apply unless a flag is set explicitly.
type pipelineFlags struct {
	engine        string
	layoutScale   float64
	force         bool
	distanceScale float64
	ordering      string
	segments      int
	noCache       bool
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	d := config.Default()
	cmd.Flags().StringVarP(&f.engine, "engine", "e", d.Layout.Engine, "layout engine for unpositioned nodes: neato, fdp, sfdp, circo, twopi, dot, circle")
	cmd.Flags().Float64Var(&f.layoutScale, "layout-scale", d.Layout.Scale, "multiplier for computed coordinates")
	cmd.Flags().BoolVar(&f.force, "force", false, "re-layout nodes that already have coordinates")
	cmd.Flags().Float64VarP(&f.distanceScale, "distance-scale", "s", d.Engine.DistanceScale, "divisor from layout units to world units")
	cmd.Flags().StringVar(&f.ordering, "ordering", d.Engine.Ordering, "ordinal assignment order: id, enumeration")
	cmd.Flags().IntVar(&f.segments, "segments", d.Engine.Segments, "segments per arc")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// pipelineOptions merges the config file with explicitly set flags.
func (c *CLI) pipelineOptions(cmd *cobra.Command, f *pipelineFlags) pipeline.Options {
	opts := pipeline.OptionsFromConfig(c.Config)
	flags := cmd.Flags()
	if flags.Changed("engine") {
		opts.Engine = f.engine
	}
	if flags.Changed("layout-scale") {
		opts.LayoutScale = f.layoutScale
	}
	if flags.Changed("force") {
		opts.Force = f.force
	}
	if flags.Changed("distance-scale") {
		opts.DistanceScale = f.distanceScale
	}
	if flags.Changed("ordering") {
		opts.Ordering = f.ordering
	}
	if flags.Changed("segments") {
		opts.Segments = f.segments
	}
	opts.Logger = c.Logger
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{scene.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
