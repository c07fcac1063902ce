package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arcgraph/pkg/config"
	"github.com/matzehuels/arcgraph/pkg/pipeline"
	"github.com/matzehuels/arcgraph/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP API until the
// process is interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Endpoints:
  POST /v1/analyze   graph in, scene out
  POST /v1/render    graph in, artifact out (?format=svg|json|dot)
  GET  /healthz      liveness
  GET  /version      build information

Request options default to the config file. Layouts and artifacts are cached
in the configured backend, which may be shared between instances with redis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if cmd.Flags().Changed("addr") {
				c.Config.Server.Addr = addr
			}

			defaults := pipeline.OptionsFromConfig(c.Config)
			if err := defaults.ValidateAndSetDefaults(); err != nil {
				return fmt.Errorf("server defaults: %w", err)
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, server.Config{
				Addr:         c.Config.Server.Addr,
				MaxBodyBytes: c.Config.Server.MaxBodyBytes,
				Defaults:     defaults,
			}, c.Logger.WithPrefix("http"))

			printInfo("Serving on %s", StyleValue.Render(c.Config.Server.Addr))
			printKeyValue("engine", defaults.Engine)
			printKeyValue("ordering", defaults.AnalyzerOptions().Ordering.String())
			backend := c.Config.Cache.Backend
			if noCache {
				backend = config.BackendNone
			}
			printKeyValue("cache", backend)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
