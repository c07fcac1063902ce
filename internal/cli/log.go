// Package cli implements the arcgraph command-line interface.
//
// The CLI reads graphs as JSON, places unpositioned nodes with a layout
// engine, runs the edge geometry engine and writes the results. It is built
// using cobra and logs via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - analyze: compute the edge scene of a graph and write it as JSON
//   - layout: compute node positions only
//   - render: export a graph as SVG, JSON or DOT
//   - inspect: browse the analyzed edges interactively
//   - serve: run the HTTP API
//   - cache: manage the layout cache
//   - config: print the effective configuration
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
//
// # Example
//
//	import "github.com/matzehuels/arcgraph/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(ctx, os.Stderr, os.Args[1:]); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger: prefixed with the app name and stamped
// with wall-clock time down to hundredths of a second.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one pipeline step of a command (analyze, layout, render).
type progress struct {
	logger *log.Logger
	step   string
	start  time.Time
}

func newProgress(l *log.Logger, step string) *progress {
	l.Debug("step started", "step", step)
	return &progress{logger: l, step: step, start: time.Now()}
}

// done logs msg at info level with the step name and elapsed time, e.g.
// "Analyzed 42 edges step=analyze took=12ms".
func (p *progress) done(msg string) {
	p.logger.Info(msg, "step", p.step, "took", p.elapsed())
}

// fail logs err at debug level; the command reports it to the user.
func (p *progress) fail(err error) {
	p.logger.Debug("step failed", "step", p.step, "took", p.elapsed(), "err", err)
}

func (p *progress) elapsed() time.Duration {
	return time.Since(p.start).Round(time.Millisecond)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger set by the root command, or
// log.Default() outside of a command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
