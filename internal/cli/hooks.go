package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arcgraph/pkg/observability"
)

// logHooks reports observability events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

func registerLogHooks(l *log.Logger) {
	h := &logHooks{logger: l.WithPrefix("hooks")}
	observability.SetEngineHooks(h)
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
}

func (h *logHooks) OnAnalyze(records, created, removed int, d time.Duration) {
	h.logger.Debug("analyze", "records", records, "created", created, "removed", removed, "took", d)
}

func (h *logHooks) OnContractViolation(kind, edgeID string) {
	h.logger.Debug("contract violation", "kind", kind, "edge", edgeID)
}

func (h *logHooks) OnLayoutStart(_ context.Context, engine string, n int) {
	h.logger.Debug("layout start", "engine", engine, "nodes", n)
}

func (h *logHooks) OnLayoutComplete(_ context.Context, engine string, d time.Duration, err error) {
	h.logger.Debug("layout done", "engine", engine, "took", d, "error", err)
}

func (h *logHooks) OnExportStart(_ context.Context, formats []string) {
	h.logger.Debug("export start", "formats", formats)
}

func (h *logHooks) OnExportComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("export done", "formats", formats, "took", d, "error", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

func (h *logHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}

func (h *logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", key, "bytes", size)
}
