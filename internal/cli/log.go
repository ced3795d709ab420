// Package cli implements the linkdeps command-line interface.
//
// This package provides commands for resolving the dependencies of a
// package and its local packages, linking local packages into
// node_modules, and drawing the local-package tree. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - update: Resolve and write dependencies for a mode (devel, publish, deploy, deploy-mix)
//   - link: Link local packages into node_modules without touching package.json
//   - graph: Render the local-package tree as DOT or SVG
//
// # Configuration
//
// Flags override LINKDEPS_* environment variables (also read from a .env
// file), which override linkdeps.toml in the source directory.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports every pipeline and link event.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/linkdeps/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered graph.svg (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// =============================================================================
// Log-backed Hooks
// =============================================================================

// logHooks reports pipeline and link events at debug level.
type logHooks struct {
	logger *log.Logger
}

// RegisterLogHooks routes observability events to logger.
func RegisterLogHooks(logger *log.Logger) {
	h := &logHooks{logger: logger}
	observability.SetPipelineHooks(h)
	observability.SetLinkHooks(h)
}

func (h *logHooks) OnBuildStart(_ context.Context, srcPath string) {
	h.logger.Debug("building package tree", "src", srcPath)
}

func (h *logHooks) OnBuildComplete(_ context.Context, srcPath string, nodeCount int, duration time.Duration, err error) {
	if err != nil {
		h.logger.Debug("package tree failed", "src", srcPath, "err", err)
		return
	}
	h.logger.Debug("package tree ready", "nodes", nodeCount, "duration", duration)
}

func (h *logHooks) OnUpdateStart(_ context.Context, mode string) {
	h.logger.Debug("accumulating dependencies", "mode", mode)
}

func (h *logHooks) OnUpdateComplete(_ context.Context, mode string, depCount int, duration time.Duration, err error) {
	if err != nil {
		h.logger.Debug("accumulation failed", "mode", mode, "err", err)
		return
	}
	h.logger.Debug("accumulation done", "mode", mode, "deps", depCount, "duration", duration)
}

func (h *logHooks) OnSave(_ context.Context, path string, err error) {
	if err != nil {
		h.logger.Debug("save failed", "path", path, "err", err)
		return
	}
	h.logger.Debug("saved manifest", "path", path)
}

func (h *logHooks) OnLinkCreated(_ context.Context, name, path string) {
	h.logger.Debug("link created", "name", name, "path", path)
}

func (h *logHooks) OnLinkSkipped(_ context.Context, name, path string) {
	h.logger.Debug("link exists", "name", name, "path", path)
}

func (h *logHooks) OnLinkFailed(_ context.Context, name, path string, err error) {
	h.logger.Debug("link failed", "name", name, "path", path, "err", err)
}
