// Package observability lets the CLI watch a resolution run without the
// engine importing a logger.
//
// The pipeline runner reports tree building, accumulation and saving through
// [PipelineHooks]; the materializer reports every link through [LinkHooks].
// Both default to no-ops. The CLI swaps in log-backed hooks when --verbose
// is set:
//
//	h := &logHooks{logger: logger}
//	observability.SetPipelineHooks(h)
//	observability.SetLinkHooks(h)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from a resolution run.
type PipelineHooks interface {
	// Tree events
	OnBuildStart(ctx context.Context, srcPath string)
	OnBuildComplete(ctx context.Context, srcPath string, nodeCount int, duration time.Duration, err error)

	// Accumulation events
	OnUpdateStart(ctx context.Context, mode string)
	OnUpdateComplete(ctx context.Context, mode string, depCount int, duration time.Duration, err error)

	// Write events
	OnSave(ctx context.Context, path string, err error)
}

// =============================================================================
// Link Hooks
// =============================================================================

// LinkHooks receives events from the materializer. Calls may arrive from
// several goroutines at once.
type LinkHooks interface {
	// OnLinkCreated records a new package link or bin entry.
	OnLinkCreated(ctx context.Context, name, path string)

	// OnLinkSkipped records an entry that already existed.
	OnLinkSkipped(ctx context.Context, name, path string)

	// OnLinkFailed records a link or bin entry that could not be created.
	OnLinkFailed(ctx context.Context, name, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBuildStart(context.Context, string) {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnUpdateStart(context.Context, string) {}
func (NoopPipelineHooks) OnUpdateComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnSave(context.Context, string, error) {}

// NoopLinkHooks is a no-op implementation of LinkHooks.
type NoopLinkHooks struct{}

func (NoopLinkHooks) OnLinkCreated(context.Context, string, string)       {}
func (NoopLinkHooks) OnLinkSkipped(context.Context, string, string)       {}
func (NoopLinkHooks) OnLinkFailed(context.Context, string, string, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	linkHooks     LinkHooks     = NoopLinkHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetLinkHooks registers custom materializer hooks.
func SetLinkHooks(h LinkHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		linkHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Link returns the registered materializer hooks.
func Link() LinkHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return linkHooks
}

// Reset restores the no-op hooks.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	linkHooks = NoopLinkHooks{}
}
