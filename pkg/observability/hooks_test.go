package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnBuildStart(ctx, "/src")
	p.OnBuildComplete(ctx, "/src", 4, time.Second, nil)
	p.OnUpdateStart(ctx, "devel")
	p.OnUpdateComplete(ctx, "devel", 12, time.Second, nil)
	p.OnSave(ctx, "/src/package.json", nil)

	// Link hooks
	l := NoopLinkHooks{}
	l.OnLinkCreated(ctx, "local-a", "/src/node_modules/local-a")
	l.OnLinkSkipped(ctx, "local-a", "/src/node_modules/local-a")
	l.OnLinkFailed(ctx, "local-a", "/src/node_modules/local-a", errors.New("permission denied"))
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Link().(NoopLinkHooks); !ok {
		t.Error("Link() should return NoopLinkHooks by default")
	}

	// Set custom hooks
	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customLink := &testLinkHooks{}
	SetLinkHooks(customLink)
	if Link() != customLink {
		t.Error("SetLinkHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Link().(NoopLinkHooks); !ok {
		t.Error("Reset() should restore NoopLinkHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	// Setting nil should be ignored
	SetPipelineHooks(nil)
	SetLinkHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
	if _, ok := Link().(NoopLinkHooks); !ok {
		t.Error("SetLinkHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testPipelineHooks struct{ NoopPipelineHooks }
type testLinkHooks struct{ NoopLinkHooks }
