// Package observability provides instrumentation hooks for the
// charting pipeline, the cache, and external tool invocations.
//
// The core packages emit events through a process-global registry of
// hook interfaces; the defaults are no-ops, so nothing is measured
// unless main registers an implementation at startup. This keeps the
// libraries free of any dependency on a particular metrics or tracing
// backend:
//
//	observability.SetPipelineHooks(&prometheusHooks{})
//
//	observability.Pipeline().OnAnalyzeStart(ctx, file)
//	// ... run cflow and parse ...
//	observability.Pipeline().OnAnalyzeComplete(ctx, file, nodes, elapsed, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the charting pipeline.
type PipelineHooks interface {
	// Analyze events, one pair per source file (cflow run + parse).
	OnAnalyzeStart(ctx context.Context, file string)
	OnAnalyzeComplete(ctx context.Context, file string, nodeCount int, duration time.Duration, err error)

	// Emit events, one pair per pipeline run covering every DOT file.
	OnEmitStart(ctx context.Context, graphs int)
	OnEmitComplete(ctx context.Context, duration time.Duration, err error)

	// Render events, one pair per pipeline run covering every image.
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache hit/miss/write events. keyType is the key
// namespace, "analysis" or "render".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// ExecHooks receives events from external tool invocations (cflow and
// the Graphviz layout binaries).
type ExecHooks interface {
	OnExecStart(ctx context.Context, tool string, args []string)
	OnExecComplete(ctx context.Context, tool string, duration time.Duration, err error)
}

// NoopPipelineHooks discards every pipeline event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnAnalyzeStart(context.Context, string) {}
func (NoopPipelineHooks) OnAnalyzeComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnEmitStart(context.Context, int)                                 {}
func (NoopPipelineHooks) OnEmitComplete(context.Context, time.Duration, error)             {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks discards every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopExecHooks discards every exec event.
type NoopExecHooks struct{}

func (NoopExecHooks) OnExecStart(context.Context, string, []string)                {}
func (NoopExecHooks) OnExecComplete(context.Context, string, time.Duration, error) {}

var registry = struct {
	mu       sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
	exec     ExecHooks
}{
	pipeline: NoopPipelineHooks{},
	cache:    NoopCacheHooks{},
	exec:     NoopExecHooks{},
}

// SetPipelineHooks registers h. Call once at startup, before any
// pipeline runs; nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if h != nil {
		registry.pipeline = h
	}
}

// SetCacheHooks registers h. Call once at startup; nil is ignored.
func SetCacheHooks(h CacheHooks) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if h != nil {
		registry.cache = h
	}
}

// SetExecHooks registers h. Call once at startup; nil is ignored.
func SetExecHooks(h ExecHooks) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if h != nil {
		registry.exec = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.pipeline
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.cache
}

// Exec returns the registered exec hooks.
func Exec() ExecHooks {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.exec
}

// Reset restores the no-op defaults. Intended for tests.
func Reset() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.pipeline = NoopPipelineHooks{}
	registry.cache = NoopCacheHooks{}
	registry.exec = NoopExecHooks{}
}
