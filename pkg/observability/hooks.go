// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about encoding and snapshot storage.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Libraries never import a metrics framework; main wires one in. A Prometheus
// implementation lives in this package as [Prometheus].
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    reg := prometheus.NewRegistry()
//	    p := observability.NewPrometheus(reg)
//	    observability.SetCodecHooks(p)
//	    observability.SetSnapshotHooks(p)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	data, err := codec.Marshal(f, doc)
//	observability.Codec().OnEncode(ctx, string(f), len(data), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Codec Hooks
// =============================================================================

// CodecHooks receives events from document encoding.
type CodecHooks interface {
	// OnEncode records a document being serialized to size bytes.
	OnEncode(ctx context.Context, format string, size int, duration time.Duration, err error)

	// OnDecode records size bytes being parsed into a document.
	OnDecode(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Snapshot Hooks
// =============================================================================

// SnapshotHooks receives events from snapshot storage.
type SnapshotHooks interface {
	// OnSave records a write of size bytes to backend.
	OnSave(ctx context.Context, backend string, size int, duration time.Duration, err error)

	// OnLoad records a read. hit is false when the key did not exist.
	OnLoad(ctx context.Context, backend string, hit bool, size int, duration time.Duration, err error)

	// OnDelete records a removal.
	OnDelete(ctx context.Context, backend string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCodecHooks is a no-op implementation of CodecHooks.
type NoopCodecHooks struct{}

func (NoopCodecHooks) OnEncode(context.Context, string, int, time.Duration, error) {}
func (NoopCodecHooks) OnDecode(context.Context, string, int, time.Duration, error) {}

// NoopSnapshotHooks is a no-op implementation of SnapshotHooks.
type NoopSnapshotHooks struct{}

func (NoopSnapshotHooks) OnSave(context.Context, string, int, time.Duration, error) {}
func (NoopSnapshotHooks) OnLoad(context.Context, string, bool, int, time.Duration, error) {
}
func (NoopSnapshotHooks) OnDelete(context.Context, string, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	codecHooks    CodecHooks    = NoopCodecHooks{}
	snapshotHooks SnapshotHooks = NoopSnapshotHooks{}
	hooksMu       sync.RWMutex
)

// SetCodecHooks registers custom codec hooks.
// This should be called once at application startup.
func SetCodecHooks(h CodecHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		codecHooks = h
	}
}

// SetSnapshotHooks registers custom snapshot hooks.
// This should be called once at application startup.
func SetSnapshotHooks(h SnapshotHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		snapshotHooks = h
	}
}

// Codec returns the registered codec hooks.
func Codec() CodecHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return codecHooks
}

// Snapshot returns the registered snapshot hooks.
func Snapshot() SnapshotHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return snapshotHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	codecHooks = NoopCodecHooks{}
	snapshotHooks = NoopSnapshotHooks{}
}
