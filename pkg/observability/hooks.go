// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about derivation steps and simulation runs.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDerivationHooks(&myDerivationHooks{})
//	    observability.SetSimulationHooks(&mySimulationHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Derivation().OnGenerationStart(generation)
//	// ... derive ...
//	observability.Derivation().OnGenerationComplete(generation, matched, nodes, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Derivation Hooks
// =============================================================================

// DerivationHooks receives events from individual graph derivation steps.
// The generation argument is the number of the generation being derived;
// on failure the graph stays on the previous one.
//
// Population runs advance many graphs concurrently, so implementations
// must be safe for concurrent use.
type DerivationHooks interface {
	// OnGenerationStart records the beginning of a derivation step.
	OnGenerationStart(generation int)

	// OnGenerationComplete records the outcome of a derivation step:
	// how many nodes were matched by rules and how many nodes the graph
	// holds afterwards. A non-nil err means the step aborted.
	OnGenerationComplete(generation, matched, nodes int, err error)
}

// =============================================================================
// Simulation Hooks
// =============================================================================

// SimulationHooks receives events from population simulation runs.
type SimulationHooks interface {
	// OnRunStart records the beginning of a run.
	OnRunStart(ctx context.Context, runID, model string, population int)

	// OnGenerationBarrier records that every graph of the population has
	// completed the given generation.
	OnGenerationBarrier(ctx context.Context, runID string, generation, nodes int)

	// OnRunComplete records the end of a run.
	OnRunComplete(ctx context.Context, runID string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDerivationHooks is a no-op implementation of DerivationHooks.
type NoopDerivationHooks struct{}

func (NoopDerivationHooks) OnGenerationStart(int)                     {}
func (NoopDerivationHooks) OnGenerationComplete(int, int, int, error) {}

// NoopSimulationHooks is a no-op implementation of SimulationHooks.
type NoopSimulationHooks struct{}

func (NoopSimulationHooks) OnRunStart(context.Context, string, string, int)             {}
func (NoopSimulationHooks) OnGenerationBarrier(context.Context, string, int, int)       {}
func (NoopSimulationHooks) OnRunComplete(context.Context, string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	derivationHooks DerivationHooks = NoopDerivationHooks{}
	simulationHooks SimulationHooks = NoopSimulationHooks{}
	hooksMu         sync.RWMutex
)

// SetDerivationHooks registers custom derivation hooks.
// This should be called once at application startup before any graphs advance.
func SetDerivationHooks(h DerivationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		derivationHooks = h
	}
}

// SetSimulationHooks registers custom simulation hooks.
// This should be called once at application startup before any runs execute.
func SetSimulationHooks(h SimulationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		simulationHooks = h
	}
}

// Derivation returns the registered derivation hooks.
func Derivation() DerivationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return derivationHooks
}

// Simulation returns the registered simulation hooks.
func Simulation() SimulationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return simulationHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	derivationHooks = NoopDerivationHooks{}
	simulationHooks = NoopSimulationHooks{}
}
