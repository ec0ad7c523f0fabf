// Package observability provides hooks for instrumenting search runs and
// cache operations.
//
// The library packages stay free of logging and metrics dependencies;
// instead they emit events through the hook interfaces defined here.
// Consumers (the CLI, the HTTP API, tests) register implementations at
// startup to receive progress without coupling the engine to a backend.
//
// # Usage
//
// Register hooks before running a search:
//
//	observability.SetSearchHooks(&myHooks{})
//	defer observability.Reset()
//
// The solver emits events as it runs:
//
//	observability.Search().OnImprovement(iter, cycleTime)
package observability

import "sync"

// SearchHooks receives events from an ILS run.
type SearchHooks interface {
	// OnInitial reports the cycle time of the constructed and locally
	// optimized starting solution.
	OnInitial(cycleTime float64)

	// OnIteration reports the state after every outer-loop iteration.
	OnIteration(iteration int, current, best, temperature float64, strength int)

	// OnImprovement reports a new best feasible solution.
	OnImprovement(iteration int, cycleTime float64)

	// OnStrengthIncrease reports the perturbation strength growing after
	// sustained lack of improvement.
	OnStrengthIncrease(iteration, strength int)

	// OnRestart reports a full restart from a fresh construction.
	OnRestart(iteration, restartCount int)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(keyType string)
	OnCacheMiss(keyType string)
	OnCacheSet(keyType string, size int)
}

// NoopSearchHooks is a no-op implementation of SearchHooks.
type NoopSearchHooks struct{}

func (NoopSearchHooks) OnInitial(float64)                              {}
func (NoopSearchHooks) OnIteration(int, float64, float64, float64, int) {}
func (NoopSearchHooks) OnImprovement(int, float64)                     {}
func (NoopSearchHooks) OnStrengthIncrease(int, int)                    {}
func (NoopSearchHooks) OnRestart(int, int)                             {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(string)      {}
func (NoopCacheHooks) OnCacheMiss(string)     {}
func (NoopCacheHooks) OnCacheSet(string, int) {}

var (
	searchHooks SearchHooks = NoopSearchHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetSearchHooks registers custom search hooks. Call once at startup
// before any solve runs.
func SetSearchHooks(h SearchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		searchHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Call once at startup
// before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Search returns the registered search hooks.
func Search() SearchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return searchHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults. Primarily useful in
// tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	searchHooks = NoopSearchHooks{}
	cacheHooks = NoopCacheHooks{}
}
