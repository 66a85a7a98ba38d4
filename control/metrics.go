// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime counter registry for scheduler-level monitoring. The scheduler
// mutates counters from its single loop thread; hosts may snapshot them
// from any goroutine, hence the lock.

package control

import (
	"sync"
	"time"
)

// MetricsRegistry holds named monotonic counters.
type MetricsRegistry struct {
	mu       sync.RWMutex
	counters map[string]int64
	updated  time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		counters: make(map[string]int64),
	}
}

// Inc adds one to a counter, creating it at zero first if needed.
func (mr *MetricsRegistry) Inc(key string) {
	mr.Add(key, 1)
}

// Add adds delta to a counter.
func (mr *MetricsRegistry) Add(key string, delta int64) {
	mr.mu.Lock()
	mr.counters[key] += delta
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// Set overwrites a counter value.
func (mr *MetricsRegistry) Set(key string, value int64) {
	mr.mu.Lock()
	mr.counters[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// Get returns a single counter value, zero when absent.
func (mr *MetricsRegistry) Get(key string) int64 {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.counters[key]
}

// Snapshot returns a copy of all counters.
func (mr *MetricsRegistry) Snapshot() map[string]int64 {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]int64, len(mr.counters))
	for k, v := range mr.counters {
		out[k] = v
	}
	return out
}

// Updated reports when any counter last changed.
func (mr *MetricsRegistry) Updated() time.Time {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.updated
}
