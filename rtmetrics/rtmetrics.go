// File: rtmetrics/rtmetrics.go
// Package rtmetrics adapts a runtime metrics registry, in the style of
// control/metrics.go, to the pool's generation-boundary counters and
// gauges. Updates only ever happen at generation boundaries — never inside
// the barrier's hot path.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package rtmetrics

import (
	"sync"
	"time"
)

// Registry holds mutable counters and gauges in a thread-safe map with
// dynamic registration, mirroring control.MetricsRegistry's shape.
type Registry struct {
	mu       sync.RWMutex
	counters map[string]int64
	gauges   map[string]int64
	updated  time.Time
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		counters: make(map[string]int64),
		gauges:   make(map[string]int64),
	}
}

// IncCounter increments a named counter by one, creating it if necessary.
func (r *Registry) IncCounter(name string) {
	r.mu.Lock()
	r.counters[name]++
	r.updated = time.Now()
	r.mu.Unlock()
}

// SetGauge sets a named gauge to an absolute value.
func (r *Registry) SetGauge(name string, value int64) {
	r.mu.Lock()
	r.gauges[name] = value
	r.updated = time.Now()
	r.mu.Unlock()
}

// Snapshot returns a point-in-time copy of all counters and gauges.
func (r *Registry) Snapshot() map[string]int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]int64, len(r.counters)+len(r.gauges))
	for k, v := range r.counters {
		out[k] = v
	}
	for k, v := range r.gauges {
		out[k] = v
	}
	return out
}
