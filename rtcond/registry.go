// File: rtcond/registry.go
// registry.go implements the process-wide CoreRegistry: a bit set assigning
// unique small-integer ids to live RT-pipe condition variables that need a
// kernel-side slot.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package rtcond

import (
	"fmt"
	"sync"
)

// MaxRTCondVars bounds the number of concurrently live RT-pipe condition
// variables. It is a build-time constant.
const MaxRTCondVars = 256

type registry struct {
	mu        sync.Mutex
	activeIDs [MaxRTCondVars]bool
}

var globalRegistry registry

// getNextID returns the lowest free index and marks it taken.
func (r *registry) getNextID() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, taken := range r.activeIDs {
		if !taken {
			r.activeIDs[i] = true
			return i, nil
		}
	}
	return 0, fmt.Errorf("rtcond: registry exhausted (max %d)", MaxRTCondVars)
}

// deregisterID frees a previously assigned id.
func (r *registry) deregisterID(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id >= 0 && id < len(r.activeIDs) {
		r.activeIDs[id] = false
	}
}

// GetNextID exposes the global registry's allocator for tests and the
// RT-pipe variant.
func GetNextID() (int, error) { return globalRegistry.getNextID() }

// DeregisterID exposes the global registry's release for tests and the
// RT-pipe variant.
func DeregisterID(id int) { globalRegistry.deregisterID(id) }
