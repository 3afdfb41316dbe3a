// File: threadsvc/threadsvc.go
// Package threadsvc abstracts the platform scheduling and affinity
// primitives known as "ThreadServices": the ability to request a
// fixed-priority realtime scheduling policy and a CPU affinity mask for
// the calling OS thread.
//
// Go's sync package already supplies a portable mutex/cond/semaphore
// surface (used directly by package barrier), so only the scheduling and
// affinity surface needs a platform split here, following the same
// per-GOOS file layout as internal/concurrency/affinity_linux.go /
// affinity_windows.go.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package threadsvc

import "github.com/momentics/rtworker/rtwerr"

// Priority is a realtime scheduling priority in [0,100], higher is more
// urgent.
type Priority int

// SetRealtimeFIFO requests a fixed-priority preemptive ("FIFO realtime")
// scheduling policy for the calling OS thread at the given priority.
// Callers must have called runtime.LockOSThread first.
func SetRealtimeFIFO(priority Priority) error {
	if priority < 0 || priority > 100 {
		return rtwerr.ErrInvalidArguments
	}
	return setRealtimeFIFO(priority)
}

// PinToCore binds the calling OS thread's affinity mask to exactly one
// core. Platforms that manage affinity indirectly (macOS, via workgroups)
// accept the call as a no-op; see platform-specific files.
func PinToCore(core int) error {
	if core < 0 {
		return rtwerr.ErrInvalidArguments
	}
	return pinToCore(core)
}

// SupportsAffinity reports whether PinToCore has observable effect on this
// platform.
func SupportsAffinity() bool {
	return supportsAffinity
}
