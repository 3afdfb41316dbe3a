// File: rtkernel/rtkernel.go
// Package rtkernel holds the process-wide "running under a dedicated
// realtime kernel" flag. It is a once-initialized configuration value, not
// mutable global state: Init may be called at most once, and only before
// any pool or condition variable is constructed.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package rtkernel

import "sync/atomic"

var (
	enabled     atomic.Bool
	initialized atomic.Bool
	observed    atomic.Bool
)

// Init enables realtime-kernel mode for the remaining lifetime of the
// process. Calling it more than once, or after Enabled has already been
// called (for example by rtcond.New or rtutil.CurrentRTTime), is a
// programming error and panics.
func Init() {
	if observed.Load() {
		panic("rtkernel: Init called after realtime-kernel mode was already observed via Enabled")
	}
	if !initialized.CompareAndSwap(false, true) {
		panic("rtkernel: Init called more than once")
	}
	enabled.Store(true)
}

// Enabled reports whether the process has been initialized for a dedicated
// realtime kernel. The first call latches "observed", after which Init can
// no longer be called.
func Enabled() bool {
	observed.Store(true)
	return enabled.Load()
}
