// File: rtcond/rtcond.go
// Package rtcond implements the realtime-safe cross-domain condition
// variable: a one-producer/one-consumer event that lets a realtime
// producer wake exactly one non-realtime consumer (and vice versa) without
// inducing priority inversion or unbounded blocking on the realtime side.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package rtcond

import "github.com/momentics/rtworker/rtkernel"

// CondVar is a one-producer/one-consumer event. At most one waiter at a
// time; Notify never blocks on contention.
type CondVar interface {
	// Notify wakes the current waiter, if any. It never blocks.
	Notify()

	// Wait blocks until the next Notify. It returns false only when the
	// condition variable is being destroyed while a wait is outstanding,
	// letting the caller distinguish a shutdown close from a real notify.
	Wait() bool

	// Close releases the condition variable's resources, waking any
	// current waiter within a bounded delay.
	Close() error
}

// New selects an implementation using a fixed, construction-time policy:
// the RT-pipe variant under a dedicated realtime kernel, the
// named-semaphore variant where the platform supports it, and the
// mutex+condvar variant otherwise.
func New() (CondVar, error) {
	if rtkernel.Enabled() {
		return newRTPipe()
	}
	if supportsNamedSemaphores {
		return newSemCondVar()
	}
	return newMutexCondVar(), nil
}
