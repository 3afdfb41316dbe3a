// File: barrier/barrier.go
// Package barrier implements the triggered rendezvous barrier that lets a
// single driver goroutine release N worker goroutines simultaneously, wait
// for all of them to return, and safely reuse the primitive across
// successive generations.
//
// The two-semaphore generation flip is grounded on the reset-barrier idiom
// seen throughout this repo's lineage (sync.Cond-driven rendezvous in
// rutvijjoshi26-parallel-compressor-go/core/barrier.go and the Iris-style
// barrier proof in tchajed-sys-verif-fa24-proofs), extended with a second
// semaphore so that a fast worker looping back into Wait during generation
// k+1 can never consume a post meant for generation k.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package barrier

import (
	"context"
	"sync"
)

// semaphore is a minimal counting semaphore built on a buffered channel,
// preferring channel-based primitives over hand-rolled futexes wherever
// the standard library already expresses the need cleanly.
type semaphore struct {
	ch chan struct{}
}

func newSemaphore(capacity int) *semaphore {
	return &semaphore{ch: make(chan struct{}, capacity)}
}

func (s *semaphore) post() {
	s.ch <- struct{}{}
}

func (s *semaphore) wait(ctx context.Context) error {
	select {
	case <-s.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Triggered is an N-way gate: the driver, not a worker, chooses when to
// open the gate.
type Triggered struct {
	mu      sync.Mutex
	cond    *sync.Cond
	n       int
	present int
	sem     [2]*semaphore
	active  int
}

// New creates a barrier expecting n waiters. n may be zero; SetN grows it
// as workers are added.
func New(n int) *Triggered {
	b := &Triggered{n: n}
	b.cond = sync.NewCond(&b.mu)
	b.sem[0] = newSemaphore(maxCapacity(n))
	b.sem[1] = newSemaphore(maxCapacity(n))
	return b
}

func maxCapacity(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// SetN updates the expected waiter count. It may be called while workers
// are parked (AddWorker does so under the pool's lock), but never while a
// generation is in flight.
func (b *Triggered) SetN(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.sem {
		// A semaphore that is too small is replaced only when nobody can be
		// waiting on it: the inactive slot, or the active one while
		// present == 0. Parked workers keep the active slot they captured;
		// posts beyond its buffer hand off directly to those waiters.
		if n > cap(b.sem[i].ch) && (i != b.active || b.present == 0) {
			b.sem[i] = newSemaphore(maxCapacity(n))
		}
	}
	b.n = n
}

// N returns the currently configured waiter count.
func (b *Triggered) N() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.n
}

// Present returns the currently parked waiter count, for diagnostics/tests.
func (b *Triggered) Present() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.present
}

// Wait is called by a worker. It parks on the barrier until the driver
// releases the current generation. ctx cancellation is an extension over
// the original's never-cancellable hot path; worker goroutines pass
// context.Background() and leave the barrier through a release, so within
// this module only tests cancel a Wait.
func (b *Triggered) Wait(ctx context.Context) error {
	b.mu.Lock()
	b.present++
	activeSem := b.sem[b.active]
	if b.present == b.n {
		b.cond.Broadcast()
	}
	b.mu.Unlock()

	return activeSem.wait(ctx)
}

// WaitForAll is called by the driver. It blocks until every configured
// waiter has parked for the current generation. It returns immediately if
// that is already true.
func (b *Triggered) WaitForAll(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.waitForAllLocked(ctx)
}

// waitForAllLocked assumes b.mu is held and blocks on b.cond until
// present == n, honoring ctx cancellation via a watcher goroutine — sync.Cond
// has no native context support, so cancellation wakes the condvar exactly
// once via a Broadcast from a goroutine racing the natural wakeup.
func (b *Triggered) waitForAllLocked(ctx context.Context) error {
	for b.present < b.n {
		if ctx.Done() == nil {
			b.cond.Wait()
			continue
		}
		done := make(chan struct{})
		stop := context.AfterFunc(ctx, func() {
			b.mu.Lock()
			b.cond.Broadcast()
			b.mu.Unlock()
			close(done)
		})
		b.cond.Wait()
		stop()
		select {
		case <-done:
			if ctx.Err() != nil && b.present < b.n {
				return ctx.Err()
			}
		default:
		}
	}
	return nil
}

// ReleaseAll is called by the driver. Precondition: present == n; violating
// it is a programming error and panics.
func (b *Triggered) ReleaseAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.releaseAllLocked()
}

func (b *Triggered) releaseAllLocked() {
	if b.present != b.n {
		panic("barrier: release_all called with present != n")
	}
	prevActive := b.active
	b.present = 0
	b.active = 1 - b.active
	sem := b.sem[prevActive]
	for i := 0; i < b.n; i++ {
		sem.post()
	}
}

// ReleaseAndWait fuses ReleaseAll and WaitForAll: b.mu is held from the
// release until the driver starts waiting, so no other caller can take the
// lock between the two steps. While the driver is blocked on b.cond the
// mutex is released, and Present() called in that interval reports fewer
// than n.
func (b *Triggered) ReleaseAndWait(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.releaseAllLocked()
	return b.waitForAllLocked(ctx)
}
