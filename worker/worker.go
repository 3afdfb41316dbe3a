// File: worker/worker.go
// Package worker implements a WorkerThread: one OS-thread pinned goroutine
// bound to a shared barrier and one application-supplied callback.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package worker

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/momentics/rtworker/apple"
	"github.com/momentics/rtworker/barrier"
	"github.com/momentics/rtworker/rtflag"
	"github.com/momentics/rtworker/rtutil"
	"github.com/momentics/rtworker/rtwerr"
	"github.com/momentics/rtworker/threadsvc"
)

// Callback is the application-supplied per-worker unit of work. data is the
// opaque pointer the caller registered the worker with.
type Callback func(data any)

// Config carries the optional per-worker behavior flags from the pool.
type Config struct {
	DisableDenormals   bool
	BreakOnModeSwitch  bool
	WorkgroupHandle    apple.WorkgroupHandle
	SampleRate         int
	AudioChunkSize     int
}

// Worker owns one OS-thread-pinned goroutine.
type Worker struct {
	b             *barrier.Triggered
	poolRunning   *atomic.Bool
	threadRunning atomic.Bool

	cb   Callback
	data any
	cfg  Config

	priority threadsvc.Priority
	core     int

	workgroupToken apple.Token
	platformStatus atomic.Int32 // rtwerr.PlatformStatus

	setupDone chan error
	done      chan struct{}
}

// New constructs an idle worker bound to the pool's barrier and running
// flag. It is not started until Run is called.
func New(b *barrier.Triggered, poolRunning *atomic.Bool, cb Callback, data any, cfg Config) *Worker {
	w := &Worker{
		b:           b,
		poolRunning: poolRunning,
		cb:          cb,
		data:        data,
		cfg:         cfg,
		setupDone:   make(chan error, 1),
		done:        make(chan struct{}),
	}
	w.platformStatus.Store(int32(rtwerr.PlatformStatusEmpty))
	return w
}

// PlatformStatus returns the Apple platform status recorded during the
// worker's first-time setup. It is meaningful only on darwin builds; other
// platforms always report Empty.
func (w *Worker) PlatformStatus() rtwerr.PlatformStatus {
	return rtwerr.PlatformStatus(w.platformStatus.Load())
}

// Run validates priority, spawns the worker goroutine, and blocks until the
// goroutine's first-time scheduling/affinity/workgroup setup has completed
// or failed. It returns the setup error, wrapping the rtwerr sentinels; the
// workgroup join result is recorded separately and read via PlatformStatus.
func (w *Worker) Run(priority int, core int) error {
	if priority < 0 || priority > 100 {
		return rtwerr.ErrInvalidArguments
	}
	w.priority = threadsvc.Priority(priority)
	w.core = core
	w.threadRunning.Store(true)

	go w.body()

	return <-w.setupDone
}

// body is the worker's per-generation loop: setup once, then wait/run
// against the shared barrier until stopped.
func (w *Worker) body() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	leave := rtflag.Enter()
	defer leave()

	setupErr := w.setup()
	w.setupDone <- setupErr
	if setupErr != nil {
		close(w.done)
		return
	}

	defer w.teardown()
	defer close(w.done)

	ctx := context.Background()
	for {
		if err := w.b.Wait(ctx); err != nil {
			return
		}
		if !w.poolRunning.Load() || !w.threadRunning.Load() {
			return
		}
		w.cb(w.data)
	}
}

// setup performs the thread's one-time scheduling, denormals, and workgroup
// configuration, in that fixed order.
func (w *Worker) setup() error {
	if err := threadsvc.SetRealtimeFIFO(w.priority); err != nil {
		return err
	}
	if threadsvc.SupportsAffinity() {
		if err := threadsvc.PinToCore(w.core); err != nil {
			return err
		}
	}
	if w.cfg.DisableDenormals {
		rtutil.SetFlushDenormalsToZero()
	}

	if w.cfg.WorkgroupHandle != 0 {
		tok, status := apple.Join(w.cfg.WorkgroupHandle)
		w.platformStatus.Store(int32(status))
		if status == rtwerr.PlatformStatusRealtimeOk || status == rtwerr.PlatformStatusOK {
			w.workgroupToken = tok
		}
	}
	return nil
}

// teardown leaves any joined workgroup. Tokens must be released in reverse
// order of joining; a single worker only ever joins one token, so that
// ordering constraint is trivially satisfied here and becomes relevant only
// across a pool's whole worker set, each releasing its own token
// independently.
func (w *Worker) teardown() {
	if w.workgroupToken != (apple.Token{}) {
		apple.Leave(w.workgroupToken)
	}
}

// Stop marks the worker as no longer eligible to run its callback. The
// caller is still responsible for releasing the barrier so the worker can
// observe the flag and exit its loop.
func (w *Worker) Stop() {
	w.threadRunning.Store(false)
}

// Join blocks until the worker goroutine has returned.
func (w *Worker) Join(ctx context.Context) error {
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
