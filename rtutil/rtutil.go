// File: rtutil/rtutil.go
// Package rtutil implements the peripheral realtime helpers exposed at the
// module boundary: denormal flushing, the RT-aware monotonic clock, an
// RT-safe printf shim, and version reporting.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package rtutil

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/eapache/queue"
	"golang.org/x/sys/cpu"

	"github.com/momentics/rtworker/rtflag"
	"github.com/momentics/rtworker/rtkernel"
)

// IsCurrentThreadRealtime reports whether the calling goroutine is
// currently executing as a realtime worker.
func IsCurrentThreadRealtime() bool {
	return rtflag.IsRealtime()
}

// SetFlushDenormalsToZero toggles the CPU's flush-to-zero / denormals-are-
// zero behavior on amd64 builds with cgo enabled. It is a no-op elsewhere,
// including amd64 builds without cgo.
func SetFlushDenormalsToZero() {
	if cpu.X86.HasSSE2 {
		setFlushToZeroAMD64()
	}
}

// clockEpoch anchors the non-RT-kernel readings of CurrentRTTime; time.Since
// on it uses the monotonic reading that time.Now carries.
var clockEpoch = time.Now()

// CurrentRTTime returns a monotonically non-decreasing duration since an
// arbitrary epoch, selecting the RT-kernel clock source when the process
// has been initialized for a dedicated realtime kernel.
func CurrentRTTime() time.Duration {
	if rtkernel.Enabled() {
		return currentRTKernelTime()
	}
	return time.Since(clockEpoch)
}

// Version identifies the library release.
type Version struct {
	Major, Minor, Revision int
}

const (
	versionMajor    = 1
	versionMinor    = 0
	versionRevision = 0
)

// CurrentVersion returns the library's semantic version.
func CurrentVersion() Version {
	return Version{Major: versionMajor, Minor: versionMinor, Revision: versionRevision}
}

// BuildInfo returns a human-readable build identifier, preferring
// runtime/debug over a hand-maintained version string.
func BuildInfo() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "rtworker (unknown build)"
	}
	return fmt.Sprintf("rtworker %s (%s)", info.Main.Version, info.GoVersion)
}

// printfRing defers the actual fmt.Fprintf work to a background goroutine
// so Printf itself never blocks on I/O from a realtime caller. Backed by
// eapache/queue's growable ring buffer.
type printfRing struct {
	mu     sync.Mutex
	cond   *sync.Cond
	q      *queue.Queue
	once   sync.Once
}

var defaultRing = newPrintfRing()

func newPrintfRing() *printfRing {
	r := &printfRing{q: queue.New()}
	r.cond = sync.NewCond(&r.mu)
	return r
}

func (r *printfRing) start() {
	r.once.Do(func() {
		go r.drain()
	})
}

func (r *printfRing) drain() {
	for {
		r.mu.Lock()
		for r.q.Length() == 0 {
			r.cond.Wait()
		}
		fn := r.q.Remove().(func())
		r.mu.Unlock()
		fn()
	}
}

func (r *printfRing) enqueue(fn func()) {
	r.start()
	r.mu.Lock()
	r.q.Add(fn)
	r.cond.Signal()
	r.mu.Unlock()
}

// Printf is safe to call from a realtime callback: it never performs
// blocking I/O on the calling goroutine, deferring the actual write to a
// background flusher.
func Printf(format string, args ...any) {
	defaultRing.enqueue(func() {
		fmt.Printf(format, args...)
	})
}
