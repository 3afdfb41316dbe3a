// File: rtflag/rtflag.go
// Package rtflag tracks, per goroutine, whether the calling goroutine is
// currently executing as a realtime worker.
//
// Go has no thread-local storage, so the per-goroutine counter is keyed by
// goroutine id instead, following the getGoroutineID idiom used by
// event-loop implementations in this repo's lineage to identify "am I on
// the right goroutine" without a context parameter threaded through every
// call.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package rtflag

import (
	"runtime"
	"sync"
)

var (
	mu       sync.Mutex
	counters = map[uint64]int32{}
)

// Enter marks the calling goroutine as realtime for the duration of the
// returned scope and returns a Leave function. Scopes nest: entering
// increments the counter, leaving decrements it, so it is safe to call
// from nested realtime contexts.
func Enter() (leave func()) {
	id := goroutineID()
	mu.Lock()
	counters[id]++
	mu.Unlock()
	left := false
	return func() {
		if left {
			return
		}
		left = true
		mu.Lock()
		counters[id]--
		if counters[id] <= 0 {
			delete(counters, id)
		}
		mu.Unlock()
	}
}

// IsRealtime reports whether the calling goroutine is currently inside an
// Enter/Leave scope.
func IsRealtime() bool {
	id := goroutineID()
	mu.Lock()
	n := counters[id]
	mu.Unlock()
	return n > 0
}

// goroutineID returns the current goroutine's runtime id by parsing the
// "goroutine N [...]" header that runtime.Stack always emits first. This is
// the same approach used by handwritten event loops that need to detect
// "am I running on my own loop goroutine" without threading a flag through
// every call site.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] >= '0' && buf[i] <= '9' {
			id = id*10 + uint64(buf[i]-'0')
		} else {
			break
		}
	}
	return id
}
