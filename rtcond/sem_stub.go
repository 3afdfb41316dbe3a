//go:build !cgo || (!linux && !darwin)

// File: rtcond/sem_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package rtcond

import "github.com/momentics/rtworker/rtwerr"

// supportsNamedSemaphores is false wherever cgo is disabled or the
// platform has no POSIX named semaphores (e.g. Windows); New falls back
// to the mutex+condvar variant in that case and never calls newSemCondVar.
const supportsNamedSemaphores = false

func newSemCondVar() (CondVar, error) {
	return nil, rtwerr.ErrNoImplementation
}
