//go:build linux

// File: threadsvc/threadsvc_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package threadsvc

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/momentics/rtworker/rtwerr"
)

const supportsAffinity = true

// SCHED_FIFO per sched.h; x/sys/unix does not expose a high-level
// sched_setscheduler wrapper, so this issues the raw syscall directly,
// the same way cgo affinity code elsewhere drops to
// C.pthread_setaffinity_np when the standard library has no portable
// equivalent.
const schedFIFO = 1

type schedParam struct {
	priority int32
}

func setRealtimeFIFO(priority Priority) error {
	sp := schedParam{priority: int32(priority)}
	_, _, errno := unix.Syscall(unix.SYS_SCHED_SETSCHEDULER, 0, uintptr(schedFIFO), uintptr(unsafe.Pointer(&sp)))
	if errno != 0 {
		return mapErrno(errno, "sched_setscheduler")
	}
	return nil
}

func pinToCore(core int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(core)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return mapErrno(err.(unix.Errno), "sched_setaffinity")
	}
	return nil
}

func mapErrno(errno unix.Errno, op string) error {
	switch errno {
	case unix.EPERM:
		return fmt.Errorf("%s: %w", op, rtwerr.ErrPermissionDenied)
	case unix.EINVAL:
		return fmt.Errorf("%s: %w", op, rtwerr.ErrInvalidArguments)
	case unix.EAGAIN, unix.ENOMEM:
		return fmt.Errorf("%s: %w", op, rtwerr.ErrLimitExceeded)
	default:
		return fmt.Errorf("%s: %w: %v", op, rtwerr.ErrOSFailure, errno)
	}
}
