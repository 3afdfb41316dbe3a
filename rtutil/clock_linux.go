//go:build linux

// File: rtutil/clock_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package rtutil

import (
	"time"

	"golang.org/x/sys/unix"
)

// currentRTKernelTime reads CLOCK_MONOTONIC_RAW directly, avoiding the Go
// runtime's own monotonic reading for callers that specifically asked for
// the realtime-kernel clock domain.
func currentRTKernelTime() time.Duration {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC_RAW, &ts); err != nil {
		return time.Duration(time.Now().UnixNano())
	}
	return time.Duration(ts.Nano())
}
