//go:build !linux

// File: rtcond/rtpipe_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package rtcond

// newRTPipe is only reachable when rtkernel.Enabled() is true, which is
// itself only meaningful on a Linux PREEMPT_RT-style kernel. On other
// platforms it degrades to the mutex+condvar variant rather than failing
// construction outright.
func newRTPipe() (CondVar, error) {
	return newMutexCondVar(), nil
}
