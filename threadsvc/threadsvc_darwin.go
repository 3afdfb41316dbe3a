//go:build darwin

// File: threadsvc/threadsvc_darwin.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// macOS has no sched_setaffinity equivalent — CPU placement is managed by
// the kernel and, for audio deadlines, by workgroups (see package apple).
// Realtime scheduling itself has no portable Go wrapper, so this drops to
// cgo against the Mach thread policy API, the same escape hatch used on
// Linux (internal/concurrency/pin_linux.go's pthread_setaffinity_np)
// wherever golang.org/x/sys has no equivalent syscall wrapper. Grounded on
// the Mach time-constraint policy shape in
// other_examples/DatanoiseTV-abletonlink-go__realtime_darwin.go.
package threadsvc

/*
#include <mach/mach.h>
#include <mach/thread_policy.h>
#include <mach/thread_act.h>

static int rtworker_set_realtime(unsigned int period_ns, unsigned int computation_ns, unsigned int constraint_ns) {
	thread_time_constraint_policy_data_t policy;
	thread_port_t self = mach_thread_self();

	policy.period = period_ns;
	policy.computation = computation_ns;
	policy.constraint = constraint_ns;
	policy.preemptible = 1;

	kern_return_t kr = thread_policy_set(
		self,
		THREAD_TIME_CONSTRAINT_POLICY,
		(thread_policy_t)&policy,
		THREAD_TIME_CONSTRAINT_POLICY_COUNT);
	return kr == KERN_SUCCESS ? 0 : -1;
}
*/
import "C"

import (
	"fmt"

	"github.com/momentics/rtworker/rtwerr"
)

const supportsAffinity = false

// setRealtimeFIFO maps the requested [0,100] priority onto a Mach
// time-constraint policy: higher priority widens the computation budget
// within the fixed period (from 20% at priority 0 to 80% at 100), which is
// the closest analogue Mach offers to a FIFO priority number.
func setRealtimeFIFO(priority Priority) error {
	const periodNs = 2_902_494 // ~344Hz, a typical low-latency audio period
	fraction := float64(priority) / 100
	computation := uint32(float64(periodNs) * (0.2 + 0.6*fraction))
	constraint := uint32(periodNs)
	if C.rtworker_set_realtime(C.uint(periodNs), C.uint(computation), C.uint(constraint)) != 0 {
		return fmt.Errorf("thread_policy_set: %w", rtwerr.ErrPermissionDenied)
	}
	return nil
}

// pinToCore is a no-op on macOS: affinity is not exposed to userspace.
func pinToCore(core int) error {
	return nil
}
