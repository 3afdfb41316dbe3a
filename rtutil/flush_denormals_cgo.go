//go:build amd64 && cgo

// File: rtutil/flush_denormals_cgo.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// CGO escape hatch for the two MXCSR bits Go has no portable intrinsic for,
// the same cgo-for-what-the-standard-library-can't-do precedent as
// internal/concurrency/pin_linux.go.
package rtutil

/*
#include <xmmintrin.h>
#include <pmmintrin.h>

static void rtworker_set_ftz_daz(void) {
	_MM_SET_FLUSH_ZERO_MODE(_MM_FLUSH_ZERO_ON);
	_MM_SET_DENORMALS_ZERO_MODE(_MM_DENORMALS_ZERO_ON);
}
*/
import "C"

func setFlushToZeroAMD64() {
	C.rtworker_set_ftz_daz()
}
