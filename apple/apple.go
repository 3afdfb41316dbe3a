// File: apple/apple.go
// Package apple models the optional Apple CoreAudio workgroup join/leave
// hook a WorkerThread uses on macOS. Obtaining a WorkgroupHandle from a
// device name is out of scope for this library: callers supply the handle
// they already queried from CoreAudio.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package apple

import "github.com/momentics/rtworker/rtwerr"

// WorkgroupHandle is an opaque handle to an OS-managed workgroup, supplied
// by the caller.
type WorkgroupHandle uintptr

// Token is valid only while its workgroup remains joined. Tokens must be
// released in reverse order of acquisition.
type Token struct {
	handle WorkgroupHandle
	valid  bool
}

// Join attempts to join the calling thread to the given workgroup. A zero
// handle is treated as "no workgroup passed" and reported via
// PlatformStatusNoWorkgroupPassed.
func Join(handle WorkgroupHandle) (Token, rtwerr.PlatformStatus) {
	if handle == 0 {
		return Token{}, rtwerr.PlatformStatusNoWorkgroupPassed
	}
	return join(handle)
}

// Leave releases a join token. Callers must release tokens in reverse
// order of acquisition; Leave on an already-invalid token reports
// WorkgroupAlreadyCancelled rather than panicking, since it runs on a
// worker's shutdown path where surfacing a status is more useful than a
// crash.
func Leave(tok Token) rtwerr.PlatformStatus {
	if !tok.valid {
		return rtwerr.PlatformStatusWorkgroupAlreadyCancelled
	}
	return leave(tok)
}
