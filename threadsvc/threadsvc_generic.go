//go:build !linux && !darwin && !windows

// File: threadsvc/threadsvc_generic.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package threadsvc

import "github.com/momentics/rtworker/rtwerr"

// supportsAffinity is false on platforms with no dedicated binding below;
// PinToCore degrades to a no-op and SetRealtimeFIFO reports unsupported.
const supportsAffinity = false

func setRealtimeFIFO(priority Priority) error {
	return rtwerr.ErrPermissionDenied
}

func pinToCore(core int) error {
	return nil
}
