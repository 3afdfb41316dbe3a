//go:build !darwin

// File: apple/apple_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package apple

import "github.com/momentics/rtworker/rtwerr"

func join(handle WorkgroupHandle) (Token, rtwerr.PlatformStatus) {
	return Token{}, rtwerr.PlatformStatusEmpty
}

func leave(tok Token) rtwerr.PlatformStatus {
	return rtwerr.PlatformStatusEmpty
}
