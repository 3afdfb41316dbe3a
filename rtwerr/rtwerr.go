// File: rtwerr/rtwerr.go
// Package rtwerr
//
// Common error types and status codes shared by the worker pool and
// condition-variable packages.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package rtwerr

import (
	"errors"
	"fmt"
)

// Sentinel errors returned on the hot configuration path. Wrap these with
// fmt.Errorf("...: %w", ErrX) to add OS-level context without losing the
// ability to classify the error with errors.Is.
var (
	ErrInvalidArguments = fmt.Errorf("invalid arguments")
	ErrLimitExceeded    = fmt.Errorf("resource limit exceeded")
	ErrPermissionDenied = fmt.Errorf("permission denied")
	ErrRuntimeError     = fmt.Errorf("runtime error")
	ErrNoImplementation = fmt.Errorf("no worker implementation for this platform")
	ErrOSFailure        = fmt.Errorf("operating system failure")
)

// Status mirrors the worker-pool status enumeration.
type Status int

const (
	StatusOK Status = iota
	StatusError
	StatusPermissionDenied
	StatusLimitExceeded
	StatusInvalidArguments
)

// String returns a short human-readable label, used for logs.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusPermissionDenied:
		return "permission-denied"
	case StatusLimitExceeded:
		return "limit-exceeded"
	case StatusInvalidArguments:
		return "invalid-arguments"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Describe maps a Status to a short human-readable string for logs.
func Describe(s Status) string {
	return s.String()
}

// FromError maps a raw OS error into a Status, matching the §4.2 spawn
// failure table. Callers pass the underlying error (e.g. from a failed
// goroutine setup) so the mapping stays centralized.
func FromError(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrLimitExceeded):
		return StatusLimitExceeded
	case errors.Is(err, ErrPermissionDenied):
		return StatusPermissionDenied
	case errors.Is(err, ErrInvalidArguments):
		return StatusInvalidArguments
	default:
		return StatusError
	}
}

// PlatformStatus mirrors the Apple workgroup status enumeration (§6).
type PlatformStatus int

const (
	PlatformStatusOK PlatformStatus = iota
	PlatformStatusWorkgroupCancelled
	PlatformStatusWorkgroupFetchFailed
	PlatformStatusWorkgroupSizeFailed
	PlatformStatusDeviceNameFetchSizeFailed
	PlatformStatusDeviceNameFetchFailed
	PlatformStatusPropertyDataFailed
	PlatformStatusPropertyDataSizeFailed
	PlatformStatusMacOS11NotDetected
	PlatformStatusInvalidDeviceName
	PlatformStatusRealtimeOk
	PlatformStatusRealtimeFailed
	PlatformStatusNoWorkgroupPassed
	PlatformStatusWorkgroupAlreadyCancelled
	PlatformStatusWorkgroupJoiningUnknownFailure
	PlatformStatusEmpty
)

func (p PlatformStatus) String() string {
	names := [...]string{
		"ok", "workgroup-cancelled", "workgroup-fetch-failed", "workgroup-size-failed",
		"device-name-fetch-size-failed", "device-name-fetch-failed", "property-data-failed",
		"property-data-size-failed", "macos11-not-detected", "invalid-device-name",
		"realtime-ok", "realtime-failed", "no-workgroup-passed", "workgroup-already-cancelled",
		"workgroup-joining-unknown-failure", "empty",
	}
	if int(p) < 0 || int(p) >= len(names) {
		return "unknown"
	}
	return names[p]
}
