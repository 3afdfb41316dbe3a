//go:build windows

// File: threadsvc/threadsvc_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package threadsvc

import (
	"fmt"

	"golang.org/x/sys/windows"

	"github.com/momentics/rtworker/rtwerr"
)

const supportsAffinity = true

var (
	modkernel32               = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadAffinityMask = modkernel32.NewProc("SetThreadAffinityMask")
	procGetCurrentThread      = modkernel32.NewProc("GetCurrentThread")
	procSetThreadPriority     = modkernel32.NewProc("SetThreadPriority")
	procSetPriorityClass      = modkernel32.NewProc("SetPriorityClass")
	procGetCurrentProcess     = modkernel32.NewProc("GetCurrentProcess")
)

const (
	realtimePriorityClass = 0x00000100
	// THREAD_PRIORITY_TIME_CRITICAL is the highest Windows thread priority;
	// [0,100] is linearly mapped onto Windows' much coarser [-15,15] scale.
	threadPriorityTimeCritical = 15
	threadPriorityIdle         = -15
)

func setRealtimeFIFO(priority Priority) error {
	proc, _, _ := procGetCurrentProcess.Call()
	if ok, _, err := procSetPriorityClass.Call(proc, uintptr(realtimePriorityClass)); ok == 0 {
		return fmt.Errorf("SetPriorityClass: %w: %v", rtwerr.ErrPermissionDenied, err)
	}

	span := threadPriorityTimeCritical - threadPriorityIdle
	winPrio := threadPriorityIdle + int(priority)*span/100

	thread, _, _ := procGetCurrentThread.Call()
	if ok, _, err := procSetThreadPriority.Call(thread, uintptr(winPrio)); ok == 0 {
		return fmt.Errorf("SetThreadPriority: %w: %v", rtwerr.ErrPermissionDenied, err)
	}
	return nil
}

func pinToCore(core int) error {
	thread, _, _ := procGetCurrentThread.Call()
	mask := uintptr(1) << uint(core)
	old, _, err := procSetThreadAffinityMask.Call(thread, mask)
	if old == 0 {
		return fmt.Errorf("SetThreadAffinityMask: %w: %v", rtwerr.ErrOSFailure, err)
	}
	return nil
}
