//go:build linux

// File: rtcond/rtpipe_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package rtcond

import (
	"encoding/binary"
	"fmt"
	"sync/atomic"

	"golang.org/x/sys/unix"

	"github.com/momentics/rtworker/rtflag"
	"github.com/momentics/rtworker/rtwerr"
)

// rtMsgType and nonRTMsgType mirror the two wire widths the original
// Xenomai condition variable uses for its two notify paths: one byte on
// the realtime side, and the 8-byte counter eventfd requires on Linux.
type rtMsgType = uint8
type nonRTMsgType = uint64

// rtPipeCondVar implements CondVar with two distinct descriptors under a
// dedicated realtime kernel, mirroring the domain split of the original
// XenomaiConditionVariable: a realtime-domain caller writes to its own
// non-blocking pipe, and a non-realtime-domain caller writes to a
// separate Linux eventfd, so the two domains never contend on the same
// descriptor or block behind each other. This module has no access to a
// real Xenomai/EVL co-kernel (no XDDP socket, no evl/xbuf), so it cannot
// give the realtime side the original's true no-mode-switch guarantee;
// see DESIGN.md for the documented reduction.
type rtPipeCondVar struct {
	id int

	rtReadFD  int
	rtWriteFD int

	nonRTFD int

	closed atomic.Bool
}

func newRTPipe() (CondVar, error) {
	id, err := GetNextID()
	if err != nil {
		return nil, fmt.Errorf("rtcond: %w", err)
	}

	var rtFDs [2]int
	if err := unix.Pipe2(rtFDs[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		DeregisterID(id)
		return nil, fmt.Errorf("rtcond: pipe2: %w: %v", rtwerr.ErrOSFailure, err)
	}

	nonRTFD, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		unix.Close(rtFDs[0])
		unix.Close(rtFDs[1])
		DeregisterID(id)
		return nil, fmt.Errorf("rtcond: eventfd: %w: %v", rtwerr.ErrOSFailure, err)
	}

	return &rtPipeCondVar{id: id, rtReadFD: rtFDs[0], rtWriteFD: rtFDs[1], nonRTFD: nonRTFD}, nil
}

// Notify routes the wakeup through the caller's own domain descriptor:
// the realtime pipe for a realtime caller, the eventfd otherwise. Both
// writes are non-blocking and never touch the other domain's descriptor.
func (c *rtPipeCondVar) Notify() {
	if c.closed.Load() {
		return
	}
	if rtflag.IsRealtime() {
		var msg rtMsgType = 1
		_, _ = unix.Write(c.rtWriteFD, []byte{msg})
		return
	}
	var buf [8]byte
	var msg nonRTMsgType = 1
	binary.NativeEndian.PutUint64(buf[:], msg)
	_, _ = unix.Write(c.nonRTFD, buf[:])
}

// Wait blocks on either descriptor and drains both, so a burst of
// notifies from either or both domains collapses into one wakeup.
func (c *rtPipeCondVar) Wait() bool {
	fds := []unix.PollFd{
		{Fd: int32(c.rtReadFD), Events: unix.POLLIN},
		{Fd: int32(c.nonRTFD), Events: unix.POLLIN},
	}
	for {
		n, err := unix.Poll(fds, -1)
		if err == unix.EINTR {
			continue
		}
		if err != nil || n == 0 {
			return !c.closed.Load()
		}
		break
	}
	rtDrained := c.drain(c.rtReadFD)
	nonRTDrained := c.drain(c.nonRTFD)
	return (rtDrained || nonRTDrained) && !c.closed.Load()
}

// drain reads every byte currently queued on fd and reports whether any
// bytes were read.
func (c *rtPipeCondVar) drain(fd int) bool {
	var buf [64]byte
	gotData := false
	for {
		n, err := unix.Read(fd, buf[:])
		if n > 0 {
			gotData = true
		}
		if n <= 0 || err != nil {
			return gotData
		}
		if n < len(buf) {
			return gotData
		}
	}
}

func (c *rtPipeCondVar) Close() error {
	c.closed.Store(true)
	var buf [8]byte
	binary.NativeEndian.PutUint64(buf[:], 1)
	_, _ = unix.Write(c.nonRTFD, buf[:])
	unix.Close(c.rtWriteFD)
	unix.Close(c.rtReadFD)
	unix.Close(c.nonRTFD)
	DeregisterID(c.id)
	return nil
}
