//go:build linux

package rtcond

import (
	"testing"
	"time"

	"github.com/momentics/rtworker/rtflag"
)

func TestRTPipeCondVar_RealtimeDomainNotifyUnblocksWaiter(t *testing.T) {
	cv, err := newRTPipe()
	if err != nil {
		t.Fatalf("newRTPipe: %v", err)
	}
	defer cv.Close()

	done := make(chan bool, 1)
	go func() { done <- cv.Wait() }()

	time.Sleep(10 * time.Millisecond)

	go func() {
		leave := rtflag.Enter()
		defer leave()
		cv.Notify()
	}()

	select {
	case woke := <-done:
		if !woke {
			t.Fatal("expected a real notify from the realtime domain")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not unblock after a realtime-domain Notify")
	}
}

func TestRTPipeCondVar_NonRealtimeDomainNotifyUnblocksWaiter(t *testing.T) {
	cv, err := newRTPipe()
	if err != nil {
		t.Fatalf("newRTPipe: %v", err)
	}
	defer cv.Close()

	if rtflag.IsRealtime() {
		t.Fatal("test goroutine unexpectedly marked realtime")
	}

	done := make(chan bool, 1)
	go func() { done <- cv.Wait() }()

	time.Sleep(10 * time.Millisecond)
	cv.Notify()

	select {
	case woke := <-done:
		if !woke {
			t.Fatal("expected a real notify from the non-realtime domain")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not unblock after a non-realtime-domain Notify")
	}
}

func TestRTPipeCondVar_CloseUnblocksWaiter(t *testing.T) {
	cv, err := newRTPipe()
	if err != nil {
		t.Fatalf("newRTPipe: %v", err)
	}

	done := make(chan bool, 1)
	go func() { done <- cv.Wait() }()

	time.Sleep(10 * time.Millisecond)
	cv.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not unblock the blocked waiter")
	}
}
