package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/momentics/rtworker/barrier"
)

func TestWorker_RunRejectsInvalidPriority(t *testing.T) {
	b := barrier.New(1)
	var running atomic.Bool
	running.Store(true)
	w := New(b, &running, func(any) {}, nil, Config{})

	for _, p := range []int{-17, 102} {
		if err := w.Run(p, 0); err == nil {
			t.Errorf("priority %d: expected error", p)
		}
	}
}

func TestWorker_RunsCallbackOnRelease(t *testing.T) {
	b := barrier.New(1)
	var running atomic.Bool
	running.Store(true)

	var invoked atomic.Int32
	w := New(b, &running, func(data any) {
		invoked.Add(1)
	}, "payload", Config{})

	if err := w.Run(75, 0); err != nil {
		t.Fatalf("run: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := b.WaitForAll(ctx); err != nil {
		t.Fatalf("wait for all: %v", err)
	}

	b.ReleaseAll()

	deadline := time.After(time.Second)
	for invoked.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("callback was not invoked after release")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if err := b.WaitForAll(ctx); err != nil {
		t.Fatalf("wait for all after callback: %v", err)
	}
}

func TestWorker_StopExitsLoop(t *testing.T) {
	b := barrier.New(1)
	var running atomic.Bool
	running.Store(true)

	w := New(b, &running, func(any) {}, nil, Config{})
	if err := w.Run(75, 0); err != nil {
		t.Fatalf("run: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := b.WaitForAll(ctx); err != nil {
		t.Fatalf("wait for all: %v", err)
	}

	w.Stop()
	b.ReleaseAll()

	if err := w.Join(ctx); err != nil {
		t.Fatalf("join: %v", err)
	}
}
