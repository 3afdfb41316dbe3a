package pool

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/momentics/rtworker/rtwerr"
)

func TestAddWorker_TwoWorkersOneGeneration(t *testing.T) {
	p, err := New(DefaultCores(2))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer p.Close()

	var a, b bool
	status, _ := p.AddWorker(func(any) { a = true }, nil)
	if status != rtwerr.StatusOK {
		t.Fatalf("add worker a: %v", status)
	}
	status, _ = p.AddWorker(func(any) { b = true }, nil)
	if status != rtwerr.StatusOK {
		t.Fatalf("add worker b: %v", status)
	}

	if a || b {
		t.Fatal("callbacks ran before wake")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.WakeAndWait(ctx); err != nil {
		t.Fatalf("wake and wait: %v", err)
	}
	if !a || !b {
		t.Fatal("expected both callbacks to have run")
	}
}

func TestAddWorker_ExplicitCoreOutOfRange(t *testing.T) {
	p, err := New(DefaultCores(4))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer p.Close()

	status, _ := p.AddWorker(func(any) {}, nil, WithCore(5))
	if status != rtwerr.StatusInvalidArguments {
		t.Fatalf("got %v, want InvalidArguments", status)
	}
	if p.NumWorkers() != 0 {
		t.Fatalf("expected n_workers unchanged, got %d", p.NumWorkers())
	}
}

func TestAddWorker_InvalidPriority(t *testing.T) {
	p, err := New(DefaultCores(4))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer p.Close()

	for _, prio := range []int{-17, 102} {
		status, _ := p.AddWorker(func(any) {}, nil, WithPriority(prio))
		if status != rtwerr.StatusInvalidArguments {
			t.Errorf("priority %d: got %v, want InvalidArguments", prio, status)
		}
	}
	if p.NumWorkers() != 0 {
		t.Fatalf("expected no workers added, got %d", p.NumWorkers())
	}
}

func TestAddWorker_AutoAffinitySpreadsAcrossCores(t *testing.T) {
	p, err := New(DefaultCores(4))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer p.Close()

	for i := 0; i < 4; i++ {
		status, _ := p.AddWorker(func(any) {}, nil)
		if status != rtwerr.StatusOK {
			t.Fatalf("add worker %d: %v", i, status)
		}
	}

	counts := p.CoreWorkerCounts()
	for core, n := range counts {
		if n != 1 {
			t.Errorf("core %d has %d workers, want 1", core, n)
		}
	}
}

func TestAddWorker_AutoAffinityTieBreaksTowardLowestCore(t *testing.T) {
	p, err := New(DefaultCores(4))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer p.Close()

	// All cores start equally unused, so the first auto-placed worker must
	// land on core 0, matching the original's tie-break.
	status, _ := p.AddWorker(func(any) {}, nil)
	if status != rtwerr.StatusOK {
		t.Fatalf("add worker: %v", status)
	}

	counts := p.CoreWorkerCounts()
	if counts[0] != 1 {
		t.Fatalf("expected core 0 to receive the tie-broken worker, got counts %v", counts)
	}
	for core := 1; core < 4; core++ {
		if counts[core] != 0 {
			t.Errorf("core %d unexpectedly has %d workers", core, counts[core])
		}
	}
}

func TestAddWorker_ReturnsParkedWorker(t *testing.T) {
	p, err := New(DefaultCores(1))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer p.Close()

	status, _ := p.AddWorker(func(any) {}, nil)
	if status != rtwerr.StatusOK {
		t.Fatalf("add worker: %v", status)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := p.WaitForWorkersIdle(ctx); err != nil {
		t.Fatalf("expected immediate idle after add_worker, got %v", err)
	}
}

func TestPool_MultipleGenerationsRunExactlyOnce(t *testing.T) {
	const workers = 3
	const generations = 20

	p, err := New(DefaultCores(workers))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer p.Close()

	counts := make([]int, workers)
	for i := 0; i < workers; i++ {
		idx := i
		status, _ := p.AddWorker(func(any) { counts[idx]++ }, nil)
		if status != rtwerr.StatusOK {
			t.Fatalf("add worker %d: %v", i, status)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for g := 0; g < generations; g++ {
		if err := p.WakeAndWait(ctx); err != nil {
			t.Fatalf("gen %d: %v", g, err)
		}
	}

	for i, c := range counts {
		if c != generations {
			t.Errorf("worker %d ran %d times, want %d", i, c, generations)
		}
	}
}

func TestPool_Close_SecondCallIsSafeNoOp(t *testing.T) {
	p, err := New(DefaultCores(2))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	status, _ := p.AddWorker(func(any) {}, nil)
	if status != rtwerr.StatusOK {
		t.Fatalf("add worker: %v", status)
	}

	if err := p.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- p.Close() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("second close: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("second Close call hung instead of returning as a no-op")
	}
}

func TestPool_New_RejectsEmptyCores(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, rtwerr.ErrInvalidArguments) {
		t.Fatalf("got %v, want ErrInvalidArguments", err)
	}
}
