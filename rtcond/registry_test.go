package rtcond

import "testing"

func TestRegistry_AllocationOrder(t *testing.T) {
	var r registry

	id0, err := r.getNextID()
	if err != nil || id0 != 0 {
		t.Fatalf("id0 = %d, err = %v", id0, err)
	}
	id1, err := r.getNextID()
	if err != nil || id1 != 1 {
		t.Fatalf("id1 = %d, err = %v", id1, err)
	}
	id2, err := r.getNextID()
	if err != nil || id2 != 2 {
		t.Fatalf("id2 = %d, err = %v", id2, err)
	}

	r.deregisterID(1)

	id3, err := r.getNextID()
	if err != nil || id3 != 1 {
		t.Fatalf("expected reallocated id 1, got %d, err = %v", id3, err)
	}

	id4, err := r.getNextID()
	if err != nil || id4 != 3 {
		t.Fatalf("expected id 3, got %d, err = %v", id4, err)
	}
}

func TestRegistry_ExhaustionErrors(t *testing.T) {
	var r registry
	for i := 0; i < MaxRTCondVars; i++ {
		if _, err := r.getNextID(); err != nil {
			t.Fatalf("unexpected error at %d: %v", i, err)
		}
	}
	if _, err := r.getNextID(); err == nil {
		t.Fatal("expected error when registry is exhausted")
	}
}
