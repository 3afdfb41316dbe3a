package threadsvc

import (
	"errors"
	"testing"

	"github.com/momentics/rtworker/rtwerr"
)

func TestSetRealtimeFIFO_RejectsOutOfRangePriority(t *testing.T) {
	for _, p := range []Priority{-17, 101, 1000} {
		if err := SetRealtimeFIFO(p); !errors.Is(err, rtwerr.ErrInvalidArguments) {
			t.Errorf("priority %d: got %v, want ErrInvalidArguments", p, err)
		}
	}
}

func TestPinToCore_RejectsNegativeCore(t *testing.T) {
	if err := PinToCore(-1); !errors.Is(err, rtwerr.ErrInvalidArguments) {
		t.Errorf("got %v, want ErrInvalidArguments", err)
	}
}
