package apple

import (
	"testing"

	"github.com/momentics/rtworker/rtwerr"
)

func TestJoin_ZeroHandle(t *testing.T) {
	_, status := Join(0)
	if status != rtwerr.PlatformStatusNoWorkgroupPassed {
		t.Fatalf("got %v, want NoWorkgroupPassed", status)
	}
}

func TestLeave_InvalidToken(t *testing.T) {
	status := Leave(Token{})
	if status != rtwerr.PlatformStatusWorkgroupAlreadyCancelled {
		t.Fatalf("got %v, want WorkgroupAlreadyCancelled", status)
	}
}
