package rtkernel

import "testing"

func resetForTest() {
	enabled.Store(false)
	initialized.Store(false)
	observed.Store(false)
}

func TestEnabled_DefaultsFalse(t *testing.T) {
	resetForTest()
	if Enabled() {
		t.Fatal("expected realtime-kernel mode to default to false")
	}
}

func TestInit_EnablesMode(t *testing.T) {
	resetForTest()
	Init()
	if !Enabled() {
		t.Fatal("expected Enabled to be true after Init")
	}
}

func TestInit_PanicsOnSecondCall(t *testing.T) {
	resetForTest()
	Init()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on second Init call")
		}
	}()
	Init()
}

func TestInit_PanicsAfterObserved(t *testing.T) {
	resetForTest()
	_ = Enabled()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when Init follows an observed Enabled call")
		}
	}()
	Init()
}
