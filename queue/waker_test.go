package queue

import (
	"testing"
	"time"

	"go.viam.com/test"
)

func TestWakerCoalesces(t *testing.T) {
	w := NewWaker()
	w.Notify()
	w.Notify()
	w.Notify()

	select {
	case <-w.C():
	default:
		t.Fatal("expected a pending wake")
	}

	select {
	case <-w.C():
		t.Fatal("expected the three notifies to have coalesced into one wake")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestWakerNotifyNeverBlocks(t *testing.T) {
	w := NewWaker()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			w.Notify()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked")
	}
	test.That(t, true, test.ShouldBeTrue)
}
