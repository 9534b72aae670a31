package notify

import (
	"testing"
	"time"
)

func TestBroadcasterSignalReachesAllSubscribers(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()

	ch1, cancel1 := b.Subscribe()
	defer cancel1()
	ch2, cancel2 := b.Subscribe()
	defer cancel2()

	b.Signal()

	for i, ch := range []<-chan struct{}{ch1, ch2} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d missed signal", i)
		}
	}
}

func TestBroadcasterPendingSignalAbsorbed(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()

	ch, cancel := b.Subscribe()
	defer cancel()

	// A subscriber that has not drained yet absorbs further signals
	// instead of blocking the emitter.
	b.Signal()
	b.Signal()
	b.Signal()

	<-ch
	select {
	case <-ch:
		t.Fatal("coalesced signals delivered more than once")
	default:
	}
}

func TestBroadcasterCancelStopsDelivery(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()

	ch, cancel := b.Subscribe()
	cancel()
	cancel() // safe to call twice

	b.Signal()
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("cancelled subscriber received signal")
		}
	default:
	}
}

func TestBroadcasterCloseReleasesSubscribers(t *testing.T) {
	b := NewBroadcaster()

	ch, cancel := b.Subscribe()
	defer cancel()

	b.Close()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("close delivered a value instead of closing")
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber channel not closed")
	}

	// Closed broadcasters hand out pre-closed channels and ignore signals.
	late, lateCancel := b.Subscribe()
	defer lateCancel()
	if _, ok := <-late; ok {
		t.Fatal("late subscription delivered a value")
	}
	b.Signal()
	b.Close()
}
