package game

import (
	"testing"
	"time"
)

func TestRunnerDeliversFrames(t *testing.T) {
	r := StartRunner(NewSession("tok", "Tester"), 120, 1)
	defer r.Stop()

	frames := r.Subscribe()
	select {
	case f, ok := <-frames:
		if !ok {
			t.Fatalf("Frame channel closed before any frame")
		}
		if len(f.Circles) == 0 {
			t.Errorf("Delivered frame has no draw calls")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("No frame delivered within 2s")
	}
}

func TestRunnerStopsOnQuit(t *testing.T) {
	r := StartRunner(NewSession("tok", "Tester"), 120, 1)

	frames := r.Subscribe()
	r.Send(InputEvent{Type: EventQuit})

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-frames:
			if !ok {
				if got := r.Session().Status(); got != StatusCompleted {
					t.Errorf("Expected COMPLETED after quit, got %s", got)
				}
				return
			}
		case <-deadline:
			t.Fatalf("Runner did not shut down after quit")
		}
	}
}

func TestSubscribeReplacesPrevious(t *testing.T) {
	r := StartRunner(NewSession("tok", "Tester"), 120, 1)
	defer r.Stop()

	first := r.Subscribe()
	r.Subscribe()

	// The first channel must be closed promptly so a stale reader exits.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-first:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("Previous subscriber channel never closed")
		}
	}
}

func TestDrainInboxCoalescesPointer(t *testing.T) {
	r := &Runner{inbox: make(chan InputEvent, 64)}

	r.inbox <- InputEvent{Type: EventAim, Pointer: NewVec2(10, 10)}
	r.inbox <- InputEvent{Type: EventPowerUp}
	r.inbox <- InputEvent{Type: EventAim, Pointer: NewVec2(30, 40)}
	r.inbox <- InputEvent{Type: EventStrike}

	batch := r.drainInbox()

	if batch.Pointer == nil || *batch.Pointer != NewVec2(30, 40) {
		t.Errorf("Latest pointer should win, got %v", batch.Pointer)
	}
	if len(batch.Events) != 2 || batch.Events[0].Type != EventPowerUp || batch.Events[1].Type != EventStrike {
		t.Errorf("Discrete events should keep arrival order, got %v", batch.Events)
	}
}

func TestSendDropsWhenInboxFull(t *testing.T) {
	r := &Runner{session: NewSession("tok", "Tester"), inbox: make(chan InputEvent, 2)}

	r.Send(InputEvent{Type: EventPowerUp})
	r.Send(InputEvent{Type: EventPowerUp})

	done := make(chan struct{})
	go func() {
		r.Send(InputEvent{Type: EventPowerUp}) // must not block
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Send blocked on a full inbox")
	}

	if len(r.inbox) != 2 {
		t.Errorf("Overflow event should be dropped, inbox has %d", len(r.inbox))
	}
}

func TestSubscribeAfterStopReturnsClosedChannel(t *testing.T) {
	r := StartRunner(NewSession("tok", "Tester"), 120, 1)
	r.Stop()

	ch := r.Subscribe()
	select {
	case _, ok := <-ch:
		if ok {
			t.Errorf("Stopped runner delivered a frame")
		}
	case <-time.After(time.Second):
		t.Fatalf("Channel from a stopped runner should be closed immediately")
	}
}
