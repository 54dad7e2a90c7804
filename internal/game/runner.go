package game

import (
	"log"
	"sync"
	"time"
)

// Runner drives one session's tick loop. A single goroutine owns all
// mutation: it drains the inbox into an InputBatch, steps the session, and
// hands the resulting frame to the current subscriber. A slow subscriber
// drops frames rather than stalling the simulation.
type Runner struct {
	session *Session

	inbox chan InputEvent
	stop  chan struct{}
	done  chan struct{}

	tickRate       int
	broadcastEvery int

	mu         sync.Mutex
	subscriber chan *Frame
	lastFrame  *Frame
	stopped    bool
}

// StartRunner launches the tick loop for a session. broadcastEvery controls
// how many ticks elapse between frame deliveries (1 = every tick).
func StartRunner(s *Session, tickRate, broadcastEvery int) *Runner {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	if broadcastEvery <= 0 {
		broadcastEvery = 1
	}
	r := &Runner{
		session:        s,
		inbox:          make(chan InputEvent, 64),
		stop:           make(chan struct{}),
		done:           make(chan struct{}),
		tickRate:       tickRate,
		broadcastEvery: broadcastEvery,
	}
	go r.loop()
	return r
}

func (r *Runner) loop() {
	defer close(r.done)

	ticker := time.NewTicker(time.Second / time.Duration(r.tickRate))
	defer ticker.Stop()

	log.Printf("[SESSION] %s: tick loop started (%d Hz)", r.session.Token, r.tickRate)

	for {
		select {
		case <-r.stop:
			log.Printf("[SESSION] %s: tick loop stopped", r.session.Token)
			return
		case <-ticker.C:
			frame := r.session.Step(r.drainInbox())

			r.mu.Lock()
			r.lastFrame = frame
			if r.subscriber != nil && frame.Tick%uint64(r.broadcastEvery) == 0 {
				select {
				case r.subscriber <- frame:
				default:
					// Subscriber is behind; drop the frame.
				}
			}
			r.mu.Unlock()

			if r.session.Status() != StatusActive {
				log.Printf("[SESSION] %s: session %s, stopping loop", r.session.Token, r.session.Status())
				r.mu.Lock()
				r.stopped = true
				if r.subscriber != nil {
					close(r.subscriber)
					r.subscriber = nil
				}
				r.mu.Unlock()
				if Manager != nil {
					Manager.SessionFinished(r.session)
				}
				return
			}
		}
	}
}

// drainInbox coalesces everything queued since the last tick into one batch.
// The latest pointer position wins; discrete events keep arrival order.
func (r *Runner) drainInbox() InputBatch {
	var batch InputBatch
	for {
		select {
		case ev := <-r.inbox:
			if ev.Type == EventAim {
				p := ev.Pointer
				batch.Pointer = &p
			} else {
				batch.Events = append(batch.Events, ev)
			}
		default:
			return batch
		}
	}
}

// Send queues an input event for the next tick. Events are dropped when the
// inbox is full (a client flooding inputs cannot block the loop).
func (r *Runner) Send(ev InputEvent) {
	select {
	case r.inbox <- ev:
	default:
		log.Printf("[SESSION] %s: inbox full, dropping %s event", r.session.Token, ev.Type)
	}
}

// Subscribe attaches a frame consumer, detaching any previous one (reconnect
// replaces the old socket). The returned channel is closed when the runner
// stops or a newer subscriber takes over.
func (r *Runner) Subscribe() <-chan *Frame {
	ch := make(chan *Frame, 8)

	r.mu.Lock()
	if r.subscriber != nil {
		close(r.subscriber)
	}
	if r.stopped {
		close(ch)
		r.mu.Unlock()
		return ch
	}
	r.subscriber = ch
	r.mu.Unlock()
	return ch
}

// LastFrame returns the most recently built frame, or a fresh one if the
// loop has not ticked yet (get_state support).
func (r *Runner) LastFrame() *Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lastFrame != nil {
		return r.lastFrame
	}
	return r.session.Frame()
}

// Session returns the runner's session.
func (r *Runner) Session() *Session {
	return r.session
}

// Stop halts the tick loop and detaches the subscriber. Safe to call more
// than once.
func (r *Runner) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	if r.subscriber != nil {
		close(r.subscriber)
		r.subscriber = nil
	}
	r.mu.Unlock()

	close(r.stop)
	<-r.done
}
