package game

import (
	"sync"
	"time"
)

// GameStatus represents a session's lifecycle state.
type GameStatus string

const (
	StatusActive    GameStatus = "ACTIVE"
	StatusCompleted GameStatus = "COMPLETED"
	StatusExpired   GameStatus = "EXPIRED"
)

// EventType identifies a discrete player input.
type EventType string

const (
	EventAim             EventType = "aim"
	EventStrike          EventType = "strike"
	EventPowerUp         EventType = "power_up"
	EventPowerDown       EventType = "power_down"
	EventToggleGuideline EventType = "toggle_guideline"
	EventQuit            EventType = "quit"
)

// InputEvent is one player input delivered to the session.
type InputEvent struct {
	Type    EventType `json:"type"`
	Pointer Vec2      `json:"pointer"` // aim events only
}

// InputBatch is the set of inputs consumed by one tick. Pointer movement is
// coalesced latest-wins between ticks; discrete events queue in arrival
// order.
type InputBatch struct {
	Pointer *Vec2
	Events  []InputEvent
}

// Session owns one table: the cue ball, the object balls in insertion order
// (the deterministic tie-break order for collision checks), the pocket set,
// the cue, and the score. All mutation happens inside Step, which the runner
// calls from a single goroutine; the lock exists for concurrent readers
// (HTTP state queries, persistence snapshots).
type Session struct {
	Token       string
	DisplayName string

	cueBall *Ball
	balls   []*Ball
	pockets []Pocket
	cue     *Cue

	score   int
	tick    uint64
	pointer Vec2
	status  GameStatus

	ballsPocketed int
	scratches     int
	racksCleared  int

	createdAt    time.Time
	lastActivity time.Time
	completedAt  *time.Time

	mu sync.RWMutex
}

// NewSession creates a freshly racked table.
func NewSession(token, displayName string) *Session {
	now := time.Now()
	return &Session{
		Token:        token,
		DisplayName:  displayName,
		cueBall:      NewCueBall(),
		balls:        NewRack(),
		pockets:      TablePockets(),
		cue:          NewCue(),
		status:       StatusActive,
		pointer:      NewVec2(TableWidth/2, TableHeight/2),
		createdAt:    now,
		lastActivity: now,
	}
}

// Step advances the simulation by one tick: discrete events, integration,
// scratch check, aim update, collision resolution, pocket capture, rack
// reset, then the frame build. The scratch check deliberately precedes
// collision resolution while object-ball capture follows it; tests depend on
// that relative order.
func (s *Session) Step(batch InputBatch) *Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusActive {
		return s.buildFrame()
	}

	if len(batch.Events) > 0 || batch.Pointer != nil {
		s.lastActivity = time.Now()
	}
	for _, ev := range batch.Events {
		s.applyEvent(ev)
	}
	if batch.Pointer != nil {
		s.pointer = *batch.Pointer
	}

	s.cueBall.Step()
	for _, b := range s.balls {
		b.Step()
	}

	if s.inPocket(s.cueBall.Position) {
		s.score -= ScratchPenalty
		s.scratches++
		s.cueBall.Reset()
	}

	s.cue.Aim(s.cueBall.Position, s.pointer)

	s.checkCollisions()
	s.checkPockets()

	if len(s.balls) == 0 {
		s.balls = NewRack()
		s.cueBall.Reset()
		s.racksCleared++
	}

	s.tick++
	return s.buildFrame()
}

// applyEvent handles one discrete event. A strike is ignored while the cue
// ball is still moving; that gate lives here, not in the ball.
func (s *Session) applyEvent(ev InputEvent) {
	switch ev.Type {
	case EventStrike:
		if !s.cueBall.IsMoving() {
			s.cueBall.ApplyForce(s.cue.Angle, s.cue.Power)
		}
	case EventPowerUp:
		s.cue.PowerUp()
	case EventPowerDown:
		s.cue.PowerDown()
	case EventToggleGuideline:
		s.cue.ToggleGuideline()
	case EventQuit:
		s.completeLocked(StatusCompleted)
	}
}

// checkCollisions runs the per-tick collision pass: cue ball against every
// object ball in insertion order, then a single forward pass over unordered
// object-ball pairs. Each resolution mutates velocities immediately, so later
// pairs in the same tick observe the updated values. Not exact for 3+-body
// simultaneous contact, but stable at this ball density.
func (s *Session) checkCollisions() {
	for _, b := range s.balls {
		if s.cueBall.Collides(b) {
			s.cueBall.ResolveCollision(b)
		}
	}

	for i := 0; i < len(s.balls); i++ {
		for j := i + 1; j < len(s.balls); j++ {
			if s.balls[i].Collides(s.balls[j]) {
				s.balls[i].ResolveCollision(s.balls[j])
			}
		}
	}
}

// checkPockets removes captured object balls and scores them.
func (s *Session) checkPockets() {
	kept := s.balls[:0]
	for _, b := range s.balls {
		if s.inPocket(b.Position) {
			s.score++
			s.ballsPocketed++
			continue
		}
		kept = append(kept, b)
	}
	s.balls = kept
}

func (s *Session) inPocket(pos Vec2) bool {
	for _, p := range s.pockets {
		if p.Contains(pos) {
			return true
		}
	}
	return false
}

func (s *Session) completeLocked(status GameStatus) {
	if s.status != StatusActive {
		return
	}
	s.status = status
	now := time.Now()
	s.completedAt = &now
}

// Expire marks an abandoned session as expired.
func (s *Session) Expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completeLocked(StatusExpired)
}

// Status returns the session's current lifecycle state.
func (s *Session) Status() GameStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// LastActivity returns the time of the most recent player input.
func (s *Session) LastActivity() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActivity
}

// Frame rebuilds the draw list from the current state without advancing the
// simulation (reconnect and spectator support).
func (s *Session) Frame() *Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buildFrame()
}

// PublicState is the session summary exposed over the HTTP API and persisted
// to Redis snapshots.
type PublicState struct {
	Token          string     `json:"token"`
	DisplayName    string     `json:"display_name"`
	Status         GameStatus `json:"status"`
	Score          int        `json:"score"`
	Power          float64    `json:"power"`
	BallsRemaining int        `json:"balls_remaining"`
	BallsPocketed  int        `json:"balls_pocketed"`
	Scratches      int        `json:"scratches"`
	RacksCleared   int        `json:"racks_cleared"`
	Tick           uint64     `json:"tick"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// State returns the public session summary.
func (s *Session) State() PublicState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return PublicState{
		Token:          s.Token,
		DisplayName:    s.DisplayName,
		Status:         s.status,
		Score:          s.score,
		Power:          s.cue.Power,
		BallsRemaining: len(s.balls),
		BallsPocketed:  s.ballsPocketed,
		Scratches:      s.scratches,
		RacksCleared:   s.racksCleared,
		Tick:           s.tick,
		CreatedAt:      s.createdAt,
		CompletedAt:    s.completedAt,
	}
}
