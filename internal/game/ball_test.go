package game

import (
	"math"
	"testing"
)

func TestDampingConvergence(t *testing.T) {
	// A moving ball with no forces must come to an exact stop in a bounded
	// number of ticks because low speeds truncate to zero.
	b := NewBall(NewVec2(400, 200), ColorWhite)
	b.Velocity = NewVec2(5, 3)

	stopped := -1
	for i := 0; i < 500; i++ {
		b.Step()
		if !b.IsMoving() {
			stopped = i
			break
		}
	}
	if stopped < 0 {
		t.Fatalf("Ball still moving after 500 ticks: vel=(%v,%v)", b.Velocity.X, b.Velocity.Y)
	}
	if b.Velocity.X != 0 || b.Velocity.Y != 0 {
		t.Errorf("Velocity not exactly zero: (%v,%v)", b.Velocity.X, b.Velocity.Y)
	}

	// Position must stay constant once stopped.
	pos := b.Position
	for i := 0; i < 10; i++ {
		b.Step()
	}
	if b.Position != pos {
		t.Errorf("Position drifted after stopping: %v -> %v", pos, b.Position)
	}
}

func TestVelocityTruncationPerAxis(t *testing.T) {
	b := NewBall(NewVec2(400, 200), ColorWhite)
	b.Velocity = NewVec2(0.05, 5)

	b.Step()

	if b.Velocity.X != 0 {
		t.Errorf("X velocity below threshold should truncate to 0, got %v", b.Velocity.X)
	}
	if b.Velocity.Y == 0 {
		t.Errorf("Y velocity above threshold should not truncate")
	}
}

func TestBoundsInvariant(t *testing.T) {
	// Fire a fast ball diagonally from near a corner and verify it never
	// escapes the playable area on any tick.
	b := NewBall(NewVec2(30, 30), ColorWhite)
	b.Velocity = NewVec2(-47, 33)

	for i := 0; i < 400; i++ {
		b.Step()
		if b.Position.X < BallRadius || b.Position.X > TableWidth-BallRadius ||
			b.Position.Y < BallRadius || b.Position.Y > TableHeight-BallRadius {
			t.Fatalf("Tick %d: position out of bounds: (%v,%v)", i, b.Position.X, b.Position.Y)
		}
	}
}

func TestWallReflection(t *testing.T) {
	b := NewBall(NewVec2(780, 200), ColorWhite)
	b.Velocity = NewVec2(20, 0)

	b.Step()

	if b.Velocity.X >= 0 {
		t.Errorf("X velocity should be negated after hitting the right wall, got %v", b.Velocity.X)
	}
	if b.Position.X > TableWidth-BallRadius {
		t.Errorf("Ball clamped position exceeds the wall: %v", b.Position.X)
	}
}

func TestApplyForceIsAdditive(t *testing.T) {
	b := NewBall(NewVec2(400, 200), ColorWhite)

	b.ApplyForce(0, 10)
	b.ApplyForce(0, 5)

	if math.Abs(b.Velocity.X-15) > 1e-9 {
		t.Errorf("Expected compounded velocity 15, got %v", b.Velocity.X)
	}
	if math.Abs(b.Velocity.Y) > 1e-9 {
		t.Errorf("Expected zero Y velocity, got %v", b.Velocity.Y)
	}

	b.ApplyForce(math.Pi/2, 4)
	if math.Abs(b.Velocity.Y-4) > 1e-9 {
		t.Errorf("Expected Y velocity 4 after second impulse, got %v", b.Velocity.Y)
	}
}

func TestCollisionDetectionUsesFullPrecision(t *testing.T) {
	a := NewBall(NewVec2(100, 100), ColorWhite)
	b := NewBall(NewVec2(100+2*BallRadius-0.25, 100), ColorRed)

	if !a.Collides(b) {
		t.Errorf("Sub-pixel overlap should be detected")
	}

	c := NewBall(NewVec2(100+2*BallRadius+0.25, 100), ColorRed)
	if a.Collides(c) {
		t.Errorf("Sub-pixel separation should not be detected as collision")
	}
}

func TestResolveCollisionGuard(t *testing.T) {
	// Separating balls must be left completely untouched.
	a := NewBall(NewVec2(100, 100), ColorWhite)
	b := NewBall(NewVec2(115, 100), ColorRed)
	a.Velocity = NewVec2(-3, 0)
	b.Velocity = NewVec2(3, 0)

	aPos, bPos := a.Position, b.Position
	aVel, bVel := a.Velocity, b.Velocity

	a.ResolveCollision(b)

	if a.Velocity != aVel || b.Velocity != bVel {
		t.Errorf("Separating balls changed velocity: a=%v b=%v", a.Velocity, b.Velocity)
	}
	if a.Position != aPos || b.Position != bPos {
		t.Errorf("Separating balls changed position: a=%v b=%v", a.Position, b.Position)
	}
}

func TestResolveCollisionExchange(t *testing.T) {
	// Head-on hit of a stationary ball: the closing component transfers
	// fully under the equal-mass elastic model.
	a := NewBall(NewVec2(100, 100), ColorWhite)
	b := NewBall(NewVec2(118, 100), ColorRed)
	a.Velocity = NewVec2(6, 0)

	a.ResolveCollision(b)

	if math.Abs(a.Velocity.X) > 1e-9 {
		t.Errorf("Striker should stop dead in a head-on exchange, got %v", a.Velocity.X)
	}
	if math.Abs(b.Velocity.X-6) > 1e-9 {
		t.Errorf("Target should carry the full velocity, got %v", b.Velocity.X)
	}
}

func TestOverlapCorrection(t *testing.T) {
	a := NewBall(NewVec2(100, 100), ColorWhite)
	b := NewBall(NewVec2(112, 100), ColorRed) // 12 apart, 8 of overlap
	a.Velocity = NewVec2(4, 0)

	a.ResolveCollision(b)

	dist := a.Position.DistanceTo(b.Position)
	if math.Abs(dist-2*BallRadius) > 1e-9 {
		t.Errorf("Post-resolution distance should be exactly one diameter, got %v", dist)
	}
}

func TestResolveCollisionSkipsCoincidentCenters(t *testing.T) {
	a := NewBall(NewVec2(100, 100), ColorWhite)
	b := NewBall(NewVec2(100, 100), ColorRed)
	a.Velocity = NewVec2(4, 0)

	a.ResolveCollision(b) // must not divide by zero

	if a.Velocity.X != 4 || !b.Velocity.IsZero() {
		t.Errorf("Coincident centers should skip resolution entirely")
	}
}

func TestPerpendicularComponentUntouched(t *testing.T) {
	// A glancing contact only exchanges the component along the line of
	// centers; the perpendicular component survives.
	a := NewBall(NewVec2(100, 100), ColorWhite)
	b := NewBall(NewVec2(118, 100), ColorRed)
	a.Velocity = NewVec2(5, 2)

	a.ResolveCollision(b)

	if math.Abs(a.Velocity.Y-2) > 1e-9 {
		t.Errorf("Perpendicular velocity should be untouched, got %v", a.Velocity.Y)
	}
	if math.Abs(b.Velocity.Y) > 1e-9 {
		t.Errorf("Target should receive no perpendicular velocity, got %v", b.Velocity.Y)
	}
}

func TestBallReset(t *testing.T) {
	b := NewBall(NewVec2(400, 200), ColorWhite)
	b.Velocity = NewVec2(7, -3)
	b.Step()
	b.Step()

	b.Reset()

	if b.Position != NewVec2(400, 200) {
		t.Errorf("Reset should restore the initial position, got %v", b.Position)
	}
	if b.IsMoving() {
		t.Errorf("Reset should zero the velocity")
	}
}
