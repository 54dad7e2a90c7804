package game

import "math"

// Ball is a single ball's physics state. The cue ball and object balls share
// this type; which one is the cue ball is a role held by the session, not a
// subtype.
type Ball struct {
	Position Vec2  `json:"position"`
	Velocity Vec2  `json:"velocity"`
	Color    Color `json:"color"`

	initialPos Vec2
}

// NewBall creates a stationary ball. The starting position is remembered so
// Reset can return the ball to it after a scratch or rack reset.
func NewBall(pos Vec2, col Color) *Ball {
	return &Ball{Position: pos, Color: col, initialPos: pos}
}

// IsMoving reports whether either velocity component is nonzero. Step
// truncates small components to exactly zero, so this is an exact test.
func (b *Ball) IsMoving() bool {
	return !b.Velocity.IsZero()
}

// Reset returns the ball to its initial position with zero velocity.
func (b *Ball) Reset() {
	b.Position = b.initialPos
	b.Velocity = Vec2{}
}

// Step advances the ball by one tick: integrate position, apply exponential
// damping, truncate near-zero velocity, reflect off table edges, and clamp
// the position back inside the playable area.
func (b *Ball) Step() {
	b.Position = b.Position.Plus(b.Velocity)

	b.Velocity = b.Velocity.Times(Deceleration)
	if math.Abs(b.Velocity.X) < StopThreshold {
		b.Velocity.X = 0
	}
	if math.Abs(b.Velocity.Y) < StopThreshold {
		b.Velocity.Y = 0
	}

	// Edge bounce negates the velocity component; the clamp below corrects
	// any penetration from a single frame of overshoot. Not exact
	// time-of-impact physics, but damping keeps the error invisible at this
	// frame rate.
	if b.Position.X-BallRadius < 0 || b.Position.X+BallRadius > TableWidth {
		b.Velocity.X = -b.Velocity.X
	}
	if b.Position.Y-BallRadius < 0 || b.Position.Y+BallRadius > TableHeight {
		b.Velocity.Y = -b.Velocity.Y
	}

	b.Position.X = clamp(b.Position.X, BallRadius, TableWidth-BallRadius)
	b.Position.Y = clamp(b.Position.Y, BallRadius, TableHeight-BallRadius)
}

// ApplyForce adds an impulse along the given angle. Additive: repeated calls
// while already moving compound velocity, so callers must gate on IsMoving.
func (b *Ball) ApplyForce(angle, power float64) {
	b.Velocity.X += power * math.Cos(angle)
	b.Velocity.Y += power * math.Sin(angle)
}

// Collides reports whether the two balls' centers are within one diameter.
func (b *Ball) Collides(other *Ball) bool {
	return b.Position.DistanceTo(other.Position) <= 2*BallRadius
}

// ResolveCollision performs the equal-mass frictionless elastic exchange
// along the line of centers, mutating both balls. Velocities only change when
// the balls are closing; separating or already-resolved pairs are untouched.
// Overlap is pushed apart so the post-resolution distance is exactly one
// diameter.
func (b *Ball) ResolveCollision(other *Ball) {
	delta := other.Position.Minus(b.Position)
	dist := delta.Magnitude()
	if dist < CoincidentEpsilon {
		return
	}

	n := delta.Times(1 / dist)
	relVel := b.Velocity.Minus(other.Velocity)
	d := relVel.Dot(n)
	if d <= 0 {
		return
	}

	b.Velocity = b.Velocity.Minus(n.Times(d))
	other.Velocity = other.Velocity.Plus(n.Times(d))

	overlap := (2*BallRadius - dist) / 2
	b.Position = b.Position.Minus(n.Times(overlap))
	other.Position = other.Position.Plus(n.Times(overlap))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
