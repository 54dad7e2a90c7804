package game

import "math"

// Guideline is the aim-assist prediction for one render: either the first
// object ball the cue ball would strike along the aim ray, or the wall the
// ray runs into when no ball is in the way. It is computed fresh from current
// positions every tick and never mutates game state.
type Guideline struct {
	// Ball-hit branch.
	Target         *Ball `json:"-"`
	CollisionPoint Vec2  `json:"collision_point"`
	CueReboundEnd  Vec2  `json:"cue_rebound_end"` // 200-unit preview from the collision point
	TargetPathEnd  Vec2  `json:"target_path_end"` // 200-unit preview from the target's center

	// Wall branch.
	WallHit      bool `json:"wall_hit"`
	BouncePoint  Vec2 `json:"bounce_point"`
	ReflectEnd   Vec2 `json:"reflect_end"` // 100-unit preview from the bounce point
}

// HasTarget reports whether the ray intersects an object ball.
func (g Guideline) HasTarget() bool {
	return g.Target != nil
}

// PredictGuideline ray-casts from the cue ball along the unit aim direction
// dir and finds the nearest intersected object ball, or failing that the
// nearest table boundary. Ties between coincident entry distances go to the
// first ball in iteration order.
func PredictGuideline(cuePos, dir Vec2, balls []*Ball) Guideline {
	var gl Guideline

	nearest := math.MaxFloat64
	for _, ball := range balls {
		rel := ball.Position.Minus(cuePos)
		proj := rel.Dot(dir)
		if proj <= 0 {
			continue // behind the cue ball
		}

		projected := cuePos.Plus(dir.Times(proj))
		perpDist := projected.DistanceTo(ball.Position)
		if perpDist > BallRadius {
			continue
		}

		// Entry distance: pull back from the projection foot to the near
		// intersection of the ray with the ball's circle.
		entry := proj - math.Sqrt(BallRadius*BallRadius-perpDist*perpDist)
		if entry >= nearest {
			continue
		}
		nearest = entry
		gl.Target = ball

		collision := cuePos.Plus(dir.Times(entry))

		// The entry point sits exactly one radius from the target center by
		// construction; pull back only when rounding puts it inside the
		// circle so the normal below keeps magnitude 1/2.
		if d := ball.Position.DistanceTo(collision); d < BallRadius {
			collision = collision.Minus(dir.Times(BallRadius - d))
		}
		gl.CollisionPoint = collision

		// The normal is scaled by 1/(2r) rather than normalized; the preview
		// directions inherit that scale, which is what gets drawn.
		n := ball.Position.Minus(collision).Times(1 / (2 * BallRadius))

		cueDir := dir.Reflect(n)
		gl.CueReboundEnd = collision.Plus(cueDir.Times(BallPreviewLength))

		hitDir := n.Times(dir.Dot(n))
		gl.TargetPathEnd = ball.Position.Plus(hitDir.Times(BallPreviewLength))
	}

	if gl.Target != nil {
		return gl
	}

	// No candidate ball: intersect the ray with the four boundaries,
	// restricted to positive distances, and take the nearest. Axes with a
	// zero direction component are skipped (the ray never reaches them).
	tMin := math.MaxFloat64
	var tTop, tBottom, tLeft, tRight = math.MaxFloat64, math.MaxFloat64, math.MaxFloat64, math.MaxFloat64

	if dir.Y != 0 {
		tTop = (BallRadius - cuePos.Y) / dir.Y
		tBottom = (TableHeight - BallRadius - cuePos.Y) / dir.Y
	}
	if dir.X != 0 {
		tLeft = (BallRadius - cuePos.X) / dir.X
		tRight = (TableWidth - BallRadius - cuePos.X) / dir.X
	}

	for _, t := range []float64{tTop, tBottom, tLeft, tRight} {
		if t > 0 && t < tMin {
			tMin = t
		}
	}
	if tMin == math.MaxFloat64 {
		return gl
	}

	gl.WallHit = true
	gl.BouncePoint = cuePos.Plus(dir.Times(tMin))

	// Exactly one axis flips, even on a corner hit.
	reflected := dir
	if tMin == tTop || tMin == tBottom {
		reflected.Y = -reflected.Y
	} else {
		reflected.X = -reflected.X
	}
	gl.ReflectEnd = gl.BouncePoint.Plus(reflected.Times(WallPreviewLength))

	return gl
}
