package game

import "fmt"

// Color is an RGBA draw color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

var (
	ColorWhite  = Color{255, 255, 255, 255}
	ColorBlack  = Color{0, 0, 0, 255}
	ColorYellow = Color{255, 255, 0, 255}
	ColorGreen  = Color{0, 255, 0, 255}
	ColorBlue   = Color{0, 0, 255, 255}
	ColorRed    = Color{255, 0, 0, 255}
)

// Circle is a filled circle draw call.
type Circle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Color  Color   `json:"color"`
}

// Segment is a colored line segment draw call.
type Segment struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Color Color   `json:"color"`
}

// Label is a text draw call at a fixed screen offset.
type Label struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Frame is the complete draw-call list for one tick. It is rebuilt from
// scratch every tick; nothing is diffed or retained between frames.
type Frame struct {
	Tick     uint64    `json:"tick"`
	Score    int       `json:"score"`
	Power    float64   `json:"power"`
	Moving   bool      `json:"moving"`
	Circles  []Circle  `json:"circles"`
	Segments []Segment `json:"segments"`
	Labels   []Label   `json:"labels"`
}

// buildFrame assembles the draw list from the current session state.
// Callers must hold the session lock.
func (s *Session) buildFrame() *Frame {
	f := &Frame{
		Tick:   s.tick,
		Score:  s.score,
		Power:  s.cue.Power,
		Moving: s.cueBall.IsMoving(),
	}

	for _, p := range s.pockets {
		f.Circles = append(f.Circles, Circle{X: p.Center.X, Y: p.Center.Y, Radius: p.Radius, Color: ColorBlack})
	}
	f.Circles = append(f.Circles, Circle{
		X: s.cueBall.Position.X, Y: s.cueBall.Position.Y, Radius: BallRadius, Color: s.cueBall.Color,
	})
	for _, b := range s.balls {
		f.Circles = append(f.Circles, Circle{X: b.Position.X, Y: b.Position.Y, Radius: BallRadius, Color: b.Color})
	}

	// Cue stick, ball to tip.
	f.Segments = append(f.Segments, Segment{
		X1: s.cueBall.Position.X, Y1: s.cueBall.Position.Y,
		X2: s.cue.Tip.X, Y2: s.cue.Tip.Y,
		Color: ColorYellow,
	})

	if s.cue.ShowGuideline {
		f.Segments = append(f.Segments, s.guidelineSegments()...)
	}

	f.Labels = append(f.Labels,
		Label{Text: fmt.Sprintf("Score: %d", s.score), X: 40, Y: 20},
		Label{Text: fmt.Sprintf("Power: %d", int(s.cue.Power)), X: TableWidth - 150, Y: 20},
		Label{Text: "[G] to toggle guideline", X: 100, Y: TableHeight - 35},
	)

	return f
}

// guidelineSegments renders the predictor's output: the main ray plus either
// the two post-impact previews or the wall bounce pair.
func (s *Session) guidelineSegments() []Segment {
	cuePos := s.cueBall.Position
	gl := PredictGuideline(cuePos, s.cue.Direction(), s.balls)

	if gl.HasTarget() {
		return []Segment{
			{X1: cuePos.X, Y1: cuePos.Y, X2: gl.CollisionPoint.X, Y2: gl.CollisionPoint.Y, Color: ColorYellow},
			{X1: gl.CollisionPoint.X, Y1: gl.CollisionPoint.Y, X2: gl.CueReboundEnd.X, Y2: gl.CueReboundEnd.Y, Color: ColorGreen},
			{X1: gl.Target.Position.X, Y1: gl.Target.Position.Y, X2: gl.TargetPathEnd.X, Y2: gl.TargetPathEnd.Y, Color: ColorBlue},
		}
	}
	if gl.WallHit {
		return []Segment{
			{X1: cuePos.X, Y1: cuePos.Y, X2: gl.BouncePoint.X, Y2: gl.BouncePoint.Y, Color: ColorGreen},
			{X1: gl.BouncePoint.X, Y1: gl.BouncePoint.Y, X2: gl.ReflectEnd.X, Y2: gl.ReflectEnd.Y, Color: ColorRed},
		}
	}
	return nil
}
