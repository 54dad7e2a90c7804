package game

import "math"

// Cue is the player's aiming implement. Angle and tip position are derived
// from the cue ball and pointer each tick; only power and the guideline flag
// persist as player-adjustable state.
type Cue struct {
	Tip           Vec2    `json:"tip"`
	Angle         float64 `json:"angle"`
	Power         float64 `json:"power"`
	ShowGuideline bool    `json:"show_guideline"`
}

func NewCue() *Cue {
	return &Cue{Power: DefaultPower}
}

// Aim recomputes the cue angle from the cue ball toward the pointer and
// positions the tip one cue-length out along that direction.
func (c *Cue) Aim(ballPos, pointer Vec2) {
	c.Angle = math.Atan2(pointer.Y-ballPos.Y, pointer.X-ballPos.X)
	c.Tip = Vec2{
		X: ballPos.X + math.Cos(c.Angle)*CueLength,
		Y: ballPos.Y + math.Sin(c.Angle)*CueLength,
	}
}

// Direction returns the unit aim direction.
func (c *Cue) Direction() Vec2 {
	return Vec2{X: math.Cos(c.Angle), Y: math.Sin(c.Angle)}
}

func (c *Cue) PowerUp() {
	c.Power = math.Min(c.Power+PowerStep, MaxPower)
}

func (c *Cue) PowerDown() {
	c.Power = math.Max(c.Power-PowerStep, MinPower)
}

func (c *Cue) ToggleGuideline() {
	c.ShowGuideline = !c.ShowGuideline
}
