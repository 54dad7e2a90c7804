package game

// Pocket is a fixed circular capture zone. A ball whose center is within
// Radius of Center (inclusive) is captured.
type Pocket struct {
	Center Vec2    `json:"center"`
	Radius float64 `json:"radius"`
}

// Contains reports whether a ball centered at pos is captured by this pocket.
func (p Pocket) Contains(pos Vec2) bool {
	return pos.DistanceTo(p.Center) <= p.Radius
}

// TablePockets returns the six pockets: four corners and the two
// mid-long-edge pockets, inset from the rails.
func TablePockets() []Pocket {
	return []Pocket{
		{Center: NewVec2(PocketInset, PocketInset), Radius: PocketRadius},
		{Center: NewVec2(TableWidth-PocketInset, PocketInset), Radius: PocketRadius},
		{Center: NewVec2(PocketInset, TableHeight-PocketInset), Radius: PocketRadius},
		{Center: NewVec2(TableWidth-PocketInset, TableHeight-PocketInset), Radius: PocketRadius},
		{Center: NewVec2(TableWidth/2, PocketInset), Radius: PocketRadius},
		{Center: NewVec2(TableWidth/2, TableHeight-PocketInset), Radius: PocketRadius},
	}
}

// NewCueBall returns a fresh cue ball at the head spot.
func NewCueBall() *Ball {
	return NewBall(NewVec2(100, 200), ColorWhite)
}

// NewRack returns the nine object balls in their diamond starting layout.
// Slice order is the deterministic iteration order for collision checks, so
// the layout must not be shuffled.
func NewRack() []*Ball {
	return []*Ball{
		NewBall(NewVec2(400, 200), Color{255, 255, 0, 255}),
		NewBall(NewVec2(420, 190), Color{0, 0, 255, 255}),
		NewBall(NewVec2(420, 210), Color{255, 0, 0, 255}),
		NewBall(NewVec2(440, 180), Color{255, 165, 0, 255}),
		NewBall(NewVec2(440, 200), Color{0, 128, 0, 255}),
		NewBall(NewVec2(440, 220), Color{128, 0, 128, 255}),
		NewBall(NewVec2(460, 210), Color{255, 20, 147, 255}),
		NewBall(NewVec2(460, 190), Color{0, 128, 128, 255}),
		NewBall(NewVec2(480, 200), Color{128, 0, 0, 255}),
	}
}
