package game

// Physics and table constants. These are the contract of the simulation and
// are deliberately not configurable at runtime: every recorded session and
// every client-side interpolation assumes exactly these values.

const (
	TableWidth  = 800.0
	TableHeight = 400.0

	BallRadius   = 10.0
	Deceleration = 0.98
	// Velocity components below this magnitude are truncated to exactly zero,
	// so motion terminates in a bounded number of ticks.
	StopThreshold = 0.1

	PocketRadius = 15.0
	PocketInset  = 20.0 // pocket center distance from the table corner/edge

	CueLength    = 100.0
	MinPower     = 5.0
	MaxPower     = 20.0
	PowerStep    = 1.0
	DefaultPower = 15.0

	ScratchPenalty = 5
	NumObjectBalls = 9

	// Guideline preview segment lengths (visual only, never integrated).
	BallPreviewLength = 200.0
	WallPreviewLength = 100.0

	// Centers closer than this are treated as coincident and collision
	// resolution is skipped to avoid a zero-length normal.
	CoincidentEpsilon = 0.0001

	DefaultTickRate = 60
)
