package component

// Input stores per-tick input state for an entity. Axes are in [-1, 1];
// Forward doubles as "up" while climbing.
type Input struct {
	Forward      float64
	Right        float64
	Jump         bool
	JumpPressed  bool
	ClimbPressed bool
	ReleaseClimb bool
}

var InputComponent = NewComponent[Input]()
