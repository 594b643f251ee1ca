package component

// Climber holds the per-tick scan results of a climbing character.
type Climber struct {
	Candidates    []uint64
	HasTargets    bool
	FlyingForward bool
	Grounded      bool
	// State is the coarse locomotion state from the last scan.
	State CharacterState
}

type CharacterState int

const (
	CharacterOnGround CharacterState = iota
	CharacterFalling
	CharacterClimbing
)

var ClimberComponent = NewComponent[Climber]()

// WallRun tracks pressing forward into an obstacle. Fired latches once the
// stall timer expires and stays set until the stall ends; Ready is consumed
// by the next grab attempt.
type WallRun struct {
	Holding bool
	Ready   bool
	Fired   bool
	Timer   uint64
}

var WallRunComponent = NewComponent[WallRun]()
