package component

// Climbable marks an entity the player can hold on to.
type Climbable struct {
	Enabled bool
	// Moving holds are followed while attached.
	Moving bool
	// Script names a tengo script run every time the hold is grabbed.
	Script string
	Grabs  int
}

var ClimbableComponent = NewComponent[Climbable]()
