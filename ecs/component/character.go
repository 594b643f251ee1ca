package component

import "github.com/go-gl/mathgl/mgl64"

type MovementMode int

const (
	MovementWalking MovementMode = iota
	MovementFalling
	MovementFlying
	MovementClimbing
)

func (m MovementMode) String() string {
	switch m {
	case MovementWalking:
		return "walking"
	case MovementFalling:
		return "falling"
	case MovementFlying:
		return "flying"
	case MovementClimbing:
		return "climbing"
	default:
		return "unknown"
	}
}

// Movement is the generic movement controller state of a character.
type Movement struct {
	Mode     MovementMode
	Velocity mgl64.Vec3
	Grounded bool
	// CollisionEnabled is cleared while mantling.
	CollisionEnabled bool

	WalkSpeed float64
	JumpSpeed float64
	Gravity   float64
}

var MovementComponent = NewComponent[Movement]()

// Capsule is the character's collision capsule. HalfHeight includes the
// hemispheres.
type Capsule struct {
	Radius     float64
	HalfHeight float64
}

var CapsuleComponent = NewComponent[Capsule]()
