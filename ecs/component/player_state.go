package component

type PlayerMode int

const (
	PlayerNeutral PlayerMode = iota
	PlayerClimbing
	PlayerMantling
	PlayerCinematic
	PlayerBossThrown
)

func (m PlayerMode) String() string {
	switch m {
	case PlayerNeutral:
		return "neutral"
	case PlayerClimbing:
		return "climbing"
	case PlayerMantling:
		return "mantling"
	case PlayerCinematic:
		return "cinematic"
	case PlayerBossThrown:
		return "boss_thrown"
	default:
		return "unknown"
	}
}

type CameraMode int

const (
	CameraNormal CameraMode = iota
	CameraClimbing
)

type ClimbDirection int

const (
	ClimbUp ClimbDirection = iota
	ClimbLeft
	ClimbRight
)

func (d ClimbDirection) String() string {
	switch d {
	case ClimbLeft:
		return "left"
	case ClimbRight:
		return "right"
	default:
		return "up"
	}
}

// PlayerState is the coarse gameplay state shared with animation and camera.
type PlayerState struct {
	Mode      PlayerMode
	Camera    CameraMode
	Direction ClimbDirection
}

var PlayerStateComponent = NewComponent[PlayerState]()
