package component

import "github.com/milk9111/climbing/common"

type ClimbPhase int

const (
	ClimbDetached ClimbPhase = iota
	ClimbTransitioning
	ClimbAttached
	ClimbMantling
)

func (p ClimbPhase) String() string {
	switch p {
	case ClimbDetached:
		return "detached"
	case ClimbTransitioning:
		return "transitioning"
	case ClimbAttached:
		return "attached"
	case ClimbMantling:
		return "mantling"
	default:
		return "unknown"
	}
}

// ClimbState is the attachment lifecycle of a character. Only the fields of
// the current phase are meaningful; build values with the constructors below.
type ClimbState struct {
	Phase ClimbPhase

	// Transitioning
	Target  uint64
	Elapsed float64
	Start   common.Transform

	// Attached
	Hold uint64

	// Mantling
	Ledge uint64
}

func Detached() ClimbState {
	return ClimbState{Phase: ClimbDetached}
}

func TransitioningTo(target uint64, start common.Transform) ClimbState {
	return ClimbState{Phase: ClimbTransitioning, Target: target, Start: start}
}

func AttachedTo(hold uint64) ClimbState {
	return ClimbState{Phase: ClimbAttached, Hold: hold}
}

func MantlingOn(ledge uint64) ClimbState {
	return ClimbState{Phase: ClimbMantling, Ledge: ledge}
}

// CurrentHold is the hold the character hangs from, if attached.
func (s ClimbState) CurrentHold() (uint64, bool) {
	if s.Phase == ClimbAttached {
		return s.Hold, true
	}
	return 0, false
}

// NextHold is the hold the character is moving to, if transitioning.
func (s ClimbState) NextHold() (uint64, bool) {
	if s.Phase == ClimbTransitioning {
		return s.Target, true
	}
	return 0, false
}

var ClimbStateComponent = NewComponent[ClimbState]()
