package component

import "github.com/milk9111/climbing/common"

const AnimationMantle = "mantle"

// AnimationRequest asks the root motion system to play a one-shot
// animation. Target is the entity the motion is relative to.
type AnimationRequest struct {
	Name     string
	Target   uint64
	Duration float64
	Elapsed  float64
	// Interrupt stops the animation on the next tick.
	Interrupt bool

	// Root motion endpoints relative to Target, filled in on the first tick.
	Started bool
	From    common.Transform
	To      common.Transform
}

var AnimationRequestComponent = NewComponent[AnimationRequest]()

// MantleFinished reports that the mantle animation ended.
type MantleFinished struct {
	Interrupted bool
}

var MantleFinishedComponent = NewComponent[MantleFinished]()
