package component

import "github.com/go-gl/mathgl/mgl64"

// Mover oscillates an entity along Axis around Origin. Period is in seconds.
type Mover struct {
	Origin    mgl64.Vec3
	Axis      mgl64.Vec3
	Amplitude float64
	Period    float64
	Phase     float64
	Time      float64
}

var MoverComponent = NewComponent[Mover]()
