package component

import "github.com/go-gl/mathgl/mgl64"

// Ledge is a climbable that can be mantled. Points is the lip polyline in
// the entity's local space; the entity faces into the wall.
type Ledge struct {
	Points []mgl64.Vec3
}

var LedgeComponent = NewComponent[Ledge]()
