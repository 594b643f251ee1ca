package component

import "github.com/go-gl/mathgl/mgl64"

const (
	ColliderSphere = "sphere"
	ColliderBox    = "box"
)

// Collider registers an entity with the physics world for overlap queries.
type Collider struct {
	Shape       string
	Radius      float64
	HalfExtents mgl64.Vec3
	Offset      mgl64.Vec3
	// Dynamic colliders use the world-dynamic object type and are
	// re-synced every tick.
	Dynamic         bool
	BlocksCharacter bool
}

var ColliderComponent = NewComponent[Collider]()
