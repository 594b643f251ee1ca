package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
)

const (
	defaultWalkSpeed = 400.0
	defaultJumpSpeed = 600.0
	defaultGravity   = 1960.0
)

// MovementSystem is a minimal character controller: walking on a flat floor,
// jumping, falling and stopping against blocking colliders. Climbing and
// flying characters are placed by other systems.
type MovementSystem struct {
	Floor float64
}

func NewMovementSystem(floor float64) *MovementSystem {
	return &MovementSystem{Floor: floor}
}

func (m *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach3(w, component.MovementComponent, component.TransformComponent, component.CapsuleComponent,
		func(e ecs.Entity, mv *component.Movement, t *component.Transform, capsule *component.Capsule) {
			if mv.Mode == component.MovementClimbing || mv.Mode == component.MovementFlying {
				return
			}

			input, _ := ecs.Get(w, e, component.InputComponent)
			walkSpeed := orDefault(mv.WalkSpeed, defaultWalkSpeed)

			if mv.Mode == component.MovementWalking {
				var local mgl64.Vec3
				if input != nil {
					local = mgl64.Vec3{input.Forward * walkSpeed, -input.Right * walkSpeed, 0}
				}
				horizontal := t.TransformDirection(local)
				mv.Velocity = mgl64.Vec3{horizontal.X(), horizontal.Y(), 0}
				if input != nil && input.JumpPressed && mv.Grounded {
					mv.Velocity[2] = orDefault(mv.JumpSpeed, defaultJumpSpeed)
					mv.Mode = component.MovementFalling
					mv.Grounded = false
				}
			} else {
				mv.Velocity[2] -= orDefault(mv.Gravity, defaultGravity) * dt
			}

			step := mv.Velocity.Mul(dt)
			horizontalStep := mgl64.Vec3{step.X(), step.Y(), 0}
			if mv.CollisionEnabled && horizontalStep.Len() > 0 && blocked(w, e, t.Location.Add(horizontalStep), capsule) {
				mv.Velocity[0], mv.Velocity[1] = 0, 0
				step = mgl64.Vec3{0, 0, step.Z()}
			}
			t.Location = t.Location.Add(step)

			rest := m.Floor + capsule.HalfHeight
			if t.Location.Z() <= rest {
				t.Location[2] = rest
				if mv.Mode == component.MovementFalling {
					mv.Mode = component.MovementWalking
				}
				mv.Velocity[2] = 0
				mv.Grounded = true
			} else if mv.Mode == component.MovementWalking {
				mv.Mode = component.MovementFalling
				mv.Grounded = false
			}
		})
}

func blocked(w *ecs.World, self ecs.Entity, at mgl64.Vec3, capsule *component.Capsule) bool {
	pw := w.PhysicsWorld()
	if pw == nil {
		return false
	}
	for _, hit := range pw.CapsuleOverlap(at, capsule.Radius, capsule.HalfHeight, ecs.ObjectWorldStatic|ecs.ObjectWorldDynamic) {
		if hit.Entity != self && hit.BlocksCharacter {
			return true
		}
	}
	return false
}

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
