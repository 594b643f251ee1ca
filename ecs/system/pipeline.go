package system

import (
	"github.com/milk9111/climbing/ecs"
	"github.com/sirupsen/logrus"
)

// Pipeline holds the systems a climbing level needs that callers talk to
// directly.
type Pipeline struct {
	Climbing *ClimbingSystem
	Scripts  *ClimbableScripts
}

// Install registers the standard update order on w. input, if non-nil,
// runs first and feeds Input components for unscripted entities.
func Install(w *ecs.World, log *logrus.Logger, floor float64, input ecs.System) *Pipeline {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if w.PhysicsWorld() == nil {
		w.SetPhysicsWorld(ecs.NewPhysicsWorld())
	}

	scripts := NewClimbableScripts(log)
	climbing := NewClimbingSystem(log, scripts.OnGrabbed)

	if input != nil {
		w.AddSystem(input)
	}
	w.AddSystem(NewScriptedInputSystem(log))
	w.AddSystem(NewMoverSystem())
	w.AddSystem(NewMovementSystem(floor))
	w.AddSystem(NewPhysicsSystem(log))
	w.AddSystem(climbing)
	w.AddSystem(NewAttachmentSystem())
	w.AddSystem(NewRootMotionSystem())

	return &Pipeline{Climbing: climbing, Scripts: scripts}
}
