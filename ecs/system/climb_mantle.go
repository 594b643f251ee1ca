package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
)

func (s *ClimbingSystem) beginMantle(c *climber, l Ledge) {
	from := c.state.Phase
	id := uint64(l.Entity())
	*c.state = component.MantlingOn(id)

	if err := ecs.Add(c.w, c.e, component.AttachmentComponent, &component.Attachment{
		Parent:   id,
		Relative: c.transform.Transform.Relative(l.Pose()),
	}); err != nil {
		c.logger(s).WithError(err).Error("climbing: attach to ledge")
	}

	c.movement.CollisionEnabled = false
	c.movement.Mode = component.MovementFlying
	c.movement.Velocity = mgl64.Vec3{}

	if err := ecs.Add(c.w, c.e, component.AnimationRequestComponent, &component.AnimationRequest{
		Name:     component.AnimationMantle,
		Target:   id,
		Duration: c.cfg.MantleDuration,
	}); err != nil {
		c.logger(s).WithError(err).Error("climbing: start mantle animation")
	}

	if c.player != nil {
		c.player.Mode = component.PlayerMantling
		c.player.Camera = component.CameraNormal
	}
	s.phaseChanged(c, from)
}

// OnMantleFinished ends a mantle whether or not the animation was
// interrupted. It is ignored unless the character is mantling.
func (s *ClimbingSystem) OnMantleFinished(w *ecs.World, e ecs.Entity, interrupted bool) {
	c, ok := s.lookup(w, e)
	if !ok {
		return
	}
	s.finishMantle(c, interrupted)
}

func (s *ClimbingSystem) finishMantle(c *climber, interrupted bool) {
	if c.state.Phase != component.ClimbMantling {
		return
	}
	if interrupted {
		c.logger(s).WithField("ledge", c.state.Ledge).Info("climbing: mantle interrupted")
	}

	ecs.Remove(c.w, c.e, component.AttachmentComponent)
	ecs.Remove(c.w, c.e, component.AnimationRequestComponent)
	c.movement.CollisionEnabled = true
	if c.player != nil {
		c.player.Mode = component.PlayerNeutral
	}
	s.detach(c)
}
