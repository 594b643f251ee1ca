package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/common"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
	"github.com/sirupsen/logrus"
)

// ClimbingSystem drives the climbing lifecycle of every character that
// carries a ClimbState.
type ClimbingSystem struct {
	log    *logrus.Logger
	onGrab GrabHook
}

func NewClimbingSystem(log *logrus.Logger, onGrab GrabHook) *ClimbingSystem {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ClimbingSystem{log: log, onGrab: onGrab}
}

// climber bundles the components of one climbing character for a tick.
type climber struct {
	w *ecs.World
	e ecs.Entity

	transform *component.Transform
	movement  *component.Movement
	capsule   *component.Capsule
	state     *component.ClimbState
	scan      *component.Climber
	wallRun   *component.WallRun
	cfg       *component.ClimbConfig

	// optional
	input  *component.Input
	player *component.PlayerState
}

func (s *ClimbingSystem) lookup(w *ecs.World, e ecs.Entity) (*climber, bool) {
	c := &climber{w: w, e: e}
	var ok bool
	if c.transform, ok = ecs.Get(w, e, component.TransformComponent); !ok {
		return nil, false
	}
	if c.movement, ok = ecs.Get(w, e, component.MovementComponent); !ok {
		return nil, false
	}
	if c.capsule, ok = ecs.Get(w, e, component.CapsuleComponent); !ok {
		return nil, false
	}
	if c.state, ok = ecs.Get(w, e, component.ClimbStateComponent); !ok {
		return nil, false
	}
	if c.scan, ok = ecs.Get(w, e, component.ClimberComponent); !ok {
		return nil, false
	}
	if c.wallRun, ok = ecs.Get(w, e, component.WallRunComponent); !ok {
		return nil, false
	}
	if c.cfg, ok = ecs.Get(w, e, component.ClimbConfigComponent); !ok {
		return nil, false
	}
	c.input, _ = ecs.Get(w, e, component.InputComponent)
	c.player, _ = ecs.Get(w, e, component.PlayerStateComponent)
	return c, true
}

func (c *climber) grounded() bool {
	return c.movement.Mode == component.MovementWalking && c.movement.Grounded
}

func (c *climber) climbing() bool {
	return c.state.Phase != component.ClimbDetached
}

func (c *climber) logger(s *ClimbingSystem) *logrus.Entry {
	return s.log.WithField("entity", c.e)
}

func (s *ClimbingSystem) resolve(w *ecs.World, id uint64) (Climbable, bool) {
	return ResolveClimbable(w, ecs.Entity(id), s.onGrab)
}

func (s *ClimbingSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	for _, e := range w.Query(
		component.ClimbStateComponent.Kind(),
		component.ClimberComponent.Kind(),
		component.TransformComponent.Kind(),
	) {
		c, ok := s.lookup(w, e)
		if !ok {
			continue
		}
		s.tick(c, dt)
	}
}

func (s *ClimbingSystem) tick(c *climber, dt float64) {
	if done, ok := ecs.Get(c.w, c.e, component.MantleFinishedComponent); ok {
		interrupted := done.Interrupted
		ecs.Remove(c.w, c.e, component.MantleFinishedComponent)
		s.finishMantle(c, interrupted)
	}

	if c.state.Phase == component.ClimbMantling {
		return
	}
	if c.player != nil && (c.player.Mode == component.PlayerCinematic || c.player.Mode == component.PlayerBossThrown) {
		return
	}

	localVel := c.transform.InverseTransformDirection(c.movement.Velocity)
	c.scan.FlyingForward = localVel.X() > c.cfg.MinAutoGrabForwardVelocity && !c.grounded() && !c.climbing()

	s.runAgainstWall(c, localVel)
	s.detect(c)

	if c.wallRun.Ready {
		c.wallRun.Ready = false
		if hold, ok := s.findBest(c, mgl64.Vec2{0, 1}, DetectForwardInAir); ok {
			s.attempt(c, hold)
		}
	}

	s.autoGrab(c)

	if c.input != nil {
		if c.input.ReleaseClimb && c.state.Phase == component.ClimbAttached {
			s.detach(c)
		} else if c.input.ClimbPressed {
			s.forceInitClimb(c)
		}
	}

	s.updateMovement(c, dt)
}

// ForceInitClimb tries to grab the best hold for the character's current
// input. It does nothing while mantling or already moving to a hold.
func (s *ClimbingSystem) ForceInitClimb(w *ecs.World, e ecs.Entity) bool {
	c, ok := s.lookup(w, e)
	if !ok {
		return false
	}
	return s.forceInitClimb(c)
}

func (s *ClimbingSystem) forceInitClimb(c *climber) bool {
	switch c.state.Phase {
	case component.ClimbMantling, component.ClimbTransitioning:
		return false
	}
	if !c.scan.HasTargets {
		return false
	}

	var intent mgl64.Vec2
	if c.input != nil {
		intent = mgl64.Vec2{c.input.Right, c.input.Forward}
	}

	mode := DetectInAir
	if c.grounded() {
		mode = DetectWalking
	} else if c.climbing() {
		mode = DetectWhileClimbing
	}

	hold, ok := s.findBest(c, intent, mode)
	if !ok {
		return false
	}
	return s.attempt(c, hold)
}

// AttemptClimb starts moving the character to hold. A nil hold is a no-op.
func (s *ClimbingSystem) AttemptClimb(w *ecs.World, e ecs.Entity, hold Climbable) bool {
	c, ok := s.lookup(w, e)
	if !ok {
		return false
	}
	return s.attempt(c, hold)
}

func (s *ClimbingSystem) attempt(c *climber, hold Climbable) bool {
	if hold == nil || c.state.Phase == component.ClimbMantling {
		return false
	}

	origin := c.transform.Transform
	if id, ok := c.state.CurrentHold(); ok {
		if cur, ok := s.resolve(c.w, id); ok {
			origin = cur.Pose()
		}
	}
	dir := climbDirection(origin, hold.Pose().Location, c.cfg.DirectionDotThreshold)
	if c.player != nil {
		c.player.Direction = dir
	}

	from := c.state.Phase
	*c.state = component.TransitioningTo(uint64(hold.Entity()), c.transform.Transform)
	c.movement.Mode = component.MovementClimbing
	s.cancelWallRun(c)

	_, isLedge := hold.(Ledge)
	c.w.Events().Push(ecs.Event{Type: ecs.EventGrabbedNewHold, Data: ecs.GrabEvent{
		Character: c.e,
		Hold:      hold.Entity(),
		Direction: dir.String(),
		Ledge:     isLedge,
	}})
	if c.cfg.Debug {
		c.logger(s).WithFields(logrus.Fields{"hold": hold.Entity(), "direction": dir}).Debug("climbing: grabbed new hold")
	}
	s.phaseChanged(c, from)
	return true
}

// climbDirection classifies the move from origin to target against the
// origin's left axis.
func climbDirection(origin common.Transform, target mgl64.Vec3, threshold float64) component.ClimbDirection {
	dot := common.SafeNormal(target.Sub(origin.Location)).Dot(origin.Right().Mul(-1))
	switch {
	case dot > threshold:
		return component.ClimbLeft
	case dot < -threshold:
		return component.ClimbRight
	default:
		return component.ClimbUp
	}
}

// DetachFromClimbing drops the character from whatever it holds.
func (s *ClimbingSystem) DetachFromClimbing(w *ecs.World, e ecs.Entity) {
	c, ok := s.lookup(w, e)
	if !ok {
		return
	}
	s.detach(c)
}

func (s *ClimbingSystem) detach(c *climber) {
	from := c.state.Phase
	c.movement.Mode = component.MovementFalling
	c.movement.Velocity = mgl64.Vec3{}
	*c.state = component.Detached()

	rot := c.transform.Rotator()
	c.transform.Rotation = common.Rotator{Yaw: rot.Yaw}.Quat()

	c.w.Events().Push(ecs.Event{Type: ecs.EventDetached, Data: c.e})
	s.phaseChanged(c, from)
}

func (s *ClimbingSystem) updateMovement(c *climber, dt float64) {
	switch c.state.Phase {
	case component.ClimbTransitioning:
		target, ok := s.resolve(c.w, c.state.Target)
		if !ok {
			c.logger(s).WithField("hold", c.state.Target).Warn("climbing: hold disappeared during transition")
			s.detach(c)
			return
		}

		curve := c.cfg.Curve()
		if curve == nil {
			c.logger(s).WithField("hold", target.Entity()).Warn("climbing: no movement curve configured, teleporting to hold")
			s.reachedHold(c, target)
			return
		}

		c.state.Elapsed += dt
		_, end := curve.TimeRange()
		if c.state.Elapsed >= end {
			s.reachedHold(c, target)
			return
		}

		alpha := curve.Value(c.state.Elapsed)
		pose := HangPose(target, c.transform.Transform, *c.capsule, c.cfg.HangOffset)
		start := c.state.Start
		c.transform.Location = common.LerpVec3(start.Location, pose.Location, alpha)
		c.transform.Rotation = common.SlerpShortest(start.Rotation, pose.Rotation, alpha)

	case component.ClimbAttached:
		current, ok := s.resolve(c.w, c.state.Hold)
		if !ok {
			s.detach(c)
			return
		}
		if current.Moving() {
			c.transform.Transform = HangPose(current, c.transform.Transform, *c.capsule, c.cfg.HangOffset)
		}
	}
}

func (s *ClimbingSystem) reachedHold(c *climber, target Climbable) {
	target.Grabbed()
	c.transform.Transform = HangPose(target, c.transform.Transform, *c.capsule, c.cfg.HangOffset)

	if l, ok := target.(Ledge); ok {
		s.beginMantle(c, l)
		return
	}

	from := c.state.Phase
	*c.state = component.AttachedTo(uint64(target.Entity()))
	s.phaseChanged(c, from)
}

func (s *ClimbingSystem) phaseChanged(c *climber, from component.ClimbPhase) {
	to := c.state.Phase
	if from == to {
		return
	}
	c.w.Events().Push(ecs.Event{Type: ecs.EventClimbPhaseChanged, Data: ecs.PhaseEvent{
		Character: c.e,
		From:      from.String(),
		To:        to.String(),
	}})
	if c.cfg.Debug {
		c.logger(s).WithFields(logrus.Fields{"from": from, "to": to}).Debug("climbing: phase changed")
	}
}

func (s *ClimbingSystem) state(w *ecs.World, e ecs.Entity) component.ClimbState {
	if st, ok := ecs.Get(w, e, component.ClimbStateComponent); ok {
		return *st
	}
	return component.Detached()
}

func (s *ClimbingSystem) IsAttached(w *ecs.World, e ecs.Entity) bool {
	return s.state(w, e).Phase == component.ClimbAttached
}

// IsClimbing reports any phase other than detached.
func (s *ClimbingSystem) IsClimbing(w *ecs.World, e ecs.Entity) bool {
	return s.state(w, e).Phase != component.ClimbDetached
}

func (s *ClimbingSystem) IsMovingToNewClimbable(w *ecs.World, e ecs.Entity) bool {
	return s.state(w, e).Phase == component.ClimbTransitioning
}

func (s *ClimbingSystem) IsMantling(w *ecs.World, e ecs.Entity) bool {
	return s.state(w, e).Phase == component.ClimbMantling
}

func (s *ClimbingSystem) IsOnMovingClimbable(w *ecs.World, e ecs.Entity) bool {
	id, ok := s.state(w, e).CurrentHold()
	if !ok {
		return false
	}
	hold, ok := s.resolve(w, id)
	return ok && hold.Moving()
}
