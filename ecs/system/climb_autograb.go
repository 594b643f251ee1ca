package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
)

// autoGrab snaps a character flying forward through the air onto the most
// centred hold in front of it.
func (s *ClimbingSystem) autoGrab(c *climber) {
	if !c.scan.FlyingForward || !c.scan.HasTargets {
		return
	}
	if hold, ok := s.findBest(c, mgl64.Vec2{0, 1}, DetectForwardInAir); ok {
		s.attempt(c, hold)
	}
}

// runAgainstWall arms a one-shot timer while the character pushes forward
// without making progress. When it expires WallRun.Ready requests a
// forward-in-air grab on the next tick.
func (s *ClimbingSystem) runAgainstWall(c *climber, localVel mgl64.Vec3) {
	run := c.wallRun
	if c.climbing() {
		run.Holding = false
		run.Fired = false
		s.cancelWallRun(c)
		return
	}

	var forward float64
	if c.input != nil {
		forward = c.input.Forward
	}
	if forward < c.cfg.WallRunForwardInput {
		run.Holding = false
		run.Fired = false
		s.cancelWallRun(c)
		return
	}

	run.Holding = true
	if localVel.X() >= c.cfg.WallRunStallSpeed {
		run.Fired = false
		s.cancelWallRun(c)
		return
	}

	timers := c.w.Timers()
	if run.Fired || timers.Active(ecs.TimerHandle(run.Timer)) {
		return
	}
	w, e := c.w, c.e
	run.Timer = uint64(timers.Start(c.cfg.WallRunDuration, func() {
		r, ok := ecs.Get(w, e, component.WallRunComponent)
		if !ok {
			return
		}
		r.Timer = 0
		r.Ready = true
		r.Fired = true
	}))
}

// cancelWallRun stops a pending wall-run timer and clears its request.
func (s *ClimbingSystem) cancelWallRun(c *climber) {
	run := c.wallRun
	if run.Timer != 0 {
		c.w.Timers().Cancel(ecs.TimerHandle(run.Timer))
		run.Timer = 0
	}
	run.Ready = false
}
