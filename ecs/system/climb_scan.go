package system

import (
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
	"github.com/sirupsen/logrus"
)

const climbQueryTypes = ecs.ObjectWorldStatic | ecs.ObjectWorldDynamic

// detect refreshes the candidate holds around the character.
func (s *ClimbingSystem) detect(c *climber) {
	s.updateCharacterState(c)

	c.scan.Candidates = c.scan.Candidates[:0]
	c.scan.HasTargets = false

	pw := c.w.PhysicsWorld()
	if pw == nil {
		return
	}

	exclude := map[uint64]bool{uint64(c.e): true}
	if id, ok := c.state.CurrentHold(); ok {
		exclude[id] = true
	}
	if id, ok := c.state.NextHold(); ok {
		exclude[id] = true
	}

	var hits []ecs.OverlapHit
	if c.scan.FlyingForward {
		center := c.transform.Location.Add(c.transform.TransformDirection(c.cfg.FlyingCapsuleOffset))
		hits = pw.CapsuleOverlap(center, c.cfg.FlyingCapsuleRadius, c.cfg.FlyingCapsuleHeight*0.5, climbQueryTypes)
	} else {
		origin := c.transform.Location
		if id, ok := c.state.CurrentHold(); ok {
			if cur, ok := s.resolve(c.w, id); ok {
				origin = cur.Pose().Location
			}
		}
		hits = pw.SphereOverlap(origin, s.detectionRadius(c), climbQueryTypes)
	}

	for _, hit := range hits {
		id := uint64(hit.Entity)
		if exclude[id] {
			continue
		}
		if !ecs.IsAlive(c.w, hit.Entity) ||
			!ecs.Has(c.w, hit.Entity, component.ClimbableComponent) ||
			!ecs.Has(c.w, hit.Entity, component.TransformComponent) {
			continue
		}
		c.scan.Candidates = append(c.scan.Candidates, id)
	}
	c.scan.HasTargets = len(c.scan.Candidates) > 0

	if c.cfg.Debug {
		c.logger(s).WithFields(logrus.Fields{
			"candidates": len(c.scan.Candidates),
			"flying":     c.scan.FlyingForward,
			"state":      c.scan.State,
		}).Debug("climbing: scan")
	}
}

func (s *ClimbingSystem) detectionRadius(c *climber) float64 {
	switch c.scan.State {
	case component.CharacterOnGround:
		return c.cfg.GroundDetectionRadius
	case component.CharacterFalling:
		return c.cfg.InAirDetectionRadius
	default:
		return c.cfg.ClimbingDetectionRadius
	}
}

// updateCharacterState classifies the character and keeps the player state
// in step when it starts or stops climbing.
func (s *ClimbingSystem) updateCharacterState(c *climber) {
	prev := c.scan.State
	switch {
	case c.grounded() && !c.climbing():
		if prev != component.CharacterOnGround && c.player != nil && c.player.Mode == component.PlayerClimbing {
			c.player.Mode = component.PlayerNeutral
			c.player.Camera = component.CameraNormal
		}
		c.scan.State = component.CharacterOnGround
	case c.climbing():
		if prev != component.CharacterClimbing && c.player != nil {
			c.player.Mode = component.PlayerClimbing
		}
		c.scan.State = component.CharacterClimbing
	default:
		c.scan.State = component.CharacterFalling
	}
	c.scan.Grounded = c.grounded()
}
