package system

import (
	"fmt"
	"math"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/common"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
	"github.com/sirupsen/logrus"
)

type DetectionMode int

const (
	DetectWalking DetectionMode = iota
	DetectInAir
	DetectForwardInAir
	DetectWhileClimbing
)

func (m DetectionMode) String() string {
	switch m {
	case DetectWalking:
		return "walking"
	case DetectInAir:
		return "in_air"
	case DetectForwardInAir:
		return "forward_in_air"
	case DetectWhileClimbing:
		return "while_climbing"
	default:
		return "unknown"
	}
}

const (
	rejectedRating      = -9999.0
	minIntentMagnitude  = 0.5
	forwardInAirRating  = 60.0
	forwardWeight       = 0.5
	lateralWeight       = 0.1
	forwardInAirFalloff = 0.1
)

// FindBestClimbable rates the candidates of the last scan for the given
// intent and returns the winner. intent.X is toward the character's right
// and intent.Y toward its up axis.
func (s *ClimbingSystem) FindBestClimbable(w *ecs.World, e ecs.Entity, intent mgl64.Vec2, mode DetectionMode) (ecs.Entity, bool) {
	c, ok := s.lookup(w, e)
	if !ok {
		return 0, false
	}
	hold, ok := s.findBest(c, intent, mode)
	if !ok {
		return 0, false
	}
	return hold.Entity(), true
}

func (s *ClimbingSystem) findBest(c *climber, intent mgl64.Vec2, mode DetectionMode) (Climbable, bool) {
	if !c.scan.HasTargets || len(c.scan.Candidates) == 0 {
		return nil, false
	}
	if intent.Len() < minIntentMagnitude {
		intent = mgl64.Vec2{0, 1}
	}
	dir := intent.Normalize()

	character := c.transform.Transform
	charRot := character.Rotator()
	grounded := c.grounded()
	attached := c.state.Phase == component.ClimbAttached

	ratings := orderedmap.NewOrderedMap[ecs.Entity, candidateRating]()
	for _, id := range c.scan.Candidates {
		e := ecs.Entity(id)
		if _, seen := ratings.Get(e); seen {
			continue
		}
		ratings.Set(e, candidateRating{value: rejectedRating})

		hold, ok := s.resolve(c.w, id)
		if !ok || !hold.Climbable() {
			continue
		}

		l, isLedge := hold.(Ledge)
		if !isLedge && s.obstructed(c, hold) {
			continue
		}
		if mode == DetectForwardInAir && isLedge {
			continue
		}
		if isLedge && (attached || grounded) {
			climbUp := l.ClimbUpTransform(character)
			if climbUp.Location.Z() < character.Location.Z() {
				continue
			}
			if c.cfg.Debug {
				c.logger(s).WithField("hold", hold.Entity()).Debug("climbing: ledge takes priority")
			}
			return hold, true
		}

		pose := hold.Pose()
		if mode != DetectWhileClimbing && pose.Location.Z() < character.Location.Z()-c.capsule.HalfHeight {
			continue
		}

		local := character.InverseTransformLocation(pose.Location)
		if mode != DetectForwardInAir && !attached && local.X() < 0 {
			continue
		}
		if mode == DetectForwardInAir {
			if local.X() > c.cfg.MaxThrownDistance {
				continue
			}
		} else if grounded && local.X() > c.cfg.MaxGroundJumpDistance {
			continue
		}

		forward, lateral := directionalOffsets(local, dir)
		if mode != DetectForwardInAir && forward <= 0 {
			continue
		}

		rot := pose.Rotator()
		if math.Abs(common.DeltaAngleDegrees(charRot.Yaw, rot.Yaw)) > c.cfg.MaxYawDelta {
			continue
		}
		if math.Abs(common.DeltaAngleDegrees(charRot.Pitch, rot.Pitch)) > c.cfg.MaxPitchDelta {
			continue
		}

		ratings.Set(e, candidateRating{hold: hold, value: rating(forward, lateral, mode)})
	}

	best, ok := bestRated(ratings)

	if c.cfg.Debug {
		c.logger(s).WithFields(logrus.Fields{
			"mode":    mode,
			"ratings": formatRatings(ratings),
			"found":   ok,
		}).Debug("climbing: select")
	}

	if !ok {
		return nil, false
	}
	return best, true
}

type candidateRating struct {
	hold  Climbable
	value float64
}

// bestRated walks the ratings in candidate order. The first positive rating
// wins ties.
func bestRated(ratings *orderedmap.OrderedMap[ecs.Entity, candidateRating]) (Climbable, bool) {
	var best *candidateRating
	for el := ratings.Front(); el != nil; el = el.Next() {
		r := el.Value
		if r.hold == nil || r.value <= 0 {
			continue
		}
		if best == nil || r.value > best.value {
			best = &r
		}
	}
	if best == nil {
		return nil, false
	}
	return best.hold, true
}

// formatRatings lists ratings in candidate order, e.g. "3.1=1.42 4.1=rejected".
func formatRatings(ratings *orderedmap.OrderedMap[ecs.Entity, candidateRating]) string {
	var b strings.Builder
	for el := ratings.Front(); el != nil; el = el.Next() {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		if el.Value.value == rejectedRating {
			fmt.Fprintf(&b, "%s=rejected", el.Key)
		} else {
			fmt.Fprintf(&b, "%s=%.2f", el.Key, el.Value.value)
		}
	}
	return b.String()
}

// directionalOffsets projects a character-local position onto the intent
// direction, which lies in the character's right/up plane. lateral is the
// perpendicular offset within that same plane, so depth along the character's
// forward axis never counts against a hold.
func directionalOffsets(local mgl64.Vec3, dir mgl64.Vec2) (forward, lateral float64) {
	right := -local.Y()
	up := local.Z()
	forward = right*dir.X() + up*dir.Y()
	lateral = right*dir.Y() - up*dir.X()
	return forward, lateral
}

func rating(forward, lateral float64, mode DetectionMode) float64 {
	if mode == DetectForwardInAir {
		return forwardInAirRating - forwardInAirFalloff*math.Abs(forward) - forwardInAirFalloff*math.Abs(lateral)
	}
	return 1 + forwardWeight*forward - lateralWeight*math.Abs(lateral)
}

// obstructed reports blocking geometry overlapping the character's capsule
// at the hang pose for hold.
func (s *ClimbingSystem) obstructed(c *climber, hold Climbable) bool {
	pw := c.w.PhysicsWorld()
	if pw == nil {
		return false
	}
	pose := HangPose(hold, c.transform.Transform, *c.capsule, c.cfg.HangOffset)
	for _, hit := range pw.CapsuleOverlap(pose.Location, c.capsule.Radius, c.capsule.HalfHeight, climbQueryTypes) {
		if hit.Entity == c.e || hit.Entity == hold.Entity() {
			continue
		}
		if hit.BlocksCharacter {
			if c.cfg.Debug {
				c.logger(s).WithFields(logrus.Fields{"hold": hold.Entity(), "blocker": hit.Entity}).Debug("climbing: hold is obstructed")
			}
			return true
		}
	}
	return false
}
