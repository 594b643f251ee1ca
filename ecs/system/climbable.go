package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/common"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
)

// Climbable is what the climbing system needs from a hold.
type Climbable interface {
	Entity() ecs.Entity
	Climbable() bool
	Moving() bool
	Pose() common.Transform
	// Grabbed is called once the character has arrived at the hold.
	Grabbed()
}

// Ledge is a climbable the character mantles instead of hanging from.
type Ledge interface {
	Climbable
	// ClimbUpTransform is the point on the lip closest to the character,
	// facing away from the wall.
	ClimbUpTransform(character common.Transform) common.Transform
}

// GrabHook observes grabs on climbable entities.
type GrabHook func(w *ecs.World, e ecs.Entity, c *component.Climbable)

type hold struct {
	w         *ecs.World
	e         ecs.Entity
	climbable *component.Climbable
	transform *component.Transform
	onGrab    GrabHook
}

func (h *hold) Entity() ecs.Entity { return h.e }

func (h *hold) Climbable() bool { return h.climbable.Enabled }

func (h *hold) Moving() bool { return h.climbable.Moving }

func (h *hold) Pose() common.Transform { return h.transform.Transform }

func (h *hold) Grabbed() {
	h.climbable.Grabs++
	if h.onGrab != nil {
		h.onGrab(h.w, h.e, h.climbable)
	}
}

type ledge struct {
	*hold
	points []mgl64.Vec3
}

func (l *ledge) ClimbUpTransform(character common.Transform) common.Transform {
	pose := l.Pose()
	outward := pose.Forward().Mul(-1)
	rot := common.DirectionRotator(outward).Leveled()
	if len(l.points) == 0 {
		return common.NewTransform(pose.Location, rot)
	}

	target := character.Location
	best := pose.TransformLocation(l.points[0])
	bestDist := best.Sub(target).Len()
	for i := 1; i < len(l.points); i++ {
		a := pose.TransformLocation(l.points[i-1])
		b := pose.TransformLocation(l.points[i])
		p := closestOnSegment(a, b, target)
		if d := p.Sub(target).Len(); d < bestDist {
			best, bestDist = p, d
		}
	}
	return common.NewTransform(best, rot)
}

func closestOnSegment(a, b, p mgl64.Vec3) mgl64.Vec3 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return a
	}
	t := math.Max(0, math.Min(1, p.Sub(a).Dot(ab)/lenSq))
	return a.Add(ab.Mul(t))
}

// ResolveClimbable adapts an entity into a Climbable. Entities carrying a
// Ledge component resolve to the Ledge variant.
func ResolveClimbable(w *ecs.World, e ecs.Entity, onGrab GrabHook) (Climbable, bool) {
	if !ecs.IsAlive(w, e) {
		return nil, false
	}
	c, ok := ecs.Get(w, e, component.ClimbableComponent)
	if !ok {
		return nil, false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return nil, false
	}
	h := &hold{w: w, e: e, climbable: c, transform: t, onGrab: onGrab}
	if l, ok := ecs.Get(w, e, component.LedgeComponent); ok {
		return &ledge{hold: h, points: l.Points}, true
	}
	return h, true
}
