package system

import (
	"github.com/milk9111/climbing/common"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
)

// RootMotionSystem plays one-shot animations that move their entity. The
// mantle carries the character from its hang pose up onto the ledge, then
// reports completion through MantleFinished.
type RootMotionSystem struct{}

func NewRootMotionSystem() *RootMotionSystem { return &RootMotionSystem{} }

func (r *RootMotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	var finished []ecs.Entity
	var interrupted []ecs.Entity
	ecs.ForEach2(w, component.AnimationRequestComponent, component.TransformComponent, func(e ecs.Entity, req *component.AnimationRequest, t *component.Transform) {
		if req.Name != component.AnimationMantle {
			return
		}
		if req.Interrupt {
			interrupted = append(interrupted, e)
			return
		}
		ledge, ok := ResolveClimbable(w, ecs.Entity(req.Target), nil)
		if !ok {
			interrupted = append(interrupted, e)
			return
		}
		parent := ledge.Pose()

		if !req.Started {
			req.Started = true
			req.From = t.Transform.Relative(parent)
			req.To = mantleTop(ledge, t.Transform, w, e).Relative(parent)
		}

		req.Elapsed += dt
		alpha := 1.0
		if req.Duration > 0 && req.Elapsed < req.Duration {
			alpha = req.Elapsed / req.Duration
		}
		rel := common.Transform{
			Location: common.LerpVec3(req.From.Location, req.To.Location, alpha),
			Rotation: common.SlerpShortest(req.From.Rotation, req.To.Rotation, alpha),
		}
		if att, ok := ecs.Get(w, e, component.AttachmentComponent); ok {
			att.Relative = rel
		}
		t.Transform = rel.Compose(parent)

		if alpha >= 1 {
			finished = append(finished, e)
		}
	})

	for _, e := range finished {
		ecs.Remove(w, e, component.AnimationRequestComponent)
		_ = ecs.Add(w, e, component.MantleFinishedComponent, &component.MantleFinished{})
	}
	for _, e := range interrupted {
		ecs.Remove(w, e, component.AnimationRequestComponent)
		_ = ecs.Add(w, e, component.MantleFinishedComponent, &component.MantleFinished{Interrupted: true})
	}
}

// mantleTop is where the character stands after climbing over the lip.
func mantleTop(hold Climbable, character common.Transform, w *ecs.World, e ecs.Entity) common.Transform {
	top := hold.Pose()
	if l, ok := hold.(Ledge); ok {
		top = l.ClimbUpTransform(character)
	}
	var halfHeight, radius float64
	if capsule, ok := ecs.Get(w, e, component.CapsuleComponent); ok {
		halfHeight, radius = capsule.HalfHeight, capsule.Radius
	}
	into := top.Forward().Mul(-1)
	loc := top.Location.Add(common.AxisUp.Mul(halfHeight)).Add(into.Mul(radius))
	return common.NewTransform(loc, common.DirectionRotator(into).Leveled())
}
