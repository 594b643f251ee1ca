package system

import (
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
	"github.com/sirupsen/logrus"
)

// PhysicsSystem mirrors Collider components into the world's PhysicsWorld
// so overlap queries see the current placement of every collider.
type PhysicsSystem struct {
	log   *logrus.Logger
	known map[ecs.Entity]struct{}
}

func NewPhysicsSystem(log *logrus.Logger) *PhysicsSystem {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PhysicsSystem{log: log, known: make(map[ecs.Entity]struct{})}
}

func (p *PhysicsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		pw = ecs.NewPhysicsWorld()
		w.SetPhysicsWorld(pw)
	}

	seen := make(map[ecs.Entity]struct{}, len(p.known))
	ecs.ForEach2(w, component.ColliderComponent, component.TransformComponent, func(e ecs.Entity, col *component.Collider, t *component.Transform) {
		seen[e] = struct{}{}
		center := t.TransformLocation(col.Offset)

		if _, ok := p.known[e]; ok && pw.Has(e) {
			if col.Dynamic {
				pw.Move(e, center)
			}
			return
		}

		typ := ecs.ObjectWorldStatic
		if col.Dynamic {
			typ = ecs.ObjectWorldDynamic
		}
		switch col.Shape {
		case component.ColliderBox:
			pw.SetBox(e, center, col.HalfExtents, typ, col.BlocksCharacter)
		case component.ColliderSphere, "":
			pw.SetSphere(e, center, col.Radius, typ, col.BlocksCharacter)
		default:
			p.log.WithFields(logrus.Fields{"entity": e, "shape": col.Shape}).Warn("physics: unknown collider shape")
			return
		}
		p.known[e] = struct{}{}
	})

	for e := range p.known {
		if _, ok := seen[e]; !ok {
			pw.Remove(e)
			delete(p.known, e)
		}
	}
}
