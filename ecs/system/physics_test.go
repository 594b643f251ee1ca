package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/common"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
)

func TestPhysicsSystemSync(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewPhysicsSystem(nil)

	add := func(loc mgl64.Vec3, col component.Collider) ecs.Entity {
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{
			Transform: common.NewTransform(loc, common.Rotator{}),
		}); err != nil {
			t.Fatal(err)
		}
		if err := ecs.Add(w, e, component.ColliderComponent, &col); err != nil {
			t.Fatal(err)
		}
		return e
	}
	static := add(mgl64.Vec3{0, 0, 0}, component.Collider{Shape: component.ColliderSphere, Radius: 10})
	moving := add(mgl64.Vec3{500, 0, 0}, component.Collider{Shape: component.ColliderSphere, Radius: 10, Dynamic: true})

	sys.Update(w)
	pw := w.PhysicsWorld()
	if pw == nil || pw.Len() != 2 {
		t.Fatalf("expected two registered colliders")
	}

	hits := pw.SphereOverlap(mgl64.Vec3{}, 50, ecs.ObjectWorldStatic)
	if len(hits) != 1 || hits[0].Entity != static {
		t.Fatalf("expected the static collider, got %+v", hits)
	}

	tr, _ := ecs.Get(w, moving, component.TransformComponent)
	tr.Location = mgl64.Vec3{30, 0, 0}
	sys.Update(w)
	hits = pw.SphereOverlap(mgl64.Vec3{}, 50, ecs.ObjectWorldDynamic)
	if len(hits) != 1 || hits[0].Entity != moving {
		t.Fatalf("expected the dynamic collider to follow its transform, got %+v", hits)
	}

	ecs.DestroyEntity(w, static)
	sys.Update(w)
	if pw.Has(static) || pw.Len() != 1 {
		t.Fatalf("destroyed collider should be removed")
	}
}
