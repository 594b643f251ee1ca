package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/common"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
)

func TestAttachmentFollowsParent(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewMoverSystem())
	w.AddSystem(NewAttachmentSystem())

	parent := ecs.CreateEntity(w)
	child := ecs.CreateEntity(w)
	if err := ecs.Add(w, parent, component.TransformComponent, &component.Transform{
		Transform: common.NewTransform(mgl64.Vec3{100, 0, 0}, common.Rotator{Yaw: 90}),
	}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, parent, component.MoverComponent, &component.Mover{
		Origin:    mgl64.Vec3{100, 0, 0},
		Axis:      mgl64.Vec3{0, 0, 1},
		Amplitude: 50,
		Period:    4,
	}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, child, component.TransformComponent, &component.Transform{}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, child, component.AttachmentComponent, &component.Attachment{
		Parent:   uint64(parent),
		Relative: common.NewTransform(mgl64.Vec3{10, 0, 0}, common.Rotator{}),
	}); err != nil {
		t.Fatal(err)
	}

	// A quarter period puts the parent at the top of its swing.
	w.Update(1)

	tr, _ := ecs.Get(w, child, component.TransformComponent)
	want := mgl64.Vec3{100, 10, 50}
	if !vecNear(tr.Location, want) {
		t.Fatalf("expected child at %v, got %v", want, tr.Location)
	}

	ecs.DestroyEntity(w, parent)
	w.Update(1)
	if ecs.Has(w, child, component.AttachmentComponent) {
		t.Fatalf("attachment to a dead parent should be dropped")
	}
	if !vecNear(tr.Location, want) {
		t.Fatalf("orphaned child should stay put, got %v", tr.Location)
	}
}
