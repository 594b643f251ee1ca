package system

import (
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
)

// AttachmentSystem keeps attached entities at their placement relative to
// the parent.
type AttachmentSystem struct{}

func NewAttachmentSystem() *AttachmentSystem { return &AttachmentSystem{} }

func (a *AttachmentSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	var orphans []ecs.Entity
	ecs.ForEach2(w, component.AttachmentComponent, component.TransformComponent, func(e ecs.Entity, att *component.Attachment, t *component.Transform) {
		parent, ok := ecs.Get(w, ecs.Entity(att.Parent), component.TransformComponent)
		if !ok {
			orphans = append(orphans, e)
			return
		}
		t.Transform = att.Relative.Compose(parent.Transform)
	})
	for _, e := range orphans {
		ecs.Remove(w, e, component.AttachmentComponent)
	}
}
