package system

import (
	"math"

	"github.com/milk9111/climbing/common"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
)

// MoverSystem animates moving holds and platforms.
type MoverSystem struct{}

func NewMoverSystem() *MoverSystem { return &MoverSystem{} }

func (m *MoverSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	ecs.ForEach2(w, component.MoverComponent, component.TransformComponent, func(e ecs.Entity, mv *component.Mover, t *component.Transform) {
		if mv.Period <= 0 {
			return
		}
		mv.Time += dt
		s := math.Sin(2*math.Pi*mv.Time/mv.Period + mv.Phase)
		t.Location = mv.Origin.Add(common.SafeNormal(mv.Axis).Mul(mv.Amplitude * s))
	})
}
