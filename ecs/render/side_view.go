package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
	"github.com/milk9111/climbing/ecs/system"
	"golang.org/x/image/colornames"
)

const circleSegments = 24

// Camera maps world X/Z onto the screen. X is the world position at the
// screen centre; Z grows upwards.
type Camera struct {
	X, Z float64
	Zoom float64
	W, H int
}

func (c Camera) project(v mgl64.Vec3) (float32, float32) {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	sx := (v.X()-c.X)*zoom + float64(c.W)/2
	sy := float64(c.H)/2 - (v.Z()-c.Z)*zoom
	return float32(sx), float32(sy)
}

// SideView draws the level from the side: colliders, holds, ledge lips,
// the climber's capsule and its current candidates.
type SideView struct {
	Floor float64
}

func NewSideView(floor float64) *SideView {
	return &SideView{Floor: floor}
}

func (s *SideView) Draw(w *ecs.World, screen *ebiten.Image, cam Camera) {
	if w == nil || screen == nil {
		return
	}
	screen.Fill(colornames.Midnightblue)

	x0, y := cam.project(mgl64.Vec3{cam.X - 1e5, 0, s.Floor})
	x1, _ := cam.project(mgl64.Vec3{cam.X + 1e5, 0, s.Floor})
	vector.StrokeLine(screen, x0, y, x1, y, 2, colornames.Lightgrey, false)

	ecs.ForEach2(w, component.ColliderComponent, component.TransformComponent, func(e ecs.Entity, col *component.Collider, t *component.Transform) {
		clr := color.Color(colornames.Dimgray)
		if col.BlocksCharacter {
			clr = colornames.Slategray
		}
		center := t.TransformLocation(col.Offset)
		switch col.Shape {
		case component.ColliderBox:
			ax, ay := cam.project(center.Add(mgl64.Vec3{-col.HalfExtents.X(), 0, col.HalfExtents.Z()}))
			bx, by := cam.project(center.Add(mgl64.Vec3{col.HalfExtents.X(), 0, -col.HalfExtents.Z()}))
			vector.StrokeRect(screen, ax, ay, bx-ax, by-ay, 1, clr, false)
		default:
			strokeCircle(screen, cam, center, col.Radius, clr)
		}
	})

	ecs.ForEach2(w, component.ClimbableComponent, component.TransformComponent, func(e ecs.Entity, c *component.Climbable, t *component.Transform) {
		clr := color.Color(colornames.Orange)
		if !c.Enabled {
			clr = colornames.Gray
		}
		strokeCircle(screen, cam, t.Location, 12, clr)
		fx, fy := cam.project(t.Location)
		tx, ty := cam.project(t.Location.Add(t.Forward().Mul(30)))
		vector.StrokeLine(screen, fx, fy, tx, ty, 1, clr, true)

		if l, ok := ecs.Get(w, e, component.LedgeComponent); ok {
			for i := 1; i < len(l.Points); i++ {
				ax, ay := cam.project(t.TransformLocation(l.Points[i-1]))
				bx, by := cam.project(t.TransformLocation(l.Points[i]))
				vector.StrokeLine(screen, ax, ay, bx, by, 3, colornames.Gold, true)
			}
		}
	})

	ecs.ForEach4(w, component.ClimberComponent, component.TransformComponent, component.CapsuleComponent, component.ClimbStateComponent,
		func(e ecs.Entity, cl *component.Climber, t *component.Transform, capsule *component.Capsule, st *component.ClimbState) {
			clr := phaseColor(st.Phase)
			seg := math.Max(capsule.HalfHeight-capsule.Radius, 0)
			top := t.Location.Add(t.Up().Mul(seg))
			bottom := t.Location.Sub(t.Up().Mul(seg))
			strokeCircle(screen, cam, top, capsule.Radius, clr)
			strokeCircle(screen, cam, bottom, capsule.Radius, clr)
			ax, ay := cam.project(top)
			bx, by := cam.project(bottom)
			vector.StrokeLine(screen, ax, ay, bx, by, 1, clr, true)

			cx, cy := cam.project(t.Location)
			for _, id := range cl.Candidates {
				if ct, ok := ecs.Get(w, ecs.Entity(id), component.TransformComponent); ok {
					hx, hy := cam.project(ct.Location)
					vector.StrokeLine(screen, cx, cy, hx, hy, 1, colornames.Lightgreen, false)
				}
			}
			if id, ok := st.NextHold(); ok {
				if hold, ok := system.ResolveClimbable(w, ecs.Entity(id), nil); ok {
					pose := system.HangPose(hold, t.Transform, *capsule, hangOffset(w, e))
					strokeCircle(screen, cam, pose.Location, 6, colornames.Crimson)
				}
			}
		})
}

// DrawHUD prints the climbing state of the first player.
func DrawHUD(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	st, _ := ecs.Get(w, player, component.ClimbStateComponent)
	mv, _ := ecs.Get(w, player, component.MovementComponent)
	cl, _ := ecs.Get(w, player, component.ClimberComponent)
	if st == nil || mv == nil || cl == nil {
		return
	}
	text := fmt.Sprintf("Phase: %s\nMode: %s\nGrounded: %v\nCandidates: %d\nFlyingForward: %v\nTick: %d",
		st.Phase, mv.Mode, mv.Grounded, len(cl.Candidates), cl.FlyingForward, w.Tick())
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

func hangOffset(w *ecs.World, e ecs.Entity) mgl64.Vec3 {
	if cfg, ok := ecs.Get(w, e, component.ClimbConfigComponent); ok {
		return cfg.HangOffset
	}
	return mgl64.Vec3{}
}

func phaseColor(p component.ClimbPhase) color.Color {
	switch p {
	case component.ClimbTransitioning:
		return colornames.Yellow
	case component.ClimbAttached:
		return colornames.Lime
	case component.ClimbMantling:
		return colornames.Magenta
	default:
		return colornames.White
	}
}

func strokeCircle(screen *ebiten.Image, cam Camera, center mgl64.Vec3, radius float64, clr color.Color) {
	if radius <= 0 {
		return
	}
	for i := 0; i < circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		b := 2 * math.Pi * float64(i+1) / circleSegments
		ax, ay := cam.project(center.Add(mgl64.Vec3{math.Cos(a) * radius, 0, math.Sin(a) * radius}))
		bx, by := cam.project(center.Add(mgl64.Vec3{math.Cos(b) * radius, 0, math.Sin(b) * radius}))
		vector.StrokeLine(screen, ax, ay, bx, by, 1, clr, true)
	}
}
