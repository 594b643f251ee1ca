package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/common"
	"github.com/milk9111/climbing/ecs/component"
)

func TestHangPose(t *testing.T) {
	capsule := component.Capsule{Radius: 34, HalfHeight: 90}
	offset := mgl64.Vec3{-150, 0, -200}
	character := common.NewTransform(mgl64.Vec3{0, 0, 90}, common.Rotator{})

	cases := []struct {
		name    string
		loc     mgl64.Vec3
		yaw     float64
		ledge   bool
		want    mgl64.Vec3
		forward mgl64.Vec3
	}{
		{"hold_facing_x", mgl64.Vec3{100, 0, 200}, 0, false, mgl64.Vec3{-50, 0, 310}, mgl64.Vec3{1, 0, 0}},
		{"hold_facing_y", mgl64.Vec3{0, 100, 200}, 90, false, mgl64.Vec3{0, -50, 310}, mgl64.Vec3{0, 1, 0}},
		{"ledge_uses_climb_up_point", mgl64.Vec3{150, 0, 300}, 0, true, mgl64.Vec3{0, 0, 410}, mgl64.Vec3{1, 0, 0}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newClimbFixture(t, nil)
			var hold Climbable
			if c.ledge {
				hold = f.resolve(f.ledge(c.loc))
			} else {
				hold = f.resolve(f.hold(c.loc, c.yaw))
			}

			got := HangPose(hold, character, capsule, offset)
			if !vecNear(got.Location, c.want) {
				t.Fatalf("expected location %v, got %v", c.want, got.Location)
			}
			if !vecNear(got.Forward(), c.forward) {
				t.Fatalf("expected forward %v, got %v", c.forward, got.Forward())
			}

			again := HangPose(hold, character, capsule, offset)
			if again != got {
				t.Fatalf("hang pose is not deterministic: %v vs %v", got, again)
			}
		})
	}
}

func TestClimbUpTransformFollowsCharacter(t *testing.T) {
	f := newClimbFixture(t, nil)
	l, ok := f.resolve(f.ledge(mgl64.Vec3{150, 0, 300})).(Ledge)
	if !ok {
		t.Fatalf("ledge entity did not resolve to a Ledge")
	}

	cases := []struct {
		name string
		at   mgl64.Vec3
		want mgl64.Vec3
	}{
		{"centred", mgl64.Vec3{0, 0, 90}, mgl64.Vec3{150, 0, 300}},
		{"to_the_left", mgl64.Vec3{0, 60, 90}, mgl64.Vec3{150, 60, 300}},
		{"past_the_end", mgl64.Vec3{0, -400, 90}, mgl64.Vec3{150, -100, 300}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := l.ClimbUpTransform(common.NewTransform(c.at, common.Rotator{}))
			if !vecNear(got.Location, c.want) {
				t.Fatalf("expected %v, got %v", c.want, got.Location)
			}
			if !vecNear(got.Forward(), mgl64.Vec3{-1, 0, 0}) {
				t.Fatalf("climb-up should face out of the wall, got %v", got.Forward())
			}
		})
	}
}
