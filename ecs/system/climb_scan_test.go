package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/common"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
)

func (f *climbFixture) candidates() []uint64 {
	sc, _ := ecs.Get(f.w, f.player, component.ClimberComponent)
	return sc.Candidates
}

func hasCandidate(ids []uint64, e ecs.Entity) bool {
	for _, id := range ids {
		if id == uint64(e) {
			return true
		}
	}
	return false
}

func TestDetectionRadiusFollowsCharacterState(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(f *climbFixture)
		wantState component.CharacterState
		want      float64
	}{
		{
			name:      "grounded",
			wantState: component.CharacterOnGround,
			want:      800,
		},
		{
			name:      "falling",
			setup:     func(f *climbFixture) { f.airborne() },
			wantState: component.CharacterFalling,
			want:      50,
		},
		{
			name: "attached",
			setup: func(f *climbFixture) {
				h := f.hold(mgl64.Vec3{80, 0, 200}, 0)
				*f.state() = component.AttachedTo(uint64(h))
			},
			wantState: component.CharacterClimbing,
			want:      800,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newClimbFixture(t, nil)
			if tt.setup != nil {
				tt.setup(f)
			}
			f.scan()

			c, _ := f.sys.lookup(f.w, f.player)
			if c.scan.State != tt.wantState {
				t.Fatalf("expected state %d, got %d", tt.wantState, c.scan.State)
			}
			if got := f.sys.detectionRadius(c); got != tt.want {
				t.Fatalf("expected radius %g, got %g", tt.want, got)
			}
		})
	}
}

func TestScanRangeFollowsCharacterState(t *testing.T) {
	tests := []struct {
		name     string
		airborne bool
		found    bool
	}{
		{name: "grounded_reaches_far", found: true},
		{name: "airborne_reaches_near", airborne: true, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newClimbFixture(t, nil)
			h := f.hold(mgl64.Vec3{200, 0, 90}, 0)
			if tt.airborne {
				f.airborne()
			}
			f.scan()

			if got := hasCandidate(f.candidates(), h); got != tt.found {
				t.Fatalf("expected found=%v, got %v (%v)", tt.found, got, f.candidates())
			}
		})
	}
}

func TestScanWhileAttachedCentersOnHold(t *testing.T) {
	f := newClimbFixture(t, func(cfg *component.ClimbConfig) {
		cfg.ClimbingDetectionRadius = 100
	})
	current := f.hold(mgl64.Vec3{500, 0, 200}, 0)
	nearHold := f.hold(mgl64.Vec3{560, 0, 200}, 0)
	nearPlayer := f.hold(mgl64.Vec3{40, 0, 90}, 0)
	*f.state() = component.AttachedTo(uint64(current))
	f.scan()

	got := f.candidates()
	if !hasCandidate(got, nearHold) {
		t.Fatalf("expected the hold next to the current one, got %v", got)
	}
	if hasCandidate(got, nearPlayer) {
		t.Fatalf("expected the scan to ignore holds around the character, got %v", got)
	}
	if hasCandidate(got, current) {
		t.Fatalf("expected the current hold to be excluded, got %v", got)
	}
}

func TestScanExcludesOwnHolds(t *testing.T) {
	tests := []struct {
		name  string
		state func(h ecs.Entity) component.ClimbState
	}{
		{
			name:  "attached",
			state: func(h ecs.Entity) component.ClimbState { return component.AttachedTo(uint64(h)) },
		},
		{
			name: "transitioning",
			state: func(h ecs.Entity) component.ClimbState {
				return component.TransitioningTo(uint64(h), common.Transform{})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newClimbFixture(t, nil)
			own := f.hold(mgl64.Vec3{80, 0, 200}, 0)
			other := f.hold(mgl64.Vec3{80, 60, 200}, 0)
			*f.state() = tt.state(own)
			f.scan()

			got := f.candidates()
			if hasCandidate(got, own) {
				t.Fatalf("expected %s to be excluded, got %v", own, got)
			}
			if !hasCandidate(got, other) {
				t.Fatalf("expected %s to remain a candidate, got %v", other, got)
			}
		})
	}
}
