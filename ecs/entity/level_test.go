package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
	"github.com/milk9111/climbing/levels"
)

func TestLoadLevelToWorld(t *testing.T) {
	lvl, err := levels.LoadLevel("ledge.json")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}
	w := ecs.NewWorld()
	created, err := LoadLevelToWorld(w, lvl)
	if err != nil {
		t.Fatalf("build level: %v", err)
	}
	if len(created) != len(lvl.Entities) {
		t.Fatalf("expected %d entities, got %d", len(lvl.Entities), len(created))
	}

	player, _, ok := ecs.First(w, component.PlayerTagComponent)
	if !ok || player != created[0] {
		t.Fatalf("expected the first entity to be the player")
	}
	sc, ok := ecs.Get(w, player, component.ScriptComponent)
	if !ok || sc.Path != "jump_to_ledge.tengo" {
		t.Fatalf("expected the level to give the player a script, got %+v", sc)
	}

	ledgeTransform, _ := ecs.Get(w, created[1], component.TransformComponent)
	if ledgeTransform.Location != (mgl64.Vec3{120, 0, 320}) {
		t.Fatalf("ledge placed at %v", ledgeTransform.Location)
	}
	if !ecs.Has(w, created[1], component.LedgeComponent) {
		t.Fatalf("expected a ledge component")
	}

	hold, _ := ecs.Get(w, created[2], component.ClimbableComponent)
	if hold == nil || hold.Enabled {
		t.Fatalf("expected the props to disable the hold, got %+v", hold)
	}
}

func TestLoadLevelToWorldRollsBack(t *testing.T) {
	lvl := &levels.Level{
		Name: "broken",
		Entities: []levels.Entity{
			{Prefab: "hold.yaml"},
			{Prefab: "hold.yaml", Props: map[string]map[string]any{"collider": {"shape": "cone"}}},
		},
	}
	w := ecs.NewWorld()
	if _, err := LoadLevelToWorld(w, lvl); err == nil {
		t.Fatalf("expected an error")
	}
	if n := len(ecs.Entities(w)); n != 0 {
		t.Fatalf("failed load left %d entities behind", n)
	}
}

func TestApplyPropsMergesFields(t *testing.T) {
	lvl := &levels.Level{
		Name: "props",
		Entities: []levels.Entity{{
			Prefab:   "moving_hold.yaml",
			Location: [3]float64{0, 0, 100},
			Props:    map[string]map[string]any{"mover": {"amplitude": 40.0}},
		}},
	}
	w := ecs.NewWorld()
	created, err := LoadLevelToWorld(w, lvl)
	if err != nil {
		t.Fatalf("build level: %v", err)
	}
	mv, _ := ecs.Get(w, created[0], component.MoverComponent)
	if mv.Amplitude != 40 || mv.Period != 4 || mv.Axis != (mgl64.Vec3{0, 1, 0}) {
		t.Fatalf("props should override only the named field, got %+v", mv)
	}
	if mv.Origin != (mgl64.Vec3{0, 0, 100}) {
		t.Fatalf("mover origin should follow placement, got %v", mv.Origin)
	}
}
