package system

import (
	"testing"

	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestScriptedInput(t *testing.T) {
	log, hook := test.NewNullLogger()
	w := ecs.NewWorld()
	w.AddSystem(NewScriptedInputSystem(log))

	e := ecs.CreateEntity(w)
	input := &component.Input{}
	if err := ecs.Add(w, e, component.InputComponent, input); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.MovementComponent, &component.Movement{Mode: component.MovementWalking, Grounded: true}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.ScriptComponent, &component.Script{
		Path: "inline",
		Source: []byte(`
forward = 1.0
right = -0.5
jump = tick >= 1 && tick <= 2
climb = mode == "walking" && grounded
release = phase == "attached"
`),
	}); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		tick        int
		jump        bool
		jumpPressed bool
	}{
		{tick: 0},
		{tick: 1, jump: true, jumpPressed: true},
		{tick: 2, jump: true},
		{tick: 3},
	}
	for _, tc := range cases {
		w.Update(step)
		if input.Forward != 1 || input.Right != -0.5 {
			t.Fatalf("tick %d: unexpected axes %+v", tc.tick, input)
		}
		if input.Jump != tc.jump || input.JumpPressed != tc.jumpPressed {
			t.Fatalf("tick %d: expected jump=%v pressed=%v, got %+v", tc.tick, tc.jump, tc.jumpPressed, input)
		}
		if !input.ClimbPressed || input.ReleaseClimb {
			t.Fatalf("tick %d: expected climb without release, got %+v", tc.tick, input)
		}
	}
	if len(hook.AllEntries()) != 0 {
		t.Fatalf("unexpected log output: %v", hook.AllEntries())
	}
}

func TestScriptedInputEmbeddedScript(t *testing.T) {
	log, hook := test.NewNullLogger()
	w := ecs.NewWorld()
	w.AddSystem(NewScriptedInputSystem(log))

	e := ecs.CreateEntity(w)
	input := &component.Input{}
	if err := ecs.Add(w, e, component.InputComponent, input); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.ScriptComponent, &component.Script{Path: "climb_wall.tengo"}); err != nil {
		t.Fatal(err)
	}

	w.Update(step)
	if input.Forward != 1 {
		t.Fatalf("expected the wall script to push forward, got %+v", input)
	}
	if len(hook.AllEntries()) != 0 {
		t.Fatalf("unexpected log output: %v", hook.AllEntries())
	}
}

func TestScriptedInputBrokenScriptLeavesInput(t *testing.T) {
	log, hook := test.NewNullLogger()
	w := ecs.NewWorld()
	w.AddSystem(NewScriptedInputSystem(log))

	e := ecs.CreateEntity(w)
	input := &component.Input{Forward: 0.25}
	if err := ecs.Add(w, e, component.InputComponent, input); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.ScriptComponent, &component.Script{Path: "broken", Source: []byte(`forward = `)}); err != nil {
		t.Fatal(err)
	}

	w.Update(step)
	if input.Forward != 0.25 {
		t.Fatalf("input changed after a compile error: %+v", input)
	}
	if len(hook.Entries) == 0 {
		t.Fatalf("expected the compile error to be logged")
	}
}
