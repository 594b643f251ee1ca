package entity

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/common"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/ecs/component"
	"github.com/milk9111/climbing/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag": addPlayerTag,
	"camera_tag": addCameraTag,
	"transform":  addTransform,
	"collider":   addCollider,
	"climbable":  addClimbable,
	"ledge":      addLedge,
	"character":  addCharacter,
	"input":      addInput,
	"climber":    addClimber,
	"script":     addScript,
	"mover":      addMover,
}

// Components that read others must come after them.
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"transform",
	"collider",
	"climbable",
	"ledge",
	"character",
	"input",
	"climber",
	"script",
	"mover",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildFromSpec(w, prefabPath, spec)
}

// BuildFromSpec creates an entity from an already decoded prefab.
func BuildFromSpec(w *ecs.World, prefabPath string, spec prefabs.EntityBuildSpec) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	build := func(name string) error {
		builder, ok := componentRegistry[name]
		if !ok {
			return fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, remaining[name], ctx); err != nil {
			return fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
		return nil
	}

	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; !ok {
			continue
		}
		if err := build(name); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	names := make([]string, 0, len(remaining))
	for name := range remaining {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := build(name); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	return e, nil
}

// SetEntityTransform places e, keeping mover origins in step.
func SetEntityTransform(w *ecs.World, e ecs.Entity, loc mgl64.Vec3, rot common.Rotator) error {
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		t = &component.Transform{}
	}
	t.Transform = common.NewTransform(loc, rot)
	if mv, ok := ecs.Get(w, e, component.MoverComponent); ok {
		mv.Origin = loc
	}
	return ecs.Add(w, e, component.TransformComponent, t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	if err := ecs.Add(w, e, component.PlayerTagComponent, &component.PlayerTag{}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.PlayerStateComponent, &component.PlayerState{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent, &component.CameraTag{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	rot := common.Rotator{Pitch: spec.Pitch, Yaw: spec.Yaw, Roll: spec.Roll}
	return ecs.Add(w, e, component.TransformComponent, &component.Transform{
		Transform: common.NewTransform(mgl64.Vec3(spec.Location), rot),
	})
}

type colliderSpec = prefabs.ColliderComponentSpec

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[colliderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider spec: %w", err)
	}
	switch spec.Shape {
	case "", component.ColliderSphere:
		if spec.Radius <= 0 {
			return fmt.Errorf("sphere collider needs a positive radius")
		}
		spec.Shape = component.ColliderSphere
	case component.ColliderBox:
	default:
		return fmt.Errorf("unknown collider shape %q", spec.Shape)
	}
	return ecs.Add(w, e, component.ColliderComponent, &component.Collider{
		Shape:           spec.Shape,
		Radius:          spec.Radius,
		HalfExtents:     mgl64.Vec3(spec.HalfExtents),
		Offset:          mgl64.Vec3(spec.Offset),
		Dynamic:         spec.Dynamic,
		BlocksCharacter: spec.BlocksCharacter,
	})
}

type climbableSpec = prefabs.ClimbableComponentSpec

func addClimbable(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[climbableSpec](raw)
	if err != nil {
		return fmt.Errorf("decode climbable spec: %w", err)
	}
	enabled := true
	if spec.Enabled != nil {
		enabled = *spec.Enabled
	}
	return ecs.Add(w, e, component.ClimbableComponent, &component.Climbable{
		Enabled: enabled,
		Moving:  spec.Moving,
		Script:  spec.Script,
	})
}

type ledgeSpec = prefabs.LedgeComponentSpec

func addLedge(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[ledgeSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ledge spec: %w", err)
	}
	points := make([]mgl64.Vec3, 0, len(spec.Points))
	for _, p := range spec.Points {
		points = append(points, mgl64.Vec3(p))
	}
	return ecs.Add(w, e, component.LedgeComponent, &component.Ledge{Points: points})
}

type characterSpec = prefabs.CharacterComponentSpec

func addCharacter(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[characterSpec](raw)
	if err != nil {
		return fmt.Errorf("decode character spec: %w", err)
	}
	if spec.Radius <= 0 || spec.HalfHeight < spec.Radius {
		return fmt.Errorf("character capsule needs 0 < radius <= half_height, got %g/%g", spec.Radius, spec.HalfHeight)
	}
	if err := ecs.Add(w, e, component.CapsuleComponent, &component.Capsule{
		Radius:     spec.Radius,
		HalfHeight: spec.HalfHeight,
	}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.MovementComponent, &component.Movement{
		Mode:             component.MovementFalling,
		CollisionEnabled: true,
		WalkSpeed:        spec.WalkSpeed,
		JumpSpeed:        spec.JumpSpeed,
		Gravity:          spec.Gravity,
	})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent, &component.Input{})
}

type climberSpec = prefabs.ClimberComponentSpec

func addClimber(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[climberSpec](raw)
	if err != nil {
		return fmt.Errorf("decode climber spec: %w", err)
	}
	cfg, err := prefabs.LoadClimbConfig(spec.Config)
	if err != nil {
		return err
	}
	cfg.Debug = cfg.Debug || spec.Debug

	state := component.Detached()
	if err := ecs.Add(w, e, component.ClimbStateComponent, &state); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.ClimberComponent, &component.Climber{}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.WallRunComponent, &component.WallRun{}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.ClimbConfigComponent, cfg)
}

type scriptSpec = prefabs.ScriptComponentSpec

func addScript(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[scriptSpec](raw)
	if err != nil {
		return fmt.Errorf("decode script spec: %w", err)
	}
	if spec.Path == "" {
		return fmt.Errorf("script needs a path")
	}
	return ecs.Add(w, e, component.ScriptComponent, &component.Script{Path: spec.Path})
}

type moverSpec = prefabs.MoverComponentSpec

func addMover(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[moverSpec](raw)
	if err != nil {
		return fmt.Errorf("decode mover spec: %w", err)
	}
	var origin mgl64.Vec3
	if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
		origin = t.Location
	}
	return ecs.Add(w, e, component.MoverComponent, &component.Mover{
		Origin:    origin,
		Axis:      mgl64.Vec3(spec.Axis),
		Amplitude: spec.Amplitude,
		Period:    spec.Period,
		Phase:     spec.Phase,
	})
}
