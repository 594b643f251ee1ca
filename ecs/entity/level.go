package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/common"
	"github.com/milk9111/climbing/ecs"
	"github.com/milk9111/climbing/levels"
	"github.com/milk9111/climbing/prefabs"
)

// LoadLevelToWorld builds every entity the level places. On error the
// entities created so far are destroyed.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level) ([]ecs.Entity, error) {
	if w == nil || lvl == nil {
		return nil, fmt.Errorf("load level: world and level are required")
	}

	created := make([]ecs.Entity, 0, len(lvl.Entities))
	fail := func(err error) ([]ecs.Entity, error) {
		for _, e := range created {
			ecs.DestroyEntity(w, e)
		}
		return nil, err
	}

	for i, placed := range lvl.Entities {
		spec, err := prefabs.LoadEntityBuildSpec(placed.Prefab)
		if err != nil {
			return fail(fmt.Errorf("load level %q: entity %d: %w", lvl.Name, i, err))
		}
		applyProps(&spec, placed.Props)

		e, err := BuildFromSpec(w, placed.Prefab, spec)
		if err != nil {
			return fail(fmt.Errorf("load level %q: entity %d: %w", lvl.Name, i, err))
		}
		created = append(created, e)

		rot := common.Rotator{Pitch: placed.Pitch, Yaw: placed.Yaw}
		if err := SetEntityTransform(w, e, mgl64.Vec3(placed.Location), rot); err != nil {
			return fail(fmt.Errorf("load level %q: entity %d: %w", lvl.Name, i, err))
		}
	}
	return created, nil
}

// applyProps merges per-placement overrides into the prefab, adding
// components the prefab lacks.
func applyProps(spec *prefabs.EntityBuildSpec, props map[string]map[string]any) {
	if len(props) == 0 {
		return
	}
	if spec.Components == nil {
		spec.Components = map[string]any{}
	}
	for name, fields := range props {
		merged := map[string]any{}
		if base, ok := spec.Components[name].(map[string]any); ok {
			for k, v := range base {
				merged[k] = v
			}
		}
		for k, v := range fields {
			merged[k] = v
		}
		spec.Components[name] = merged
	}
}
