package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	Location [3]float64 `yaml:"location"`
	Pitch    float64    `yaml:"pitch"`
	Yaw      float64    `yaml:"yaw"`
	Roll     float64    `yaml:"roll"`
}

type ColliderComponentSpec struct {
	Shape           string     `yaml:"shape"`
	Radius          float64    `yaml:"radius"`
	HalfExtents     [3]float64 `yaml:"half_extents"`
	Offset          [3]float64 `yaml:"offset"`
	Dynamic         bool       `yaml:"dynamic"`
	BlocksCharacter bool       `yaml:"blocks_character"`
}

type ClimbableComponentSpec struct {
	Enabled *bool  `yaml:"enabled"`
	Moving  bool   `yaml:"moving"`
	Script  string `yaml:"script"`
}

type LedgeComponentSpec struct {
	Points [][3]float64 `yaml:"points"`
}

type CharacterComponentSpec struct {
	Radius     float64 `yaml:"radius"`
	HalfHeight float64 `yaml:"half_height"`
	WalkSpeed  float64 `yaml:"walk_speed"`
	JumpSpeed  float64 `yaml:"jump_speed"`
	Gravity    float64 `yaml:"gravity"`
}

type ClimberComponentSpec struct {
	Config string `yaml:"config"`
	Debug  bool   `yaml:"debug"`
}

type ScriptComponentSpec struct {
	Path string `yaml:"path"`
}

type MoverComponentSpec struct {
	Axis      [3]float64 `yaml:"axis"`
	Amplitude float64    `yaml:"amplitude"`
	Period    float64    `yaml:"period"`
	Phase     float64    `yaml:"phase"`
}
