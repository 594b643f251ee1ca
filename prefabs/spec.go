package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/climbing/ecs/component"
	"gopkg.in/yaml.v3"
)

// ClimbConfigFile is the default tuning file for climbing characters.
const ClimbConfigFile = "climbing.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadClimbConfig decodes a climbing tuning file over the defaults, so a
// file only needs the keys it changes.
func LoadClimbConfig(filename string) (*component.ClimbConfig, error) {
	if filename == "" {
		filename = ClimbConfigFile
	}
	data, err := Load(filename)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	return ParseClimbConfig(filename, data)
}

func ParseClimbConfig(filename string, data []byte) (*component.ClimbConfig, error) {
	cfg := component.DefaultClimbConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	if err := validateClimbConfig(&cfg); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &cfg, nil
}

func validateClimbConfig(cfg *component.ClimbConfig) error {
	var errs []error
	check := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %g", name, v))
		}
	}
	check("climbing_detection_radius", cfg.ClimbingDetectionRadius)
	check("ground_detection_radius", cfg.GroundDetectionRadius)
	check("in_air_detection_radius", cfg.InAirDetectionRadius)
	check("flying_capsule_radius", cfg.FlyingCapsuleRadius)
	check("flying_capsule_height", cfg.FlyingCapsuleHeight)
	check("max_ground_jump_distance", cfg.MaxGroundJumpDistance)
	check("max_thrown_distance", cfg.MaxThrownDistance)
	check("wall_run_duration", cfg.WallRunDuration)
	check("mantle_duration", cfg.MantleDuration)

	for i := 1; i < len(cfg.MovementCurve); i++ {
		if cfg.MovementCurve[i].Time < cfg.MovementCurve[i-1].Time {
			errs = append(errs, fmt.Errorf("movement_curve key %d is out of order", i))
			break
		}
	}
	return errors.Join(errs...)
}
