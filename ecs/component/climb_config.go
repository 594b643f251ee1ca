package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/climbing/common"
)

// ClimbConfig is the tuning for a climbing character. Distances are in
// world units, angles in degrees, times in seconds.
type ClimbConfig struct {
	ClimbingDetectionRadius float64 `yaml:"climbing_detection_radius"`
	GroundDetectionRadius   float64 `yaml:"ground_detection_radius"`
	InAirDetectionRadius    float64 `yaml:"in_air_detection_radius"`

	FlyingCapsuleRadius float64    `yaml:"flying_capsule_radius"`
	FlyingCapsuleHeight float64    `yaml:"flying_capsule_height"`
	FlyingCapsuleOffset mgl64.Vec3 `yaml:"flying_capsule_offset"`

	MaxGroundJumpDistance float64 `yaml:"max_ground_jump_distance"`
	MaxThrownDistance     float64 `yaml:"max_thrown_distance"`
	MaxYawDelta           float64 `yaml:"max_yaw_delta"`
	MaxPitchDelta         float64 `yaml:"max_pitch_delta"`

	MinAutoGrabForwardVelocity float64 `yaml:"min_auto_grab_forward_velocity"`
	WallRunForwardInput        float64 `yaml:"wall_run_forward_input"`
	WallRunStallSpeed          float64 `yaml:"wall_run_stall_speed"`
	WallRunDuration            float64 `yaml:"wall_run_duration"`

	HangOffset            mgl64.Vec3 `yaml:"hang_offset"`
	DirectionDotThreshold float64    `yaml:"direction_dot_threshold"`

	MovementCurve  []common.CurveKey `yaml:"movement_curve"`
	MantleDuration float64           `yaml:"mantle_duration"`

	Debug bool `yaml:"debug"`

	curve *common.Curve
}

// DefaultClimbConfig mirrors prefabs/climbing.yaml.
func DefaultClimbConfig() ClimbConfig {
	return ClimbConfig{
		ClimbingDetectionRadius:    800,
		GroundDetectionRadius:      800,
		InAirDetectionRadius:       50,
		FlyingCapsuleRadius:        45,
		FlyingCapsuleHeight:        45,
		FlyingCapsuleOffset:        mgl64.Vec3{50, 0, 0},
		MaxGroundJumpDistance:      100,
		MaxThrownDistance:          20,
		MaxYawDelta:                45,
		MaxPitchDelta:              45,
		MinAutoGrabForwardVelocity: 45,
		WallRunForwardInput:        0.7,
		WallRunStallSpeed:          100,
		WallRunDuration:            0.1,
		HangOffset:                 mgl64.Vec3{-150, 0, -200},
		DirectionDotThreshold:      0.5,
		MovementCurve: []common.CurveKey{
			{Time: 0, Value: 0},
			{Time: 0.15, Value: 0.6},
			{Time: 0.3, Value: 1},
		},
		MantleDuration: 0.8,
	}
}

// Curve returns the transition curve, or nil when none is configured.
func (c *ClimbConfig) Curve() *common.Curve {
	if c == nil {
		return nil
	}
	if c.curve == nil && len(c.MovementCurve) > 0 {
		c.curve = common.NewCurve(c.MovementCurve)
	}
	return c.curve
}

var ClimbConfigComponent = NewComponent[ClimbConfig]()
