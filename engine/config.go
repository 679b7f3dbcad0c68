package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/tzdial/dialtime"
	"github.com/lixenwraith/tzdial/parameter"
	"github.com/lixenwraith/tzdial/physics"
	"github.com/lixenwraith/tzdial/vmath"
)

// ErrInvalidConfig is returned by Config.Validate
var ErrInvalidConfig = errors.New("engine: invalid config")

// DetentConfig is one magnet granularity in human units
type DetentConfig struct {
	ThresholdDeg float64 `yaml:"threshold_deg"`
	HardSnapDeg  float64 `yaml:"hard_snap_deg"`
	Base         float64 `yaml:"base"`
	Exponent     float64 `yaml:"exponent"`
}

func (d DetentConfig) detent() physics.Detent {
	return physics.Detent{
		Threshold: vmath.Radians(d.ThresholdDeg),
		HardSnap:  vmath.Radians(d.HardSnapDeg),
		Base:      d.Base,
		Exponent:  d.Exponent,
	}
}

// Config holds every tunable of the rotation engine
type Config struct {
	MagnetHour       DetentConfig `yaml:"magnet_hour"`
	MagnetHalf       DetentConfig `yaml:"magnet_half"`
	MagnetQuarter    DetentConfig `yaml:"magnet_quarter"`
	CoastMagnetScale float64      `yaml:"coast_magnet_scale"`

	DampingPerFrame    float64       `yaml:"damping_per_frame"`
	DampingHz          float64       `yaml:"damping_hz"`
	CoastStartVelocity float64       `yaml:"coast_start_velocity"`
	CoastStopVelocity  float64       `yaml:"coast_stop_velocity"`
	MaxVelocity        float64       `yaml:"max_velocity"`
	ReleaseWindow      time.Duration `yaml:"release_window"`
	MaxStep            time.Duration `yaml:"max_step"`

	SnapDuration  time.Duration `yaml:"snap_duration"`
	SettleEpsilon float64       `yaml:"settle_epsilon"`

	ResetNearDeg         float64       `yaml:"reset_near_deg"`
	ResetShortDuration   time.Duration `yaml:"reset_short_duration"`
	ResetDurationPerTurn time.Duration `yaml:"reset_duration_per_turn"`
	ResetMinDuration     time.Duration `yaml:"reset_min_duration"`
	ResetMaxDuration     time.Duration `yaml:"reset_max_duration"`
}

// DefaultConfig returns the tuned defaults from the parameter package
func DefaultConfig() Config {
	return Config{
		MagnetHour: DetentConfig{
			ThresholdDeg: parameter.MagnetHourThresholdDeg,
			HardSnapDeg:  parameter.MagnetHourHardSnapDeg,
			Base:         parameter.MagnetHourBase,
			Exponent:     parameter.MagnetHourExponent,
		},
		MagnetHalf: DetentConfig{
			ThresholdDeg: parameter.MagnetHalfThresholdDeg,
			HardSnapDeg:  parameter.MagnetHalfHardSnapDeg,
			Base:         parameter.MagnetHalfBase,
			Exponent:     parameter.MagnetHalfExponent,
		},
		MagnetQuarter: DetentConfig{
			ThresholdDeg: parameter.MagnetQuarterThresholdDeg,
			HardSnapDeg:  parameter.MagnetQuarterHardSnapDeg,
			Base:         parameter.MagnetQuarterBase,
			Exponent:     parameter.MagnetQuarterExponent,
		},
		CoastMagnetScale: parameter.MagnetCoastScale,

		DampingPerFrame:    parameter.CoastDampingPerFrame,
		DampingHz:          parameter.CoastReferenceHz,
		CoastStartVelocity: parameter.CoastStartVelocity,
		CoastStopVelocity:  parameter.CoastStopVelocity,
		MaxVelocity:        parameter.MaxVelocity,
		ReleaseWindow:      parameter.DragReleaseWindow,
		MaxStep:            parameter.MaxPhysicsStep,

		SnapDuration:  parameter.SnapDuration,
		SettleEpsilon: parameter.SettleEpsilon,

		ResetNearDeg:         parameter.ResetNearThresholdDeg,
		ResetShortDuration:   parameter.ResetShortDuration,
		ResetDurationPerTurn: parameter.ResetDurationPerTurn,
		ResetMinDuration:     parameter.ResetMinDuration,
		ResetMaxDuration:     parameter.ResetMaxDuration,
	}
}

// Validate rejects values that would stall or destabilise the physics
func (c Config) Validate() error {
	for name, d := range map[string]DetentConfig{"hour": c.MagnetHour, "half": c.MagnetHalf, "quarter": c.MagnetQuarter} {
		if d.ThresholdDeg < 0 || d.HardSnapDeg < 0 || d.HardSnapDeg > d.ThresholdDeg {
			return fmt.Errorf("%w: magnet %s needs 0 <= hard_snap_deg <= threshold_deg", ErrInvalidConfig, name)
		}
		if d.Base < 0 || d.Base > 1 || d.Exponent <= 0 {
			return fmt.Errorf("%w: magnet %s needs base in [0,1] and exponent > 0", ErrInvalidConfig, name)
		}
	}
	if c.DampingPerFrame <= 0 || c.DampingPerFrame >= 1 || c.DampingHz <= 0 {
		return fmt.Errorf("%w: damping_per_frame must be in (0,1) with damping_hz > 0", ErrInvalidConfig)
	}
	if c.CoastStopVelocity <= 0 || c.CoastStartVelocity < c.CoastStopVelocity {
		return fmt.Errorf("%w: need 0 < coast_stop_velocity <= coast_start_velocity", ErrInvalidConfig)
	}
	if c.CoastMagnetScale < 0 || c.CoastMagnetScale > 1 {
		return fmt.Errorf("%w: coast_magnet_scale must be in [0,1]", ErrInvalidConfig)
	}
	if c.SettleEpsilon < 0 || c.SettleEpsilon >= dialtime.TickWidth/2 {
		return fmt.Errorf("%w: settle_epsilon must be in [0, half a tick)", ErrInvalidConfig)
	}
	if c.ResetNearDeg < 0 || c.ResetDurationPerTurn <= 0 {
		return fmt.Errorf("%w: need reset_near_deg >= 0 and reset_duration_per_turn > 0", ErrInvalidConfig)
	}
	if c.MaxVelocity <= 0 || c.MaxStep <= 0 {
		return fmt.Errorf("%w: max_velocity and max_step must be positive", ErrInvalidConfig)
	}
	if c.SnapDuration <= 0 || c.ResetShortDuration <= 0 || c.ResetMinDuration <= 0 || c.ResetMaxDuration < c.ResetMinDuration {
		return fmt.Errorf("%w: animation durations must be positive and min <= max", ErrInvalidConfig)
	}
	return nil
}
