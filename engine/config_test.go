package engine

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"hard snap beyond threshold": func(c *Config) { c.MagnetHour.HardSnapDeg = c.MagnetHour.ThresholdDeg + 1 },
		"base above one":             func(c *Config) { c.MagnetQuarter.Base = 1.5 },
		"zero exponent":              func(c *Config) { c.MagnetHalf.Exponent = 0 },
		"damping one":                func(c *Config) { c.DampingPerFrame = 1 },
		"stop above start":           func(c *Config) { c.CoastStopVelocity = c.CoastStartVelocity * 2 },
		"zero max step":              func(c *Config) { c.MaxStep = 0 },
		"reset min above max":        func(c *Config) { c.ResetMinDuration = c.ResetMaxDuration + time.Millisecond },
		"zero snap":                  func(c *Config) { c.SnapDuration = 0 },
		"negative settle epsilon":    func(c *Config) { c.SettleEpsilon = -1 },
		"coast scale above one":      func(c *Config) { c.CoastMagnetScale = 2 },
		"zero reset per turn":        func(c *Config) { c.ResetDurationPerTurn = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := DefaultConfig()
			mutate(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestRotorUsesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SnapDuration = 500 * time.Millisecond
	r := mustRotor(t, Options{Config: &cfg, Clock: NewManualClock(testEpoch)})
	if r.cfg.SnapDuration != 500*time.Millisecond {
		t.Errorf("snap duration = %v", r.cfg.SnapDuration)
	}
}
