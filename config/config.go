// Package config loads dial tuning from a YAML file and TZDIAL_* environment overrides
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/tzdial/engine"
	"github.com/lixenwraith/tzdial/orbit"
	"github.com/lixenwraith/tzdial/parameter"
)

// ErrConfig wraps every load and validation failure
var ErrConfig = errors.New("config")

// Tuning is the full set of runtime settings
type Tuning struct {
	Engine engine.Config  `yaml:"engine"`
	Orbit  orbit.Geometry `yaml:"orbit"`
	Haptic HapticConfig   `yaml:"haptic"`
	Loop   LoopConfig     `yaml:"loop"`

	// Home is the zone the selected time is read in, empty means the host's local zone
	Home string `yaml:"home"`
	// Cities in "CODE=Zone,..." form, empty means the built-in set
	Cities string `yaml:"cities"`
}

// HapticConfig shapes pulse delivery
type HapticConfig struct {
	Debounce time.Duration `yaml:"debounce"`
	Muted    bool          `yaml:"muted"`
}

// LoopConfig sets the engine loop cadence
type LoopConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	WallInterval time.Duration `yaml:"wall_interval"`
}

// Default returns the built-in tuning
func Default() Tuning {
	return Tuning{
		Engine: engine.DefaultConfig(),
		Orbit: orbit.Geometry{
			InnerRadius:   parameter.OrbitInnerRadius,
			OuterRadius:   parameter.OrbitOuterRadius,
			LetterSpacing: parameter.OrbitLetterSpacing,
			Gap:           parameter.OrbitGap,
		},
		Haptic: HapticConfig{Debounce: parameter.HapticDebounce},
		Loop: LoopConfig{
			TickInterval: parameter.PhysicsTickInterval,
			WallInterval: parameter.WallTickInterval,
		},
	}
}

// Load overlays the YAML file at path onto the defaults, then the environment
// An empty path skips the file
func Load(path string) (Tuning, error) {
	t := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return t, fmt.Errorf("%w: %w", ErrConfig, err)
		}
		if err := t.decode(raw); err != nil {
			return t, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
		}
	}
	t.ApplyEnv(os.LookupEnv)
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

// Parse overlays YAML bytes onto the defaults without consulting the environment
func Parse(raw []byte) (Tuning, error) {
	t := Default()
	if err := t.decode(raw); err != nil {
		return t, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return t, t.Validate()
}

func (t *Tuning) decode(raw []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(t); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv reads TZDIAL_* overrides through lookup; unparsable values are logged and ignored
func (t *Tuning) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("TZDIAL_HOME"); ok {
		t.Home = v
	}
	if v, ok := lookup("TZDIAL_CITIES"); ok {
		t.Cities = v
	}
	if v, ok := lookup("TZDIAL_MUTED"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			t.Haptic.Muted = b
		} else {
			log.Printf("config: ignoring TZDIAL_MUTED=%q: %v", v, err)
		}
	}
	envDuration(lookup, "TZDIAL_HAPTIC_DEBOUNCE", &t.Haptic.Debounce)
	envDuration(lookup, "TZDIAL_SNAP_DURATION", &t.Engine.SnapDuration)
	envDuration(lookup, "TZDIAL_TICK_INTERVAL", &t.Loop.TickInterval)
	envFloat(lookup, "TZDIAL_COAST_DAMPING", &t.Engine.DampingPerFrame)
}

func envDuration(lookup func(string) (string, bool), key string, dst *time.Duration) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: ignoring %s=%q: %v", key, v, err)
		return
	}
	*dst = d
}

func envFloat(lookup func(string) (string, bool), key string, dst *float64) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: ignoring %s=%q: %v", key, v, err)
		return
	}
	*dst = f
}

// Validate checks every section
func (t Tuning) Validate() error {
	if err := t.Engine.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if err := t.Orbit.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if t.Orbit.OuterRadius <= t.Orbit.InnerRadius {
		return fmt.Errorf("%w: outer_radius must exceed inner_radius", ErrConfig)
	}
	if t.Haptic.Debounce < 0 {
		return fmt.Errorf("%w: haptic debounce must not be negative", ErrConfig)
	}
	if t.Loop.TickInterval <= 0 || t.Loop.WallInterval < 0 {
		return fmt.Errorf("%w: loop intervals must be positive", ErrConfig)
	}
	return nil
}
