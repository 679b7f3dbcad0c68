package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tzdial/engine"
	"github.com/lixenwraith/tzdial/orbit"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestParseOverlaysDefaults(t *testing.T) {
	raw := []byte(`
engine:
  snap_duration: 250ms
  magnet_hour:
    threshold_deg: 3
    hard_snap_deg: 0.2
    base: 0.2
    exponent: 3
orbit:
  gap: 0.03
haptic:
  debounce: 40ms
  muted: true
home: Europe/Berlin
cities: "TYO=Asia/Tokyo"
`)
	got, err := Parse(raw)
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, 250*time.Millisecond, got.Engine.SnapDuration)
	assert.Equal(t, 3.0, got.Engine.MagnetHour.ThresholdDeg)
	assert.Equal(t, def.Engine.MagnetHalf, got.Engine.MagnetHalf, "untouched section keeps defaults")
	assert.Equal(t, def.Engine.DampingPerFrame, got.Engine.DampingPerFrame)
	assert.Equal(t, 0.03, got.Orbit.Gap)
	assert.Equal(t, def.Orbit.InnerRadius, got.Orbit.InnerRadius)
	assert.Equal(t, 40*time.Millisecond, got.Haptic.Debounce)
	assert.True(t, got.Haptic.Muted)
	assert.Equal(t, "Europe/Berlin", got.Home)
	assert.Equal(t, "TYO=Asia/Tokyo", got.Cities)
}

func TestParseEmpty(t *testing.T) {
	got, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), got)
}

func TestParseRejects(t *testing.T) {
	tests := map[string]struct {
		raw  string
		want error
	}{
		"unknown field":    {"engine:\n  snap_durration: 1s\n", nil},
		"bad yaml":         {"engine: [\n", nil},
		"invalid engine":   {"engine:\n  damping_per_frame: 1.5\n", engine.ErrInvalidConfig},
		"invalid geometry": {"orbit:\n  inner_radius: 0\n", orbit.ErrInvalidGeometry},
		"rings swapped":    {"orbit:\n  inner_radius: 1\n  outer_radius: 0.5\n", nil},
		"zero tick":        {"loop:\n  tick_interval: 0s\n", nil},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfig))
			if tt.want != nil {
				assert.True(t, errors.Is(err, tt.want), "%v should wrap %v", err, tt.want)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"TZDIAL_HOME":            "Asia/Tokyo",
		"TZDIAL_MUTED":           "true",
		"TZDIAL_HAPTIC_DEBOUNCE": "90ms",
		"TZDIAL_COAST_DAMPING":   "0.97",
		"TZDIAL_SNAP_DURATION":   "soon",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	tu := Default()
	tu.ApplyEnv(lookup)

	assert.Equal(t, "Asia/Tokyo", tu.Home)
	assert.True(t, tu.Haptic.Muted)
	assert.Equal(t, 90*time.Millisecond, tu.Haptic.Debounce)
	assert.Equal(t, 0.97, tu.Engine.DampingPerFrame)
	assert.Equal(t, Default().Engine.SnapDuration, tu.Engine.SnapDuration, "bad value ignored")
	assert.Empty(t, tu.Cities)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tzdial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("loop:\n  wall_interval: 5s\n"), 0o644))

	t.Setenv("TZDIAL_TICK_INTERVAL", "20ms")
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, got.Loop.WallInterval)
	assert.Equal(t, 20*time.Millisecond, got.Loop.TickInterval)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.True(t, errors.Is(err, ErrConfig))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadNoPath(t *testing.T) {
	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Orbit, got.Orbit)
}
