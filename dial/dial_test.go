package dial

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tzdial/dialtime"
	"github.com/lixenwraith/tzdial/engine"
	"github.com/lixenwraith/tzdial/orbit"
	"github.com/lixenwraith/tzdial/timezone"
)

var (
	noon     = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	geometry = orbit.Geometry{InnerRadius: 0.78, OuterRadius: 0.92, LetterSpacing: 0.045, Gap: 0.02}
	zones    = timezone.Static{
		"UTC":      0,
		"X/Plus9":  9 * 3600,
		"X/Minus5": -5 * 3600,
		"X/Plus53": 5*3600 + 30*60,
	}
)

type layoutCounter struct {
	calls     int
	conflicts int
}

func (c *layoutCounter) ObserveLayout(conflicts int, _ time.Duration) {
	c.calls++
	c.conflicts = conflicts
}

func newTestDial(t *testing.T, cities []City, obs LayoutObserver) *Dial {
	t.Helper()
	d, err := New(cities, zones, geometry, Options{Home: "UTC", Observer: obs})
	require.NoError(t, err)
	return d
}

func TestArrows(t *testing.T) {
	d := newTestDial(t, []City{
		{ID: "lon", Code: "LON", Zone: "UTC"},
		{ID: "tyo", Code: "TYO", Zone: "X/Plus9"},
		{ID: "del", Code: "DEL", Zone: "X/Plus53"},
		{ID: "mrs", Code: "MRS", Zone: "Mars/Base"},
	}, nil)

	arrows := d.Arrows(noon)
	require.Len(t, arrows, 4)

	assert.True(t, arrows[0].Resolved)
	assert.InDelta(t, -math.Pi/2, arrows[0].Angle, 1e-12)
	assert.Equal(t, "21:00", arrows[1].Local.String())
	assert.InDelta(t, math.Pi/4, arrows[1].Angle, 1e-12)
	assert.Equal(t, "17:30", arrows[2].Local.String())
	assert.Equal(t, 5*3600+30*60, arrows[2].Offset)

	assert.False(t, arrows[3].Resolved, "unknown zone must have no arrow")
	assert.Zero(t, arrows[3].Angle)
}

func TestLayoutPlacesResolvedCities(t *testing.T) {
	obs := &layoutCounter{}
	d := newTestDial(t, []City{
		{ID: "a", Code: "AAA", Zone: "UTC"},
		{ID: "b", Code: "BBB", Zone: "UTC"},
		{ID: "c", Code: "CCC", Zone: "UTC"},
		{ID: "x", Code: "XXX", Zone: "Nowhere"},
		{ID: "t", Code: "TYO", Zone: "X/Plus9"},
	}, obs)

	l := d.Layout(noon)

	assert.Equal(t, orbit.RingInner, l.Placement.Ring("a"))
	assert.Equal(t, orbit.RingOuter, l.Placement.Ring("b"))
	assert.True(t, l.Placement.Conflicted("c"))
	// Conflict leaves the preference on inner
	assert.Equal(t, orbit.RingInner, l.Placement.Ring("t"))

	assert.False(t, l.Placement.Placed("x"))
	assert.False(t, l.Placement.Conflicted("x"))

	assert.Equal(t, 1, obs.calls)
	assert.Equal(t, 1, obs.conflicts)

	a, ok := l.Arrow("t")
	require.True(t, ok)
	assert.Equal(t, "21:00", a.Local.String())
	_, ok = l.Arrow("missing")
	assert.False(t, ok)
}

func TestRefreshAndCurrent(t *testing.T) {
	d := newTestDial(t, []City{{ID: "lon", Code: "LON", Zone: "UTC"}}, nil)

	assert.Empty(t, d.Current().Arrows)
	d.Refresh(noon)
	assert.Equal(t, noon, d.Current().At)

	later := noon.Add(90 * time.Minute)
	d.Refresh(later)
	a, _ := d.Current().Arrow("lon")
	assert.Equal(t, "13:30", a.Local.String())
}

func TestSelectedProjectsIntoZones(t *testing.T) {
	d := newTestDial(t, []City{
		{ID: "lon", Code: "LON", Zone: "UTC"},
		{ID: "tyo", Code: "TYO", Zone: "X/Plus9"},
		{ID: "nyc", Code: "NYC", Zone: "X/Minus5"},
		{ID: "mrs", Code: "MRS", Zone: "Mars/Base"},
	}, nil)

	snap := engine.Snapshot{At: noon, Selected: dialtime.TimeOfDay{Hour: 18}}
	got := d.Selected(snap)

	want := []Selection{
		{City: City{ID: "lon", Code: "LON", Zone: "UTC"}, Local: dialtime.TimeOfDay{Hour: 18}},
		{City: City{ID: "tyo", Code: "TYO", Zone: "X/Plus9"}, Local: dialtime.TimeOfDay{Hour: 3}},
		{City: City{ID: "nyc", Code: "NYC", Zone: "X/Minus5"}, Local: dialtime.TimeOfDay{Hour: 13}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Selected() mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectedUnknownHomeTreatedAsUTC(t *testing.T) {
	d, err := New([]City{{ID: "tyo", Code: "TYO", Zone: "X/Plus9"}}, zones, geometry, Options{Home: "Nowhere"})
	require.NoError(t, err)

	got := d.Selected(engine.Snapshot{At: noon, Selected: dialtime.TimeOfDay{Hour: 20, Minute: 15}})
	require.Len(t, got, 1)
	assert.Equal(t, "05:15", got[0].Local.String())
}

func TestNewRejectsBadGeometry(t *testing.T) {
	_, err := New(nil, zones, orbit.Geometry{}, Options{})
	assert.True(t, errors.Is(err, orbit.ErrInvalidGeometry))
}

func TestCitiesIsACopy(t *testing.T) {
	src := []City{{ID: "lon", Code: "LON", Zone: "UTC"}}
	d := newTestDial(t, src, nil)
	src[0].Code = "XXX"
	cs := d.Cities()
	cs[0].Zone = "changed"
	assert.Equal(t, "LON", d.Cities()[0].Code)
	assert.Equal(t, "UTC", d.Cities()[0].Zone)
}

func TestScreenAngle(t *testing.T) {
	assert.InDelta(t, 0, ScreenAngle(math.Pi/4, -math.Pi/4), 1e-12)
	assert.InDelta(t, -math.Pi, ScreenAngle(math.Pi/2, math.Pi/2), 1e-12)
}

func TestParseCities(t *testing.T) {
	got, err := ParseCities(" tyo=Asia/Tokyo, NYC = America/New_York ,")
	require.NoError(t, err)
	want := []City{
		{ID: "tyo", Code: "TYO", Zone: "Asia/Tokyo"},
		{ID: "nyc", Code: "NYC", Zone: "America/New_York"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseCities mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"", "TYO", "=Asia/Tokyo", "TYO=", "TOKYO=Asia/Tokyo", "TYO=A,tyo=B"} {
		_, err := ParseCities(bad)
		assert.ErrorIs(t, err, ErrInvalidCity, bad)
	}
}

func TestDefaultCitiesResolve(t *testing.T) {
	z := timezone.NewIANA()
	for _, c := range DefaultCities {
		_, ok := z.Resolve(c.Zone, noon)
		assert.True(t, ok, c.Zone)
	}
}
