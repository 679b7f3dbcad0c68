package orbit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tzdial/vmath"
)

func testGeometry() Geometry {
	return Geometry{InnerRadius: 100, OuterRadius: 130, LetterSpacing: 8, Gap: 4}
}

func newTestPlacer(t *testing.T) *Placer {
	t.Helper()
	p, err := NewPlacer(testGeometry())
	require.NoError(t, err)
	return p
}

func deg(d float64) float64 { return vmath.Radians(d) }

func TestPlace_Empty(t *testing.T) {
	t.Parallel()
	p := newTestPlacer(t)

	res := p.Place(nil)
	assert.Empty(t, res.Placements)
	assert.Empty(t, res.Conflicts)
	assert.Empty(t, res.Assignment())
}

func TestPlace_DisjointLabelsAlternateRings(t *testing.T) {
	t.Parallel()
	p := newTestPlacer(t)

	res := p.Place([]Label{
		NewLabel("tokyo", "TYO", deg(10)),
		NewLabel("paris", "PAR", deg(120)),
	})

	assert.Empty(t, res.Conflicts)
	assert.Equal(t, RingInner, res.Ring("tokyo"))
	assert.Equal(t, RingOuter, res.Ring("paris"))
}

func TestPlace_IdenticalCentersNeverShareARing(t *testing.T) {
	t.Parallel()
	p := newTestPlacer(t)

	res := p.Place([]Label{
		NewLabel("a", "AAA", deg(45)),
		NewLabel("b", "BBB", deg(45)),
	})

	ra, rb := res.Ring("a"), res.Ring("b")
	if ra != RingNone && rb != RingNone {
		assert.NotEqual(t, ra, rb, "overlapping labels silently placed on the same ring")
	} else {
		assert.True(t, res.Conflicted("a") || res.Conflicted("b"))
	}
}

func TestPlace_ThirdCollidingLabelIsFlagged(t *testing.T) {
	t.Parallel()
	p := newTestPlacer(t)

	res := p.Place([]Label{
		NewLabel("a", "AAA", deg(90)),
		NewLabel("b", "BBB", deg(91)),
		NewLabel("c", "CCC", deg(90.5)),
	})

	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, "c", res.Conflicts[0].ID)
	assert.Contains(t, res.Conflicts[0].Note, "a on inner ring")
	assert.Contains(t, res.Conflicts[0].Note, "b on outer ring")
	assert.False(t, res.Placed("c"))
	assert.Equal(t, RingNone, res.Ring("c"))
	assert.Len(t, res.Placements, 2)
}

func TestPlace_ConflictDoesNotAdvancePreference(t *testing.T) {
	t.Parallel()
	p := newTestPlacer(t)

	res := p.Place([]Label{
		NewLabel("a", "AAA", 0),
		NewLabel("b", "BBB", 0),
		NewLabel("c", "CCC", 0),
		NewLabel("d", "DDD", deg(180)),
	})

	assert.True(t, res.Conflicted("c"))
	// a inner, b outer, c rejected, so d is back on the inner ring
	assert.Equal(t, RingInner, res.Ring("d"))
}

func TestPlace_WrapAroundIsDetected(t *testing.T) {
	t.Parallel()
	p := newTestPlacer(t)

	res := p.Place([]Label{
		NewLabel("west", "WST", deg(359)),
		NewLabel("east", "EST", deg(1)),
	})

	assert.Empty(t, res.Conflicts)
	assert.NotEqual(t, res.Ring("west"), res.Ring("east"))

	g := testGeometry()
	west := g.Interval(NewLabel("west", "WST", deg(359)), RingInner)
	east := g.Interval(NewLabel("east", "EST", deg(1)), RingInner)
	assert.Greater(t, west.End, vmath.TwoPi, "test label must cross the 0° cut")
	assert.True(t, Overlaps(west, east))
}

func TestPlace_IsDeterministic(t *testing.T) {
	t.Parallel()
	p := newTestPlacer(t)

	labels := []Label{
		NewLabel("nyc", "NYC", deg(12)),
		NewLabel("lon", "LON", deg(14)),
		NewLabel("syd", "SYD", deg(200)),
		NewLabel("sfo", "SFO", deg(13)),
		NewLabel("hkg", "HKG", deg(201)),
	}

	first := p.Place(labels)
	second := p.Place(labels)
	if diff := cmp.Diff(first, second, cmp.AllowUnexported(Result{})); diff != "" {
		t.Errorf("placement not deterministic (-first +second):\n%s", diff)
	}
}

func TestPlace_NoOverlapsOnAnyRing(t *testing.T) {
	t.Parallel()
	p := newTestPlacer(t)

	var labels []Label
	for i := 0; i < 20; i++ {
		labels = append(labels, NewLabel(string(rune('a'+i)), "XYZ", deg(float64(i*17%360))))
	}
	res := p.Place(labels)

	for i, a := range res.Placements {
		for _, b := range res.Placements[i+1:] {
			if a.Ring == b.Ring {
				assert.False(t, Overlaps(a.Interval, b.Interval), "%s and %s overlap on %s", a.ID, b.ID, a.Ring)
			}
		}
	}
	assert.Equal(t, len(labels), len(res.Placements)+len(res.Conflicts))
}

func TestNewPlacer_InvalidGeometry(t *testing.T) {
	t.Parallel()

	_, err := NewPlacer(Geometry{InnerRadius: 0, OuterRadius: 10, LetterSpacing: 1})
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = NewPlacer(Geometry{InnerRadius: 10, OuterRadius: 20, LetterSpacing: -1})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestGeometry_IntervalShrinksOnOuterRing(t *testing.T) {
	t.Parallel()
	g := testGeometry()
	l := NewLabel("x", "XYZ", 1)

	inner := g.Interval(l, RingInner)
	outer := g.Interval(l, RingOuter)

	assert.InDelta(t, 1, (inner.Start+inner.End)/2, 1e-12)
	assert.Greater(t, inner.Width(), outer.Width())
	// (letters-1) * spacing / radius + 2 * gap / radius
	assert.InDelta(t, (2*8.0+2*4.0)/100, inner.Width(), 1e-12)
}

func TestGeometry_SingleLetterHasOnlyGap(t *testing.T) {
	t.Parallel()
	g := testGeometry()
	iv := g.Interval(Label{ID: "x", Center: 0, Letters: 0}, RingInner)
	assert.InDelta(t, 2*4.0/100, iv.Width(), 1e-12)
}

func TestOverlaps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint", Interval{deg(10), deg(20)}, Interval{deg(30), deg(40)}, false},
		{"nested", Interval{deg(10), deg(50)}, Interval{deg(20), deg(30)}, true},
		{"partial", Interval{deg(10), deg(25)}, Interval{deg(20), deg(40)}, true},
		{"touching counts", Interval{deg(10), deg(20)}, Interval{deg(20), deg(30)}, true},
		{"straddler vs span in its gap", Interval{deg(350), deg(370)}, Interval{deg(20), deg(40)}, false},
		{"straddler vs span crossing its end", Interval{deg(350), deg(370)}, Interval{deg(5), deg(15)}, true},
		{"straddler vs span crossing its start", Interval{deg(350), deg(370)}, Interval{deg(340), deg(352)}, true},
		{"span vs straddler (swapped)", Interval{deg(20), deg(40)}, Interval{deg(-10), deg(10)}, false},
		{"both straddle", Interval{deg(355), deg(365)}, Interval{deg(-2), deg(1)}, true},
		{"359 wide vs 1 narrow", Interval{deg(355), deg(363)}, Interval{deg(0.5), deg(1.5)}, true},
		{"full circle", Interval{0, vmath.TwoPi}, Interval{deg(100), deg(101)}, true},
		{"negative non straddling", Interval{deg(-40), deg(-30)}, Interval{deg(-20), deg(-10)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a), "overlap must be symmetric")
		})
	}
}

func TestOverlaps_Symmetric(t *testing.T) {
	t.Parallel()
	for i := 0; i < 72; i++ {
		for j := 0; j < 72; j++ {
			a := Interval{deg(float64(i * 5)), deg(float64(i*5) + 12)}
			b := Interval{deg(float64(j * 5)), deg(float64(j*5) + 7)}
			require.Equal(t, Overlaps(a, b), Overlaps(b, a), "asymmetric at %d,%d", i, j)
		}
	}
}
