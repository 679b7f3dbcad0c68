package orbit

import (
	"github.com/lixenwraith/tzdial/vmath"
)

// Interval is an angular span [Start, End] in radians, Start <= End
// Endpoints may lie outside [0, 2π); they are normalised when compared
type Interval struct {
	Start float64
	End   float64
}

// Width returns the angular extent of the interval
func (iv Interval) Width() float64 {
	return iv.End - iv.Start
}

// normalized returns both endpoints in [0, 2π) and whether the span crosses the 0° cut
func (iv Interval) normalized() (start, end float64, straddles bool) {
	start = vmath.NormalizePositive(iv.Start)
	end = vmath.NormalizePositive(iv.End)
	return start, end, start > end
}

// Overlaps reports whether two intervals share any angle, accounting for wrap-around
//
// Neither straddles the cut: overlap unless one ends before the other starts.
// One straddles: overlap unless the other sits entirely inside the straddler's gap (end, start).
// Both straddle: both contain 0°, always overlap.
func Overlaps(a, b Interval) bool {
	if a.Width() >= vmath.TwoPi || b.Width() >= vmath.TwoPi {
		return true
	}

	s1, e1, wrap1 := a.normalized()
	s2, e2, wrap2 := b.normalized()

	switch {
	case !wrap1 && !wrap2:
		return !(e1 < s2 || e2 < s1)
	case wrap1 && wrap2:
		return true
	case wrap1:
		return !insideGap(s2, e2, e1, s1)
	default:
		return !insideGap(s1, e1, e2, s2)
	}
}

// insideGap reports whether the non-straddling span [s, e] lies strictly within
// (gapStart, gapEnd), the arc a straddling span leaves uncovered between its end and its start
func insideGap(s, e, gapStart, gapEnd float64) bool {
	return s > gapStart && e < gapEnd
}
