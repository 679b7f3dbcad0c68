package physics

import (
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/lixenwraith/tzdial/vmath"
)

// Detent describes the magnetic pull toward one snap target
// All distances in radians
type Detent struct {
	Threshold float64 // pull applies strictly inside this distance
	HardSnap  float64 // within this distance the value is set exactly
	Base      float64 // minimum pull fraction inside Threshold
	Exponent  float64 // curve exponent, pull grows as distance shrinks
}

// Scaled returns a copy with Base multiplied by s, used for gentler coasting pull
func (d Detent) Scaled(s float64) Detent {
	d.Base *= s
	return d
}

// Pull returns the blend fraction toward the target for a given distance
// hard is true when the value must be set exactly (fraction 1)
// fraction = Base + (1-Base) * clamp(1 - distance/Threshold)^Exponent
func (d Detent) Pull(distance float64) (fraction float64, hard bool) {
	if distance < 0 {
		distance = -distance
	}
	if scalar.EqualWithinAbs(distance, 0, d.HardSnap) {
		return 1, true
	}
	if d.Threshold <= 0 || distance >= d.Threshold {
		return 0, false
	}
	closeness := 1 - distance/d.Threshold
	return d.Base + (1-d.Base)*vmath.EaseInPow(closeness, d.Exponent), false
}

// Attract moves offset (signed distance from target) toward zero by fraction
func Attract(offset, fraction float64) float64 {
	return offset * (1 - vmath.Clamp01(fraction))
}
