package vmath

import "math"

// Angle constants in radians
const (
	TwoPi    = 2 * math.Pi
	DegToRad = math.Pi / 180
	RadToDeg = 180 / math.Pi
)

// Radians converts degrees to radians
func Radians(deg float64) float64 { return deg * DegToRad }

// Degrees converts radians to degrees
func Degrees(rad float64) float64 { return rad * RadToDeg }

// IsFinite reports whether f is neither NaN nor ±Inf
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// NormalizeAngle wraps a to [-π, π)
// Values already in range are returned untouched so the function is idempotent;
// everything else goes through atan2(sin, cos) to avoid modulo artifacts at ±π
func NormalizeAngle(a float64) float64 {
	if a >= -math.Pi && a < math.Pi {
		return a
	}
	n := math.Atan2(math.Sin(a), math.Cos(a))
	if n >= math.Pi {
		n = -math.Pi
	}
	return n
}

// NormalizePositive wraps a to [0, 2π)
func NormalizePositive(a float64) float64 {
	n := NormalizeAngle(a)
	if n < 0 {
		n += TwoPi
	}
	// -ε + 2π can round up to exactly 2π
	if n >= TwoPi {
		n = 0
	}
	return n
}

// ShortestDelta returns the signed shortest rotation from -> to, in (-π, π]
func ShortestDelta(from, to float64) float64 {
	d := NormalizeAngle(to - from)
	if d == -math.Pi {
		return math.Pi
	}
	return d
}

// Clamp01 limits t to [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// ClampF limits v to [lo, hi]
func ClampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SignF returns -1, 0 or 1
func SignF(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// LerpF interpolates between a and b by t (unclamped)
func LerpF(a, b, t float64) float64 {
	return a + (b-a)*t
}
