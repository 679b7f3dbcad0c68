package vmath

import "math"

// EaseOutCubic maps linear progress t in [0,1] to decelerating progress
// Monotonic non-decreasing; EaseOutCubic(0) == 0 and EaseOutCubic(1) == 1 exactly
func EaseOutCubic(t float64) float64 {
	t = Clamp01(t)
	inv := 1 - t
	return 1 - inv*inv*inv
}

// EaseInPow returns clamp(t)^p, used for curves that strengthen toward 1
func EaseInPow(t, p float64) float64 {
	t = Clamp01(t)
	if p == 1 {
		return t
	}
	return math.Pow(t, p)
}
