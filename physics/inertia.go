package physics

import "math"

// DecayRate converts a per-frame multiplicative damping factor at hz into a
// continuous exponential rate k, so that v(t) = v0 * e^(-k t)
func DecayRate(perFrame, hz float64) float64 {
	if perFrame <= 0 || perFrame >= 1 || hz <= 0 {
		return 0
	}
	return -math.Log(perFrame) * hz
}

// Coast advances exponentially decaying motion by dt seconds
// Returns the exact displacement over the step and the velocity at its end,
// independent of how the interval is sliced
func Coast(v0, k, dt float64) (displacement, v1 float64) {
	if dt <= 0 {
		return 0, v0
	}
	if k <= 0 {
		return v0 * dt, v0
	}
	e := math.Exp(-k * dt)
	return v0 * (1 - e) / k, v0 * e
}

// FrameFraction rescales a per-reference-frame blend fraction to a step of dt seconds
// 1 - (1-f)^(dt*hz); a full blend (f >= 1) stays full
func FrameFraction(f, dt, hz float64) float64 {
	if f >= 1 {
		return 1
	}
	if f <= 0 || dt <= 0 {
		return 0
	}
	return 1 - math.Pow(1-f, dt*hz)
}
