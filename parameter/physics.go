package parameter

import "time"

// Drag sampling
const (
	// DragSampleCapacity is the ring buffer size used for exit velocity estimation
	DragSampleCapacity = 6

	// DragReleaseWindow discards samples older than this at release (finger held still before lifting)
	DragReleaseWindow = 100 * time.Millisecond
)

// Inertia
const (
	// CoastDampingPerFrame is the multiplicative velocity decay per reference frame
	CoastDampingPerFrame = 0.985

	// CoastReferenceHz is the frame rate CoastDampingPerFrame is expressed against
	CoastReferenceHz = 60.0

	// CoastStartVelocity is the exit velocity (rad/s) above which a release coasts
	CoastStartVelocity = 0.35

	// CoastStopVelocity is the velocity (rad/s) at which coasting hands over to the snap step
	CoastStopVelocity = 0.08

	// MaxVelocity caps estimated exit velocity (rad/s)
	MaxVelocity = 25.0

	// MaxPhysicsStep caps a single physics step, larger gaps are integrated in slices
	MaxPhysicsStep = 50 * time.Millisecond
)

// Scripted animations
const (
	// SnapDuration is the ease-out length of the settle-to-tick animation
	SnapDuration = 180 * time.Millisecond

	// SettleEpsilon (rad) is the distance under which the snap step sets the tick without animating
	SettleEpsilon = 1e-4

	// ResetNearThresholdDeg is the offset under which reset-to-zero plays the short ease
	ResetNearThresholdDeg = 7.5

	// ResetShortDuration is the ease length for near resets
	ResetShortDuration = 220 * time.Millisecond

	// ResetDurationPerTurn scales reset animations by angular distance (full turn)
	ResetDurationPerTurn = 1400 * time.Millisecond

	// ResetMinDuration and ResetMaxDuration clamp distance-scaled reset animations
	ResetMinDuration = 350 * time.Millisecond
	ResetMaxDuration = 1200 * time.Millisecond
)
