package parameter

// Magnetic detents, one set per tick granularity
// Threshold: distance (deg) inside which the pull applies
// HardSnap: distance (deg) inside which the value is set exactly
// Base: minimum pull fraction per reference frame inside the threshold
// Exponent: curve shape of the pull as distance shrinks
const (
	MagnetHourThresholdDeg = 2.5
	MagnetHourHardSnapDeg  = 0.15
	MagnetHourBase         = 0.12
	MagnetHourExponent     = 2.0

	MagnetHalfThresholdDeg = 1.5
	MagnetHalfHardSnapDeg  = 0.10
	MagnetHalfBase         = 0.08
	MagnetHalfExponent     = 2.0

	MagnetQuarterThresholdDeg = 1.0
	MagnetQuarterHardSnapDeg  = 0.05
	MagnetQuarterBase         = 0.05
	MagnetQuarterExponent     = 2.0

	// MagnetCoastScale softens base pull while coasting
	MagnetCoastScale = 0.4
)
