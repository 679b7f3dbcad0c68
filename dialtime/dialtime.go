// Package dialtime converts between wall-clock time of day, dial angles and
// the 96-position tick index of the dial.
//
// Conventions: 18:00 (the reference hour) sits at angle 0, angles grow
// clockwise at 15° per hour, one tick is 15 minutes (3.75°). Every exported
// angle is normalised to [-π, π) unless documented as [0, 2π).
package dialtime

import (
	"fmt"
	"math"
	"time"

	"github.com/lixenwraith/tzdial/vmath"
)

const (
	TicksPerDay    = 96
	MinutesPerTick = 15
	MinutesPerDay  = 24 * 60
	ReferenceHour  = 18
	DegreesPerHour = 15.0

	// TickWidth is the angular size of one tick in radians
	TickWidth = vmath.TwoPi / TicksPerDay

	// truncEpsilon absorbs float noise (in hours) before minute truncation
	truncEpsilon = 1e-9
)

// TimeOfDay is a wall-clock hour and minute
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Minutes returns minutes since midnight
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// FromMinutes builds a TimeOfDay from minutes since midnight, wrapping to one day
func FromMinutes(total int) TimeOfDay {
	total %= MinutesPerDay
	if total < 0 {
		total += MinutesPerDay
	}
	return TimeOfDay{Hour: total / 60, Minute: total % 60}
}

// WrapTick reduces any integer tick to 0..95
func WrapTick(i int) int {
	i %= TicksPerDay
	if i < 0 {
		i += TicksPerDay
	}
	return i
}

// AngleFromTime maps hour:minute to its dial angle, normalised to [-π, π)
func AngleFromTime(hour, minute int) float64 {
	deg := (float64(hour)+float64(minute)/60)*DegreesPerHour - ReferenceHour*DegreesPerHour
	return vmath.NormalizeAngle(vmath.Radians(deg))
}

// TimeFromAngle is the inverse of AngleFromTime
// Minutes are truncated, not rounded to a tick; prefer TimeFromTickIndex when a tick is the source
func TimeFromAngle(angle float64) TimeOfDay {
	if !vmath.IsFinite(angle) {
		return TimeOfDay{Hour: ReferenceHour}
	}
	deg := vmath.Degrees(vmath.NormalizePositive(angle))
	hours := math.Mod(deg/DegreesPerHour+ReferenceHour, 24) + truncEpsilon
	hour := int(hours)
	minute := int((hours - float64(hour)) * 60)
	if minute > 59 {
		minute = 59
	}
	return TimeOfDay{Hour: hour % 24, Minute: minute}
}

// TickIndexFromAngle returns the nearest tick (round half up), in 0..95
// Non-finite angles map to tick 0
func TickIndexFromAngle(angle float64) int {
	if !vmath.IsFinite(angle) {
		return 0
	}
	a := vmath.NormalizePositive(angle)
	return WrapTick(int(math.Floor(a/TickWidth + 0.5)))
}

// AngleFromTickIndex returns the tick's angle in [0, 2π)
func AngleFromTickIndex(index int) float64 {
	return float64(WrapTick(index)) * TickWidth
}

// TimeFromTickIndex converts a tick to wall time with integer arithmetic only
func TimeFromTickIndex(index int) TimeOfDay {
	return FromMinutes(ReferenceHour*60 + WrapTick(index)*MinutesPerTick)
}

// TickIndexFromTime returns the tick nearest to hour:minute (round half up)
func TickIndexFromTime(hour, minute int) int {
	offset := hour*60 + minute - ReferenceHour*60
	// floor((offset + 7.5) / 15) in integers
	return WrapTick(floorDiv(2*offset+MinutesPerTick, 2*MinutesPerTick))
}

// RoundToTick rounds t to the nearest 15 minute boundary (half up, wrapping past midnight)
func RoundToTick(t TimeOfDay) TimeOfDay {
	return TimeFromTickIndex(TickIndexFromTime(t.Hour, t.Minute))
}

// LocalTime returns the time of day of instant shifted by a UTC offset in seconds
func LocalTime(instant time.Time, offsetSeconds int) TimeOfDay {
	local := instant.UTC().Add(time.Duration(offsetSeconds) * time.Second)
	return TimeOfDay{Hour: local.Hour(), Minute: local.Minute()}
}

// NormalizeAngle wraps a to [-π, π)
func NormalizeAngle(a float64) float64 {
	return vmath.NormalizeAngle(a)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
