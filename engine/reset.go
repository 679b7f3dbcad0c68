package engine

import (
	"math"
	"time"

	"github.com/lixenwraith/tzdial/dialtime"
	"github.com/lixenwraith/tzdial/event"
	"github.com/lixenwraith/tzdial/haptic"
	"github.com/lixenwraith/tzdial/vmath"
)

// ResetToZero animates back to rotation 0, continuing in the most recent motion direction
func (r *Rotor) ResetToZero() error {
	if err := r.enter(); err != nil {
		return err
	}
	now := r.clock.Now()
	r.cancelMotion(now)

	current := r.RotationAngle()
	shortest := vmath.ShortestDelta(current, 0)

	if shortest == 0 {
		r.land(0, 0)
		r.arrive(now)
		r.flush()
		return nil
	}

	var total float64
	var duration time.Duration
	if math.Abs(shortest) <= vmath.Radians(r.cfg.ResetNearDeg) {
		total = shortest
		duration = r.cfg.ResetShortDuration
	} else {
		dir := r.motionDirection(shortest)
		if dir > 0 {
			total = vmath.NormalizePositive(-current)
		} else {
			total = -vmath.NormalizePositive(current)
		}
		duration = r.scaledDuration(total)
	}

	r.push(event.EventReset, now, &event.ResetPayload{Kind: event.ResetZero, Target: 0, Direction: vmath.SignF(total)})
	r.startAnimation(now, &animation{
		duration:    duration,
		total:       total,
		target:      0,
		finalTick:   0,
		finalOffset: 0,
		endPulse:    haptic.Heavy,
	}, haptic.Light)

	r.flush()
	return nil
}

// ResetToNow animates the frame so the current local wall time sits under the marker
// The frame rotates, not the hand, so the target is the negated time angle
func (r *Rotor) ResetToNow() error {
	if err := r.enter(); err != nil {
		return err
	}
	now := r.clock.Now()
	r.cancelMotion(now)

	// An unresolvable home zone reads as UTC
	offset, _ := r.zones.Resolve(r.home, now)
	local := now.UTC().Add(time.Duration(offset) * time.Second)
	target := NowTarget(local.Hour(), local.Minute())

	current := r.RotationAngle()
	total := vmath.ShortestDelta(current, target)

	finalTick := dialtime.TickIndexFromAngle(target)
	finalOffset := vmath.ShortestDelta(dialtime.AngleFromTickIndex(finalTick), target)

	duration := r.cfg.ResetShortDuration
	if math.Abs(total) > vmath.Radians(r.cfg.ResetNearDeg) {
		duration = r.scaledDuration(total)
	}

	r.push(event.EventReset, now, &event.ResetPayload{Kind: event.ResetNow, Target: target, Direction: vmath.SignF(total)})
	r.startAnimation(now, &animation{
		duration:    duration,
		total:       total,
		target:      target,
		finalTick:   finalTick,
		finalOffset: finalOffset,
		endPulse:    haptic.Medium,
	}, haptic.Light)

	r.flush()
	return nil
}

// NowTarget returns the rotation that puts hour:minute under the reference marker
func NowTarget(hour, minute int) float64 {
	return vmath.NormalizeAngle(-dialtime.AngleFromTime(hour, minute))
}

// cancelMotion drops a running gesture, coast or animation before a scripted reset
func (r *Rotor) cancelMotion(now time.Time) {
	r.anim = nil
	r.velocity = 0
	r.samples.Reset()
	r.held = false
	r.raw = r.remainder
	if r.phase != PhaseIdle {
		r.setPhase(PhaseIdle, now)
	}
}

// motionDirection picks the reset direction: last velocity sign, then last drag sign, then fallback's sign
func (r *Rotor) motionDirection(fallback float64) float64 {
	switch {
	case r.lastVelocitySign != 0:
		return r.lastVelocitySign
	case r.lastDragSign != 0:
		return r.lastDragSign
	case fallback != 0:
		return vmath.SignF(fallback)
	}
	return 1
}

func (r *Rotor) scaledDuration(angle float64) time.Duration {
	frac := math.Abs(angle) / vmath.TwoPi
	d := time.Duration(frac * float64(r.cfg.ResetDurationPerTurn))
	if d < r.cfg.ResetMinDuration {
		d = r.cfg.ResetMinDuration
	}
	if d > r.cfg.ResetMaxDuration {
		d = r.cfg.ResetMaxDuration
	}
	return d
}
