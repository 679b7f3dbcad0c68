package engine

import (
	"math"

	"github.com/lixenwraith/tzdial/event"
	"github.com/lixenwraith/tzdial/haptic"
	"github.com/lixenwraith/tzdial/physics"
	"github.com/lixenwraith/tzdial/vmath"
)

// StartDrag begins a gesture at pointerAngle (radians about the rotation centre)
// Any coasting or scripted animation is discarded without its completion
func (r *Rotor) StartDrag(pointerAngle float64) error {
	if err := r.enter(); err != nil {
		return err
	}
	now := r.clock.Now()
	if !vmath.IsFinite(pointerAngle) {
		r.push(event.EventSampleRejected, now, &event.SampleRejectedPayload{Value: pointerAngle})
		r.flush()
		return ErrInvalidSample
	}

	r.anim = nil
	r.velocity = 0
	// Continue from what is on screen
	r.raw = r.remainder
	r.held = false

	r.lastPointer = pointerAngle
	r.travel = 0
	r.samples.Reset()
	r.samples.Push(physics.Sample{At: now, Value: 0})

	r.push(event.EventGestureStart, now, nil)
	r.setPhase(PhaseDragging, now)
	r.flush()
	return nil
}

// UpdateDrag feeds one pointer sample
// NaN or infinite angles are ignored and reported with ErrInvalidSample
func (r *Rotor) UpdateDrag(pointerAngle float64) error {
	if err := r.enter(); err != nil {
		return err
	}
	if r.phase != PhaseDragging {
		return ErrNotDragging
	}
	now := r.clock.Now()
	if !vmath.IsFinite(pointerAngle) {
		r.push(event.EventSampleRejected, now, &event.SampleRejectedPayload{Value: pointerAngle})
		r.flush()
		return ErrInvalidSample
	}

	delta := vmath.ShortestDelta(r.lastPointer, pointerAngle)
	r.lastPointer = pointerAngle

	if delta != 0 {
		r.rotate(delta, now, true)
		r.travel += delta
		r.lastDragSign = vmath.SignF(delta)
	}

	if hard := r.magnetize(1, 0); hard {
		if !r.held {
			r.held = true
			r.pulse(haptic.Light, now)
		}
	} else {
		r.held = false
	}

	// Instantaneous velocity from the previous sample
	if prev, ok := r.samples.Newest(); ok {
		if dt := now.Sub(prev.At).Seconds(); dt > 0 {
			r.velocity = (r.travel - prev.Value) / dt
			if r.velocity != 0 {
				r.lastVelocitySign = vmath.SignF(r.velocity)
			}
		}
	}
	r.samples.Push(physics.Sample{At: now, Value: r.travel})

	r.flush()
	return nil
}

// EndDrag releases the gesture: coast when fast enough, otherwise snap to the nearest tick
func (r *Rotor) EndDrag() error {
	if err := r.enter(); err != nil {
		return err
	}
	if r.phase != PhaseDragging {
		return ErrNotDragging
	}
	now := r.clock.Now()

	v := r.samples.Velocity(now, r.cfg.ReleaseWindow)
	v = vmath.ClampF(v, -r.cfg.MaxVelocity, r.cfg.MaxVelocity)
	r.samples.Reset()
	r.held = false

	if math.Abs(v) > r.cfg.CoastStartVelocity {
		r.velocity = v
		r.lastVelocitySign = vmath.SignF(v)
		r.lastStep = now
		r.setPhase(PhaseCoasting, now)
	} else {
		r.velocity = 0
		r.settle(now)
	}

	r.flush()
	return nil
}
