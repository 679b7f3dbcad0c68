package engine

import (
	"math"
	"time"

	"github.com/lixenwraith/tzdial/dialtime"
	"github.com/lixenwraith/tzdial/haptic"
	"github.com/lixenwraith/tzdial/physics"
	"github.com/lixenwraith/tzdial/vmath"
)

// animation is a scripted ease-out toward an exact landing
type animation struct {
	start    time.Time
	duration time.Duration
	total    float64 // signed displacement from the start value
	applied  float64

	target      float64 // final rotation, normalised
	finalTick   int
	finalOffset float64
	endPulse    haptic.Strength
}

// Tick advances coasting or a scripted animation to the clock's current time
// Progress is computed from elapsed wall time, so irregular scheduling is tolerated
func (r *Rotor) Tick() error {
	if err := r.enter(); err != nil {
		return err
	}
	now := r.clock.Now()

	switch r.phase {
	case PhaseCoasting:
		r.stepCoast(now)
	case PhaseAnimating:
		r.stepAnimation(now)
	}

	r.flush()
	return nil
}

// Busy reports whether Tick has work to do
func (r *Rotor) Busy() bool {
	return r.phase == PhaseCoasting || r.phase == PhaseAnimating
}

func (r *Rotor) stepCoast(now time.Time) {
	elapsed := now.Sub(r.lastStep)
	if elapsed <= 0 {
		return
	}
	r.lastStep = now

	// A long stall runs many slices; their crossings collapse to one pulse and one preview
	r.beginBatch()
	stopped := false
	remaining := elapsed.Seconds()
	maxStep := r.cfg.MaxStep.Seconds()
	for remaining > 0 && !stopped {
		dt := math.Min(remaining, maxStep)
		remaining -= dt

		disp, v := physics.Coast(r.velocity, r.decay, dt)
		r.rotate(disp, now, true)
		r.velocity = v
		r.magnetize(r.cfg.CoastMagnetScale, dt)

		stopped = math.Abs(r.velocity) < r.cfg.CoastStopVelocity
	}
	r.endBatch(now)

	if stopped {
		r.velocity = 0
		r.settle(now)
	}
}

// settle is the snap step: exact when already on a tick, else a short eased snap
func (r *Rotor) settle(now time.Time) {
	if math.Abs(r.remainder) <= r.cfg.SettleEpsilon {
		r.land(r.tick, 0)
		r.arrive(now)
		return
	}

	end := haptic.Light
	if GranularityOf(r.tick) == GranularityHour {
		end = haptic.Medium
	}
	r.startAnimation(now, &animation{
		duration:    r.cfg.SnapDuration,
		total:       -r.remainder,
		target:      vmath.NormalizeAngle(dialtime.AngleFromTickIndex(r.tick)),
		finalTick:   r.tick,
		finalOffset: 0,
		endPulse:    end,
	}, haptic.Light)
}

func (r *Rotor) startAnimation(now time.Time, a *animation, startPulse haptic.Strength) {
	a.start = now
	r.anim = a
	r.raw = r.remainder
	r.velocity = 0
	r.setPhase(PhaseAnimating, now)
	r.pulse(startPulse, now)
}

func (r *Rotor) stepAnimation(now time.Time) {
	a := r.anim
	if a == nil {
		r.arrive(now)
		return
	}

	elapsed := now.Sub(a.start)
	if elapsed >= a.duration {
		prev := r.tick
		r.land(a.finalTick, a.finalOffset)
		if prev != r.tick && r.selection {
			r.pushPreview(now)
		}
		r.pulse(a.endPulse, now)
		r.arrive(now)
		return
	}

	progress := vmath.EaseOutCubic(float64(elapsed) / float64(a.duration))
	want := a.total * progress
	r.rotate(want-a.applied, now, false)
	a.applied = want
}
