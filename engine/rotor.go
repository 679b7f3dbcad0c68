package engine

import (
	"math"
	"time"

	"github.com/lixenwraith/tzdial/dialtime"
	"github.com/lixenwraith/tzdial/event"
	"github.com/lixenwraith/tzdial/haptic"
	"github.com/lixenwraith/tzdial/physics"
	"github.com/lixenwraith/tzdial/timezone"
	"github.com/lixenwraith/tzdial/vmath"
)

// PreviewSink receives candidate times while selection mode is on
type PreviewSink interface {
	Preview(dialtime.TimeOfDay)
}

// PreviewFunc adapts a function to PreviewSink
type PreviewFunc func(dialtime.TimeOfDay)

// Preview implements PreviewSink
func (f PreviewFunc) Preview(t dialtime.TimeOfDay) { f(t) }

// Options wires a Rotor's collaborators; nil fields get defaults
type Options struct {
	Config   *Config
	Clock    TimeProvider
	Zones    timezone.Resolver // default timezone.NewIANA()
	Home     string            // zone ResetToNow reads, default "Local"
	Haptics  haptic.Sink
	Preview  PreviewSink
	Observer func(event.DialEvent)
}

// Rotor is the rotation physics engine
//
// The authoritative value is a tick index (0..95). While a gesture, coast or
// animation is running, raw holds the sub-tick offset from that tick and
// remainder holds the displayed offset after magnetic pull. Every settle
// lands on an exact target and drops the fractional part, so nothing drifts
// across gestures.
//
// Not safe for concurrent use: one goroutine owns a Rotor (see Loop)
type Rotor struct {
	cfg      Config
	detents  [3]physics.Detent
	decay    float64
	clock    TimeProvider
	zones    timezone.Resolver
	home     string
	haptics  haptic.Sink
	preview  PreviewSink
	observer func(event.DialEvent)

	tick      int
	raw       float64
	remainder float64
	phase     Phase

	// Gesture
	lastPointer float64
	travel      float64
	samples     physics.SampleBuffer
	held        bool

	// Motion history for reset direction
	velocity         float64
	lastVelocitySign float64
	lastDragSign     float64
	lastStep         time.Time

	anim *animation

	// Tick changes inside one Tick call are reported once
	batching bool
	batch    crossings

	selection bool

	queue       *event.EventQueue
	emitted     []event.DialEvent
	dispatching bool
}

// NewRotor creates an idle engine at tick 0
// A supplied Config must pass Validate
func NewRotor(opts Options) (*Rotor, error) {
	cfg := DefaultConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Rotor{
		cfg:      cfg,
		decay:    physics.DecayRate(cfg.DampingPerFrame, cfg.DampingHz),
		clock:    opts.Clock,
		zones:    opts.Zones,
		home:     opts.Home,
		haptics:  opts.Haptics,
		preview:  opts.Preview,
		observer: opts.Observer,
		queue:    event.NewEventQueue(),
	}
	r.detents[GranularityQuarter] = cfg.MagnetQuarter.detent()
	r.detents[GranularityHalf] = cfg.MagnetHalf.detent()
	r.detents[GranularityHour] = cfg.MagnetHour.detent()

	if r.clock == nil {
		r.clock = NewMonotonicTimeProvider()
	}
	if r.zones == nil {
		r.zones = timezone.NewIANA()
	}
	if r.home == "" {
		r.home = "Local"
	}
	if r.haptics == nil {
		r.haptics = haptic.Nop{}
	}
	return r, nil
}

// === Accessors ===

// TickIndex returns the authoritative tick, 0..95
func (r *Rotor) TickIndex() int { return r.tick }

// RotationAngle returns the displayed rotation in [-π, π)
func (r *Rotor) RotationAngle() float64 {
	return vmath.NormalizeAngle(dialtime.AngleFromTickIndex(r.tick) + r.remainder)
}

// Phase returns the current state
func (r *Rotor) Phase() Phase { return r.phase }

// Velocity returns the current angular velocity in rad/s (zero unless dragging or coasting)
func (r *Rotor) Velocity() float64 { return r.velocity }

// SelectedTick is the tick under the fixed reference marker; the frame rotates, not the hand
func (r *Rotor) SelectedTick() int { return dialtime.WrapTick(-r.tick) }

// SelectedTime is the wall time under the reference marker, from exact tick arithmetic
func (r *Rotor) SelectedTime() dialtime.TimeOfDay {
	return dialtime.TimeFromTickIndex(r.SelectedTick())
}

// SelectionMode reports whether tick changes push previews
func (r *Rotor) SelectionMode() bool { return r.selection }

// AnimationTarget returns the final rotation of the running scripted animation
func (r *Rotor) AnimationTarget() (float64, bool) {
	if r.anim == nil {
		return 0, false
	}
	return r.anim.target, true
}

// Events returns the events produced by the most recent mutating call
func (r *Rotor) Events() []event.DialEvent { return r.emitted }

// Snapshot captures read-only state for a render consumer
func (r *Rotor) Snapshot() Snapshot {
	s := Snapshot{
		At:            r.clock.Now(),
		Phase:         r.phase,
		Tick:          r.tick,
		Angle:         r.RotationAngle(),
		Velocity:      r.velocity,
		SelectedTick:  r.SelectedTick(),
		Selected:      r.SelectedTime(),
		SelectionMode: r.selection,
	}
	s.AnimationTarget, s.Animating = r.AnimationTarget()
	return s
}

// SetSelectionMode toggles preview pushes; enabling pushes the current selection once
func (r *Rotor) SetSelectionMode(on bool) error {
	if err := r.enter(); err != nil {
		return err
	}
	if on && !r.selection {
		r.selection = true
		r.pushPreview(r.clock.Now())
	}
	r.selection = on
	r.flush()
	return nil
}

// === Core mutation ===

// enter guards every mutating entry point against reentrant calls from sinks
func (r *Rotor) enter() error {
	if r.dispatching {
		return ErrReentrant
	}
	return nil
}

// rotate moves the raw position by delta, folding whole ticks into the authoritative tick
// feedback controls tick-crossing pulses; previews are pushed regardless
func (r *Rotor) rotate(delta float64, now time.Time, feedback bool) {
	r.raw += delta
	steps := math.Round(r.raw / dialtime.TickWidth)
	if steps != 0 {
		r.raw -= steps * dialtime.TickWidth
		prev := r.tick
		r.tick = dialtime.WrapTick(r.tick + int(steps))
		r.onTickChanged(prev, int(steps), now, feedback)
	}
	r.remainder = r.raw
}

func (r *Rotor) onTickChanged(prev, steps int, now time.Time, feedback bool) {
	if r.batching {
		r.batch.add(crossingStrength(prev, steps), feedback, r.selection)
		return
	}
	if feedback {
		r.pulse(crossingStrength(prev, steps), now)
	}
	if r.selection {
		r.pushPreview(now)
	}
}

// crossingStrength is Medium when the move passed an hour tick, else Light
func crossingStrength(prev, steps int) haptic.Strength {
	dir := 1
	if steps < 0 {
		dir = -1
		steps = -steps
	}
	for i := 1; i <= steps; i++ {
		if GranularityOf(dialtime.WrapTick(prev+dir*i)) == GranularityHour {
			return haptic.Medium
		}
	}
	return haptic.Light
}

// crossings accumulates tick changes across physics slices
type crossings struct {
	pulse    bool
	strength haptic.Strength
	preview  bool
}

func (c *crossings) add(s haptic.Strength, pulse, preview bool) {
	if pulse && (!c.pulse || s > c.strength) {
		c.strength = s
	}
	c.pulse = c.pulse || pulse
	c.preview = c.preview || preview
}

// beginBatch collects tick changes until endBatch emits at most one pulse and one preview
func (r *Rotor) beginBatch() {
	r.batching = true
	r.batch = crossings{}
}

func (r *Rotor) endBatch(now time.Time) {
	r.batching = false
	if r.batch.pulse {
		r.pulse(r.batch.strength, now)
	}
	if r.batch.preview {
		r.pushPreview(now)
	}
	r.batch = crossings{}
}

// magnetize derives the displayed remainder from raw with the detent of the current tick
// Returns true when the hard snap engaged
func (r *Rotor) magnetize(scale float64, dt float64) bool {
	d := r.detents[GranularityOf(r.tick)]
	if scale != 1 {
		d = d.Scaled(scale)
	}
	fraction, hard := d.Pull(r.raw)
	if hard {
		r.remainder = 0
		return true
	}
	if dt > 0 {
		fraction = physics.FrameFraction(fraction, dt, r.cfg.DampingHz)
	}
	r.remainder = physics.Attract(r.raw, fraction)
	return false
}

// land sets an exact final value and drops any fractional motion state
func (r *Rotor) land(tick int, offset float64) {
	r.tick = dialtime.WrapTick(tick)
	r.raw = offset
	r.remainder = offset
	r.velocity = 0
}

func (r *Rotor) setPhase(p Phase, now time.Time) {
	if p == r.phase {
		return
	}
	from := r.phase
	r.phase = p
	r.push(event.EventPhaseChange, now, &event.PhasePayload{From: from.String(), To: p.String()})
}

// arrive reports a completed settle: Snapped, then Idle
func (r *Rotor) arrive(now time.Time) {
	r.anim = nil
	r.velocity = 0
	r.setPhase(PhaseSnapped, now)
	r.push(event.EventSettled, now, &event.SettledPayload{Tick: r.tick, Angle: r.RotationAngle()})
	r.setPhase(PhaseIdle, now)
}

// === Event output ===

func (r *Rotor) push(t event.EventType, now time.Time, payload any) {
	r.queue.Push(event.DialEvent{Type: t, At: now, Payload: payload})
}

func (r *Rotor) pulse(s haptic.Strength, now time.Time) {
	r.push(event.EventHaptic, now, &event.HapticPayload{Strength: s})
}

func (r *Rotor) pushPreview(now time.Time) {
	r.push(event.EventPreview, now, &event.PreviewPayload{Tick: r.SelectedTick(), Time: r.SelectedTime()})
}

// flush hands this call's events to the sinks after all state mutation is done
func (r *Rotor) flush() {
	evs := r.queue.Consume()
	r.emitted = evs
	if len(evs) == 0 {
		return
	}

	r.dispatching = true
	defer func() { r.dispatching = false }()

	for _, ev := range evs {
		switch p := ev.Payload.(type) {
		case *event.HapticPayload:
			r.haptics.Emit(p.Strength)
		case *event.PreviewPayload:
			if r.preview != nil {
				r.preview.Preview(p.Time)
			}
		}
		if r.observer != nil {
			r.observer(ev)
		}
	}
}
