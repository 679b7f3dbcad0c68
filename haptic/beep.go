package haptic

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/tzdial/parameter"
)

const sampleRate = beep.SampleRate(parameter.HapticSampleRate)

// click shape per strength
type clickShape struct {
	freq   float64
	length time.Duration
	volume float64 // beep volume exponent, base 2
}

var clickShapes = [strengthCount]clickShape{
	Light:  {freq: parameter.HapticLightHz, length: parameter.HapticLightLength, volume: -2.5},
	Medium: {freq: parameter.HapticMediumHz, length: parameter.HapticMediumLength, volume: -1.5},
	Heavy:  {freq: parameter.HapticHeavyHz, length: parameter.HapticHeavyLength, volume: -0.5},
}

// BeepSink renders pulses as short clicks on the audio device
// Without an audio device every call is a silent no-op
type BeepSink struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewBeepSink creates an uninitialized sink
func NewBeepSink() *BeepSink {
	return &BeepSink{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker; safe to call twice
func (b *BeepSink) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*30)); err != nil {
		return err
	}

	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// SetMuted silences pulses without releasing the device
func (b *BeepSink) SetMuted(muted bool) {
	b.mu.Lock()
	b.muted = muted
	b.mu.Unlock()
}

// Emit implements Sink
func (b *BeepSink) Emit(s Strength) {
	if s < Light || s >= strengthCount {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized || b.muted {
		return
	}

	shape := clickShapes[s]
	tone, err := generators.SineTone(sampleRate, shape.freq)
	if err != nil {
		return
	}
	click := &effects.Volume{
		Streamer: beep.Take(sampleRate.N(shape.length), tone),
		Base:     2,
		Volume:   shape.volume,
	}

	speaker.Lock()
	b.mixer.Add(click)
	speaker.Unlock()
}

// Cleanup drops pending clicks and marks the sink uninitialized
func (b *BeepSink) Cleanup() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}

	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	b.initialized = false
}
