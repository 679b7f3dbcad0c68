package parameter

import "time"

// Haptic pulse shaping
const (
	// HapticDebounce is the minimum spacing between physical pulses
	HapticDebounce = 60 * time.Millisecond

	// HapticSampleRate is the audio rate used to render pulses as clicks
	HapticSampleRate = 44100

	// Click frequencies (Hz) and lengths per strength
	HapticLightHz      = 1800
	HapticMediumHz     = 1100
	HapticHeavyHz      = 520
	HapticLightLength  = 8 * time.Millisecond
	HapticMediumLength = 14 * time.Millisecond
	HapticHeavyLength  = 28 * time.Millisecond
)
