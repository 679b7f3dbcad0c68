package event

import (
	"time"

	"github.com/lixenwraith/tzdial/dialtime"
	"github.com/lixenwraith/tzdial/haptic"
)

// DialEvent is one output of an engine call
type DialEvent struct {
	Type    EventType
	At      time.Time
	Payload any
}

// HapticPayload carries pulse strength
type HapticPayload struct {
	Strength haptic.Strength
}

// PreviewPayload carries the selected candidate time
type PreviewPayload struct {
	Tick int
	Time dialtime.TimeOfDay
}

// PhasePayload carries a transition, phases by name
type PhasePayload struct {
	From string
	To   string
}

// SettledPayload carries the resting value
type SettledPayload struct {
	Tick  int
	Angle float64
}

// ResetKind names a scripted reset
type ResetKind string

const (
	ResetZero ResetKind = "zero"
	ResetNow  ResetKind = "now"
)

// ResetPayload carries the animation target
type ResetPayload struct {
	Kind      ResetKind
	Target    float64
	Direction float64
}

// SampleRejectedPayload carries the rejected pointer value
type SampleRejectedPayload struct {
	Value float64
}
