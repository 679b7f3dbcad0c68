// Package haptic defines the pulse contract the dial core emits through and a
// few sinks that consume it. The core never touches hardware: it only calls
// Sink.Emit with an abstract strength.
package haptic

import "time"

// Strength is the intensity of one pulse
type Strength int

const (
	Light Strength = iota
	Medium
	Heavy
	strengthCount
)

func (s Strength) String() string {
	switch s {
	case Light:
		return "light"
	case Medium:
		return "medium"
	case Heavy:
		return "heavy"
	}
	return "unknown"
}

// Strengths lists every defined strength in ascending order
func Strengths() []Strength {
	out := make([]Strength, 0, strengthCount)
	for s := Light; s < strengthCount; s++ {
		out = append(out, s)
	}
	return out
}

// Sink receives pulses, fire-and-forget
// Implementations must not call back into the engine that emitted the pulse
type Sink interface {
	Emit(Strength)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(Strength)

// Emit implements Sink
func (f SinkFunc) Emit(s Strength) { f(s) }

// Nop discards every pulse
type Nop struct{}

// Emit implements Sink
func (Nop) Emit(Strength) {}

// Clock is the time source used for debouncing
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }
