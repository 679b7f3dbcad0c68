package parameter

import "time"

// Loop & Engine Timing
const (
	// PhysicsTickInterval drives coasting and scripted animations (~60 Hz)
	PhysicsTickInterval = time.Second / 60

	// WallTickInterval refreshes the wall-clock snapshot used for arrows and label layout
	WallTickInterval = time.Second

	// CommandQueueSize is the buffered capacity of the host -> loop command channel
	CommandQueueSize = 256
)

// Event Limits
const (
	// EventQueueSize is the fixed capacity of the per-call event ring buffer
	EventQueueSize = 64

	// EventBufferMask is the bitmask for fast modulo operations (64 - 1)
	EventBufferMask = 63
)
