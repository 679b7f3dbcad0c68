package haptic

import (
	"sync"
	"time"

	"github.com/lixenwraith/tzdial/parameter"
)

// Coordinator rate-limits pulses before they reach a physical sink
// Pulses inside the debounce window are dropped unless stronger than the last delivered one
type Coordinator struct {
	mu       sync.Mutex
	sink     Sink
	clock    Clock
	debounce time.Duration

	last         time.Time
	lastStrength Strength
	delivered    int
	dropped      int
}

// NewCoordinator wraps sink; a nil clock uses wall time, a zero debounce uses the default
func NewCoordinator(sink Sink, clock Clock, debounce time.Duration) *Coordinator {
	if sink == nil {
		sink = Nop{}
	}
	if clock == nil {
		clock = wallClock{}
	}
	if debounce <= 0 {
		debounce = parameter.HapticDebounce
	}
	return &Coordinator{sink: sink, clock: clock, debounce: debounce}
}

// Emit implements Sink
func (c *Coordinator) Emit(s Strength) {
	c.mu.Lock()
	now := c.clock.Now()
	if !c.last.IsZero() && now.Sub(c.last) < c.debounce && s <= c.lastStrength {
		c.dropped++
		c.mu.Unlock()
		return
	}
	c.last = now
	c.lastStrength = s
	c.delivered++
	sink := c.sink
	c.mu.Unlock()

	sink.Emit(s)
}

// Stats returns delivered and dropped pulse counts
func (c *Coordinator) Stats() (delivered, dropped int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delivered, c.dropped
}
