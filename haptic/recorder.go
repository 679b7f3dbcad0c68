package haptic

import "sync"

// Recorder keeps every pulse it receives, safe for concurrent use
type Recorder struct {
	mu     sync.Mutex
	pulses []Strength
}

// Emit implements Sink
func (r *Recorder) Emit(s Strength) {
	r.mu.Lock()
	r.pulses = append(r.pulses, s)
	r.mu.Unlock()
}

// Pulses returns a copy of recorded pulses in arrival order
func (r *Recorder) Pulses() []Strength {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Strength, len(r.pulses))
	copy(out, r.pulses)
	return out
}

// Count returns how many pulses of strength s were recorded
func (r *Recorder) Count(s Strength) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.pulses {
		if p == s {
			n++
		}
	}
	return n
}

// Reset clears recorded pulses
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.pulses = r.pulses[:0]
	r.mu.Unlock()
}
