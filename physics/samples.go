package physics

import (
	"time"

	"github.com/lixenwraith/tzdial/parameter"
)

// Sample is one pointer reading: when it was taken and the unwrapped rotation at that moment
type Sample struct {
	At    time.Time
	Value float64
}

// SampleBuffer is a fixed ring of the most recent drag samples
// Zero value is ready to use
type SampleBuffer struct {
	buf   [parameter.DragSampleCapacity]Sample
	head  int // next write slot
	count int
}

// Reset drops all samples
func (b *SampleBuffer) Reset() {
	b.head = 0
	b.count = 0
}

// Push appends a sample, overwriting the oldest when full
func (b *SampleBuffer) Push(s Sample) {
	b.buf[b.head] = s
	b.head = (b.head + 1) % len(b.buf)
	if b.count < len(b.buf) {
		b.count++
	}
}

// Len returns the number of retained samples
func (b *SampleBuffer) Len() int {
	return b.count
}

// Oldest returns the earliest retained sample
func (b *SampleBuffer) Oldest() (Sample, bool) {
	if b.count == 0 {
		return Sample{}, false
	}
	idx := (b.head - b.count + len(b.buf)) % len(b.buf)
	return b.buf[idx], true
}

// Newest returns the most recent sample
func (b *SampleBuffer) Newest() (Sample, bool) {
	if b.count == 0 {
		return Sample{}, false
	}
	idx := (b.head - 1 + len(b.buf)) % len(b.buf)
	return b.buf[idx], true
}

// Velocity estimates rad/s from the oldest and newest retained samples
// Returns 0 with fewer than two samples, a non-positive time span, or when the newest
// sample is older than window at now (pointer held still before release)
func (b *SampleBuffer) Velocity(now time.Time, window time.Duration) float64 {
	if b.count < 2 {
		return 0
	}
	oldest, _ := b.Oldest()
	newest, _ := b.Newest()

	if window > 0 && now.Sub(newest.At) > window {
		return 0
	}
	dt := newest.At.Sub(oldest.At).Seconds()
	if dt <= 0 {
		return 0
	}
	return (newest.Value - oldest.Value) / dt
}
