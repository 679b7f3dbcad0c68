// Package timezone resolves IANA zone identifiers to UTC offsets for the dial
package timezone

import (
	"fmt"
	"sync"
	"time"

	// Embedded tz database so resolution works on hosts without zoneinfo
	_ "time/tzdata"
)

// Resolver maps a zone identifier to its UTC offset at an instant
// ok is false for unknown zones; callers show no arrow for them
type Resolver interface {
	Resolve(id string, at time.Time) (offsetSeconds int, ok bool)
}

// IANA resolves against the tz database, caching loaded locations
// Safe for concurrent use
type IANA struct {
	mu    sync.RWMutex
	cache map[string]*time.Location // nil value caches a failed lookup
}

// NewIANA creates an empty resolver cache
func NewIANA() *IANA {
	return &IANA{cache: make(map[string]*time.Location)}
}

// Resolve returns the zone's offset at the given instant, daylight saving included
func (z *IANA) Resolve(id string, at time.Time) (int, bool) {
	loc, ok := z.Location(id)
	if !ok {
		return 0, false
	}
	_, offset := at.In(loc).Zone()
	return offset, true
}

// Location loads and caches the zone
func (z *IANA) Location(id string) (*time.Location, bool) {
	if id == "" {
		return nil, false
	}

	z.mu.RLock()
	loc, cached := z.cache[id]
	z.mu.RUnlock()
	if cached {
		return loc, loc != nil
	}

	loc, err := time.LoadLocation(id)
	if err != nil {
		loc = nil
	}

	z.mu.Lock()
	z.cache[id] = loc
	z.mu.Unlock()
	return loc, loc != nil
}

// Static is a fixed table of offsets in seconds, used by tests and replays
type Static map[string]int

// Resolve implements Resolver; the instant is ignored
func (s Static) Resolve(id string, _ time.Time) (int, bool) {
	off, ok := s[id]
	return off, ok
}

// FormatOffset renders an offset as "+05:30" / "-03:00"
func FormatOffset(offsetSeconds int) string {
	sign := '+'
	if offsetSeconds < 0 {
		sign = '-'
		offsetSeconds = -offsetSeconds
	}
	minutes := offsetSeconds / 60
	return fmt.Sprintf("%c%02d:%02d", sign, minutes/60, minutes%60)
}
