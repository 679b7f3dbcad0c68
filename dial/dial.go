// Package dial combines the codec, the label placer and the rotation engine into
// what a renderer draws: per-city arrow angles, ring assignments and the
// selected time projected into every zone
package dial

import (
	"sync"
	"time"

	"github.com/lixenwraith/tzdial/dialtime"
	"github.com/lixenwraith/tzdial/engine"
	"github.com/lixenwraith/tzdial/orbit"
	"github.com/lixenwraith/tzdial/timezone"
)

// LayoutObserver receives placement statistics after each layout
type LayoutObserver interface {
	ObserveLayout(conflicts int, took time.Duration)
}

// Arrow is one city's hand on the unrotated face
type Arrow struct {
	City     City
	Resolved bool // false when the zone is unknown; Angle and Local are then meaningless
	Offset   int  // seconds east of UTC
	Local    dialtime.TimeOfDay
	Angle    float64 // face angle of the city's current local time
}

// Layout is one complete face: arrows plus label ring assignment
type Layout struct {
	At        time.Time
	Arrows    []Arrow
	Placement orbit.Result
}

// Arrow returns the arrow for id
func (l Layout) Arrow(id string) (Arrow, bool) {
	for _, a := range l.Arrows {
		if a.City.ID == id {
			return a, true
		}
	}
	return Arrow{}, false
}

// Selection is the engine's selected time seen from one city
type Selection struct {
	City  City
	Local dialtime.TimeOfDay
}

// Dial holds the city set and the latest layout
// Refresh and Current may be called from different goroutines
type Dial struct {
	cities   []City
	home     string
	resolver timezone.Resolver
	placer   *orbit.Placer
	observer LayoutObserver

	mu      sync.RWMutex
	current Layout
}

// Options configures a Dial; Home is the zone the engine's selected time is read in
type Options struct {
	Home     string
	Observer LayoutObserver
}

// New validates geometry and creates a dial
func New(cities []City, resolver timezone.Resolver, geometry orbit.Geometry, opts Options) (*Dial, error) {
	placer, err := orbit.NewPlacer(geometry)
	if err != nil {
		return nil, err
	}
	return &Dial{
		cities:   append([]City(nil), cities...),
		home:     opts.Home,
		resolver: resolver,
		placer:   placer,
		observer: opts.Observer,
	}, nil
}

// Cities returns the configured cities in priority order
func (d *Dial) Cities() []City {
	return append([]City(nil), d.cities...)
}

// Arrows computes every city's arrow at now
func (d *Dial) Arrows(now time.Time) []Arrow {
	arrows := make([]Arrow, len(d.cities))
	for i, c := range d.cities {
		arrows[i] = Arrow{City: c}
		offset, ok := d.resolver.Resolve(c.Zone, now)
		if !ok {
			continue
		}
		local := dialtime.LocalTime(now, offset)
		arrows[i].Resolved = true
		arrows[i].Offset = offset
		arrows[i].Local = local
		arrows[i].Angle = dialtime.AngleFromTime(local.Hour, local.Minute)
	}
	return arrows
}

// Layout computes arrows and places their labels; unresolved cities get no label
func (d *Dial) Layout(now time.Time) Layout {
	arrows := d.Arrows(now)

	labels := make([]orbit.Label, 0, len(arrows))
	for _, a := range arrows {
		if a.Resolved {
			labels = append(labels, orbit.NewLabel(a.City.ID, a.City.Code, a.Angle))
		}
	}

	start := time.Now()
	placement := d.placer.Place(labels)
	if d.observer != nil {
		d.observer.ObserveLayout(len(placement.Conflicts), time.Since(start))
	}

	return Layout{At: now, Arrows: arrows, Placement: placement}
}

// Refresh recomputes and stores the layout
func (d *Dial) Refresh(now time.Time) Layout {
	l := d.Layout(now)
	d.mu.Lock()
	d.current = l
	d.mu.Unlock()
	return l
}

// Current returns the most recently refreshed layout
func (d *Dial) Current() Layout {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.current
}

// Selected projects the engine's selected time, read in the home zone, into every resolved city
func (d *Dial) Selected(s engine.Snapshot) []Selection {
	homeOffset, ok := d.resolver.Resolve(d.home, s.At)
	if !ok {
		homeOffset = 0
	}

	out := make([]Selection, 0, len(d.cities))
	for _, c := range d.cities {
		offset, ok := d.resolver.Resolve(c.Zone, s.At)
		if !ok {
			continue
		}
		shift := (offset - homeOffset) / 60
		out = append(out, Selection{
			City:  c,
			Local: dialtime.FromMinutes(s.Selected.Minutes() + shift),
		})
	}
	return out
}

// ScreenAngle is where a face angle appears once the frame is rotated
func ScreenAngle(faceAngle, rotation float64) float64 {
	return dialtime.NormalizeAngle(faceAngle + rotation)
}
