// Package orbit places short city labels on two concentric rings so that no
// two labels on the same ring overlap, including across the 0°/360° cut.
//
// Placement is greedy and single pass: labels earlier in the input win, and
// the preferred ring alternates after every successful placement.
package orbit

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Ring identifies one of the two concentric label tracks
type Ring int

const (
	RingNone  Ring = 0
	RingInner Ring = 1
	RingOuter Ring = 2
)

func (r Ring) other() Ring {
	if r == RingInner {
		return RingOuter
	}
	return RingInner
}

func (r Ring) String() string {
	switch r {
	case RingInner:
		return "inner"
	case RingOuter:
		return "outer"
	}
	return "none"
}

// ErrInvalidGeometry is returned for non-positive radii or spacing
var ErrInvalidGeometry = errors.New("orbit: invalid ring geometry")

// Geometry holds the linear layout of both rings; angular sizes derive from it per ring
type Geometry struct {
	InnerRadius   float64 `yaml:"inner_radius"`
	OuterRadius   float64 `yaml:"outer_radius"`
	LetterSpacing float64 `yaml:"letter_spacing"` // distance between adjacent letter centres
	Gap           float64 `yaml:"gap"`            // minimum clearance on each side of a label
}

// Validate checks the geometry is usable
func (g Geometry) Validate() error {
	if g.InnerRadius <= 0 || g.OuterRadius <= 0 {
		return fmt.Errorf("%w: radii must be positive (inner=%v outer=%v)", ErrInvalidGeometry, g.InnerRadius, g.OuterRadius)
	}
	if g.LetterSpacing < 0 || g.Gap < 0 {
		return fmt.Errorf("%w: spacing and gap must not be negative", ErrInvalidGeometry)
	}
	return nil
}

func (g Geometry) radius(r Ring) float64 {
	if r == RingOuter {
		return g.OuterRadius
	}
	return g.InnerRadius
}

// Interval returns the angular span a label occupies on the given ring, gap included
func (g Geometry) Interval(l Label, r Ring) Interval {
	radius := g.radius(r)
	letters := l.letters()
	perLetter := g.LetterSpacing / radius
	halfWidth := float64(letters-1) * perLetter / 2
	gap := g.Gap / radius
	return Interval{
		Start: l.Center - halfWidth - gap,
		End:   l.Center + halfWidth + gap,
	}
}

// Label is one entity to place: an identifier, its angular centre and its code length
type Label struct {
	ID      string
	Center  float64 // radians
	Letters int     // letter count of the short code; values < 1 count as 1
}

// NewLabel builds a Label from a short code such as "TYO"
func NewLabel(id, code string, center float64) Label {
	return Label{ID: id, Center: center, Letters: utf8.RuneCountInString(code)}
}

func (l Label) letters() int {
	if l.Letters < 1 {
		return 1
	}
	return l.Letters
}

// Placement records where a label ended up
type Placement struct {
	ID       string
	Ring     Ring
	Interval Interval
}

// Conflict records a label that fit on neither ring
type Conflict struct {
	ID   string
	Note string
}

// Result is a full, freshly computed assignment
type Result struct {
	Placements []Placement
	Conflicts  []Conflict
	rings      map[string]Ring
}

// Ring returns the ring assigned to id, RingNone when unplaced or unknown
func (r Result) Ring(id string) Ring {
	return r.rings[id]
}

// Placed reports whether id received a ring
func (r Result) Placed(id string) bool {
	return r.rings[id] != RingNone
}

// Conflicted reports whether id was flagged as unplaceable
func (r Result) Conflicted(id string) bool {
	for _, c := range r.Conflicts {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Assignment returns a copy of the id -> ring mapping for placed labels
func (r Result) Assignment() map[string]Ring {
	out := make(map[string]Ring, len(r.rings))
	for id, ring := range r.rings {
		if ring != RingNone {
			out[id] = ring
		}
	}
	return out
}

// Placer assigns labels to rings; it holds no state between calls
type Placer struct {
	geometry Geometry
}

// NewPlacer validates geometry and returns a placer
func NewPlacer(g Geometry) (*Placer, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &Placer{geometry: g}, nil
}

// Geometry returns the placer's ring geometry
func (p *Placer) Geometry() Geometry {
	return p.geometry
}

// Place computes a complete assignment for labels in priority order
func (p *Placer) Place(labels []Label) Result {
	res := Result{rings: make(map[string]Ring, len(labels))}
	if len(labels) == 0 {
		return res
	}

	occupied := map[Ring][]Placement{
		RingInner: make([]Placement, 0, len(labels)),
		RingOuter: make([]Placement, 0, len(labels)),
	}
	preferred := RingInner

	for _, l := range labels {
		var blockers [2]string
		placed := false

		for i, ring := range [2]Ring{preferred, preferred.other()} {
			candidate := p.geometry.Interval(l, ring)
			blocker := firstOverlap(occupied[ring], candidate)
			if blocker == "" {
				pl := Placement{ID: l.ID, Ring: ring, Interval: candidate}
				occupied[ring] = append(occupied[ring], pl)
				res.Placements = append(res.Placements, pl)
				res.rings[l.ID] = ring
				preferred = preferred.other()
				placed = true
				break
			}
			blockers[i] = fmt.Sprintf("%s on %s ring", blocker, ring)
		}

		if !placed {
			res.rings[l.ID] = RingNone
			res.Conflicts = append(res.Conflicts, Conflict{
				ID:   l.ID,
				Note: fmt.Sprintf("%s overlaps %s", l.ID, strings.Join(blockers[:], " and ")),
			})
		}
	}

	return res
}

func firstOverlap(placed []Placement, candidate Interval) string {
	for _, pl := range placed {
		if Overlaps(pl.Interval, candidate) {
			return pl.ID
		}
	}
	return ""
}
