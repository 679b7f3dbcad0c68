package engine

// Phase is the rotation state machine's current state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseCoasting
	PhaseAnimating
	// PhaseSnapped is reported on arrival and immediately followed by PhaseIdle
	PhaseSnapped
)

var phaseNames = [...]string{
	PhaseIdle:      "idle",
	PhaseDragging:  "dragging",
	PhaseCoasting:  "coasting",
	PhaseAnimating: "animating",
	PhaseSnapped:   "snapped",
}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Granularity classifies a tick by the wall-clock boundary it sits on
type Granularity int

const (
	GranularityQuarter Granularity = iota
	GranularityHalf
	GranularityHour
)

// GranularityOf returns the boundary class of an authoritative tick
// Tick 0 is 18:00 so hour boundaries fall on multiples of 4
func GranularityOf(tick int) Granularity {
	switch {
	case tick%4 == 0:
		return GranularityHour
	case tick%2 == 0:
		return GranularityHalf
	}
	return GranularityQuarter
}
