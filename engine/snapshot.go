package engine

import (
	"time"

	"github.com/lixenwraith/tzdial/dialtime"
)

// Snapshot is an immutable copy of engine state for render consumers
type Snapshot struct {
	At              time.Time
	Phase           Phase
	Tick            int
	Angle           float64
	Velocity        float64
	SelectedTick    int
	Selected        dialtime.TimeOfDay
	SelectionMode   bool
	Animating       bool
	AnimationTarget float64
}
