package event

// EventType represents the type of dial event
type EventType int

const (
	// === Feedback Event ===

	// EventHaptic requests one physical pulse
	// Trigger: tick crossing, hard snap, animation start/end
	// Consumer: haptic.Sink | Payload: *HapticPayload
	EventHaptic EventType = iota

	// EventPreview carries a new candidate time while selection mode is on
	// Trigger: authoritative tick index changed | Consumer: PreviewSink | Payload: *PreviewPayload
	EventPreview

	// === State Event ===

	// EventPhaseChange reports a state machine transition
	// Trigger: any transition | Consumer: observers, metrics | Payload: *PhasePayload
	EventPhaseChange

	// EventGestureStart marks the beginning of a drag
	// Trigger: StartDrag | Consumer: metrics | Payload: nil
	EventGestureStart

	// EventSettled reports the dial came to rest on a value
	// Trigger: snap step or scripted animation end | Consumer: host, metrics | Payload: *SettledPayload
	EventSettled

	// EventReset reports a scripted reset was started
	// Trigger: ResetToZero, ResetToNow | Consumer: metrics | Payload: *ResetPayload
	EventReset

	// EventSampleRejected reports a malformed pointer sample was ignored
	// Trigger: NaN/Inf drag angle | Consumer: metrics, logs | Payload: *SampleRejectedPayload
	EventSampleRejected
)

var eventTypeNames = map[EventType]string{
	EventHaptic:         "haptic",
	EventPreview:        "preview",
	EventPhaseChange:    "phase_change",
	EventGestureStart:   "gesture_start",
	EventSettled:        "settled",
	EventReset:          "reset",
	EventSampleRejected: "sample_rejected",
}

func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return "unknown"
}
