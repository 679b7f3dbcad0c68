package event

import (
	"github.com/lixenwraith/tzdial/parameter"
)

// EventQueue is a fixed ring buffer of dial events
// Single-threaded: owned by one engine and drained after every call
//
// Overflow: Oldest events overwritten when full
type EventQueue struct {
	events [parameter.EventQueueSize]DialEvent
	head   uint64 // Read index
	tail   uint64 // Write index
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push adds an event, dropping the oldest unread one when full
func (eq *EventQueue) Push(ev DialEvent) {
	eq.events[eq.tail&parameter.EventBufferMask] = ev
	eq.tail++
	if eq.tail-eq.head > parameter.EventQueueSize {
		eq.head = eq.tail - parameter.EventQueueSize
	}
}

// Consume returns all pending events in FIFO order and empties the queue
func (eq *EventQueue) Consume() []DialEvent {
	n := eq.tail - eq.head
	if n == 0 {
		return nil
	}
	result := make([]DialEvent, 0, n)
	for i := eq.head; i < eq.tail; i++ {
		result = append(result, eq.events[i&parameter.EventBufferMask])
	}
	eq.head = eq.tail
	return result
}

// Len returns pending event count
func (eq *EventQueue) Len() int {
	return int(eq.tail - eq.head)
}
