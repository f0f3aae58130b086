package event

import "github.com/siana-blue/poufalouf/parameter"

// EventQueue is a fixed ring buffer of world events
// Single producer and single consumer, both the simulation goroutine
// Overflow: oldest events overwritten when full
type EventQueue struct {
	events  []GameEvent
	head    uint64 // Read index
	tail    uint64 // Write index
	dropped uint64
}

// NewEventQueue returns a queue holding up to size events, parameter.EventQueueSize when size <= 0
func NewEventQueue(size int) *EventQueue {
	if size <= 0 {
		size = parameter.EventQueueSize
	}
	return &EventQueue{events: make([]GameEvent, size)}
}

// Push appends an event, overwriting the oldest unread one when full
func (eq *EventQueue) Push(ev GameEvent) {
	size := uint64(len(eq.events))
	eq.events[eq.tail%size] = ev
	eq.tail++
	if eq.tail-eq.head > size {
		eq.head = eq.tail - size
		eq.dropped++
	}
}

// Consume returns all pending events in FIFO order and empties the queue
func (eq *EventQueue) Consume() []GameEvent {
	if eq.tail == eq.head {
		return nil
	}
	size := uint64(len(eq.events))
	result := make([]GameEvent, 0, eq.tail-eq.head)
	for i := eq.head; i < eq.tail; i++ {
		result = append(result, eq.events[i%size])
	}
	eq.head = eq.tail
	return result
}

// Len returns the pending event count
func (eq *EventQueue) Len() int {
	return int(eq.tail - eq.head)
}

// Dropped returns how many events were overwritten unread
func (eq *EventQueue) Dropped() uint64 {
	return eq.dropped
}
