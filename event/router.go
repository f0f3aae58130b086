package event

// Handler observes world events after each tick
// ctx is the simulated world; handlers must not keep it beyond the call
type Handler[T any] interface {
	HandleEvent(ctx T, event GameEvent)
	// EventTypes lists the types routed to this handler, read once at registration
	EventTypes() []EventType
}

// Delivery summarizes one dispatch pass
type Delivery struct {
	Events   int // Consumed from the queue
	Calls    int // HandleEvent invocations
	Unrouted int // Events no handler subscribed to
}

// Router fans the tick's queued events out to subscribed handlers, in queue order and, per event,
// in registration order
type Router[T any] struct {
	routes [eventTypeCount][]Handler[T]
	queue  *EventQueue
}

// NewRouter returns a router draining queue
func NewRouter[T any](queue *EventQueue) *Router[T] {
	return &Router[T]{queue: queue}
}

// Register subscribes handler to its event types; a type listed twice is routed once and
// unknown types are ignored
func (r *Router[T]) Register(handler Handler[T]) {
	var listed [eventTypeCount]bool
	for _, t := range handler.EventTypes() {
		if t < 0 || t >= eventTypeCount || listed[t] {
			continue
		}
		listed[t] = true
		r.routes[t] = append(r.routes[t], handler)
	}
}

// Dispatch consumes every queued event and routes it
func (r *Router[T]) Dispatch(ctx T) Delivery {
	var d Delivery
	for _, ev := range r.queue.Consume() {
		d.Events++
		if ev.Type < 0 || ev.Type >= eventTypeCount || len(r.routes[ev.Type]) == 0 {
			d.Unrouted++
			continue
		}
		for _, h := range r.routes[ev.Type] {
			h.HandleEvent(ctx, ev)
			d.Calls++
		}
	}
	return d
}

// Subscribers returns how many handlers receive events of type t
func (r *Router[T]) Subscribers(t EventType) int {
	if t < 0 || t >= eventTypeCount {
		return 0
	}
	return len(r.routes[t])
}
