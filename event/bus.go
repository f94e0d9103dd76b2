package event

import (
	"fmt"
	"log"
	"time"
)

// HandlerFunc processes a single dispatched event
type HandlerFunc func(ev GameEvent)

// Handler is the system-side registration interface
// Systems implement this to receive every event type they declare
type Handler interface {
	// HandleEvent processes a single event
	// Called synchronously during dispatch, in registration order
	HandleEvent(ev GameEvent)

	// EventTypes returns the event types this handler processes
	EventTypes() []EventType
}

// Subscription identifies one registered handler for removal via Off
type Subscription struct {
	eventType EventType
	id        uint64
}

type entry struct {
	id uint64
	fn HandlerFunc
}

// Bus is a synchronous publish/subscribe mediator for game events.
//
// Contract:
//   - Dispatch invokes every currently registered handler for the type,
//     in registration order, before returning. No queuing, no batching.
//   - Dispatch is re-entrant: handlers may dispatch further events, which
//     complete depth-first before the outer dispatch continues.
//   - Snapshot semantics: handlers added or removed during a dispatch do
//     not affect the in-progress iteration's handler set.
//   - Isolate-and-continue: a panicking handler is recovered and reported
//     through the error hook; sibling handlers still run.
//
// The bus is explicitly constructed and injected into each consumer, so
// tests can run multiple independent instances. It is not safe for
// concurrent use; all producers and consumers share the game tick thread.
type Bus struct {
	handlers map[EventType][]entry
	nextID   uint64

	// onError receives recovered handler panics (isolate-and-continue)
	onError func(error)
}

// BusOption configures a Bus at construction
type BusOption func(*Bus)

// WithErrorHook replaces the default log-to-stderr panic reporter
func WithErrorHook(fn func(error)) BusOption {
	return func(b *Bus) {
		b.onError = fn
	}
}

// NewBus creates an empty bus
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{
		handlers: make(map[EventType][]entry),
		onError: func(err error) {
			log.Printf("event: %v", err)
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// On registers a handler for one event type and returns its subscription.
// Duplicate registration of the same function is not detected; avoiding
// duplicates is the caller's responsibility.
func (b *Bus) On(t EventType, fn HandlerFunc) Subscription {
	b.nextID++
	id := b.nextID

	// Copy-on-write keeps any snapshot taken by an in-flight dispatch intact
	current := b.handlers[t]
	next := make([]entry, len(current)+1)
	copy(next, current)
	next[len(current)] = entry{id: id, fn: fn}
	b.handlers[t] = next

	return Subscription{eventType: t, id: id}
}

// Off removes a previously registered handler. No-op if already removed.
func (b *Bus) Off(sub Subscription) {
	current := b.handlers[sub.eventType]
	for i, e := range current {
		if e.id == sub.id {
			next := make([]entry, 0, len(current)-1)
			next = append(next, current[:i]...)
			next = append(next, current[i+1:]...)
			b.handlers[sub.eventType] = next
			return
		}
	}
}

// Register subscribes a Handler for all its declared event types
func (b *Bus) Register(h Handler) []Subscription {
	types := h.EventTypes()
	subs := make([]Subscription, 0, len(types))
	for _, t := range types {
		subs = append(subs, b.On(t, h.HandleEvent))
	}
	return subs
}

// Dispatch synchronously invokes all handlers registered for the type
func (b *Bus) Dispatch(t EventType, payload any) {
	ev := GameEvent{
		Type:      t,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	// Snapshot: On/Off replace the slice, so this header stays stable
	// even when handlers mutate registrations mid-dispatch
	snapshot := b.handlers[t]
	for _, e := range snapshot {
		b.invoke(e.fn, ev)
	}
}

// invoke runs one handler with panic isolation
func (b *Bus) invoke(fn HandlerFunc, ev GameEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.onError(fmt.Errorf("handler panic on %s: %v", ev.Type, r))
		}
	}()
	fn(ev)
}

// HandlerCount returns the number of handlers registered for the given type
func (b *Bus) HandlerCount(t EventType) int {
	return len(b.handlers[t])
}
