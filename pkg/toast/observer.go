package toast

import "context"

// EventType classifies delivery events reported to an Observer.
type EventType string

const (
	// EventHeader: messages were stamped on the response header.
	EventHeader EventType = "header"
	// EventRestored: messages were taken from the redirect store.
	EventRestored EventType = "restored"
	// EventPersisted: messages were written to the redirect store.
	EventPersisted EventType = "persisted"
	// EventDiscarded: messages were dropped without delivery.
	EventDiscarded EventType = "discarded"
	// EventFailed: encoding or persistence failed; Err is set.
	EventFailed EventType = "failed"
)

// Event is a single delivery event.
type Event struct {
	Type  EventType
	Count int
	Err   error
}

// Observer receives delivery events, for example to export metrics.
// Implementations must be safe for concurrent use and must not block.
type Observer interface {
	Observe(ctx context.Context, ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, ev Event)

func (f ObserverFunc) Observe(ctx context.Context, ev Event) { f(ctx, ev) }
