// Package pubsub fans typed events out from the assistant's services to
// whatever host UI is subscribed. Publishing never blocks the suggestion
// pipeline.
package pubsub

import "context"

// EventType names what happened to the payload. Each service defines its
// own set (suggestion_shown, status_published, log_created, ...).
type EventType string

// Event pairs an event type with the payload it describes.
type Event[T any] struct {
	Type    EventType
	Payload T
}

// Subscriber is the read side a service exposes to the host UI.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher is the write side, satisfied by Broker.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
