// Package pubsub fans compile results and log lines out to any number of
// subscribers, typically the preview TUI.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened to the payload.
type EventType string

const (
	// CompiledEvent carries a source that parsed successfully.
	CompiledEvent EventType = "compiled"
	// FailedEvent carries a source that produced a diagnostic.
	FailedEvent EventType = "failed"
	// LoggedEvent carries a formatted log line.
	LoggedEvent EventType = "logged"
)

// Event is a single published payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out event channels.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher accepts events.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
