package goGuard

import (
	"context"

	evbus "github.com/asaskevich/EventBus"
)

// EventBusSink defines a public type used by goGuard APIs.
//
// EventBusSink publishes session events onto an asaskevich/EventBus topic
// so in-process subscribers (UI refreshers, audit tails) can react without
// holding a channel open against the dispatcher.
//
// EventBusSink instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type EventBusSink struct {
	bus   evbus.Bus
	topic string
}

// NewEventBusSink describes the new-event-bus-sink operation and its observable behavior.
//
// NewEventBusSink may return an error when input validation, dependency calls, or security checks fail.
// NewEventBusSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewEventBusSink(bus evbus.Bus, topic string) *EventBusSink {
	if topic == "" {
		topic = "goguard:events"
	}
	return &EventBusSink{bus: bus, topic: topic}
}

// Emit describes the emit operation and its observable behavior.
//
// Emit may return an error when input validation, dependency calls, or security checks fail.
// Emit does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *EventBusSink) Emit(_ context.Context, event SessionEvent) {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.Publish(s.topic, event)
}
