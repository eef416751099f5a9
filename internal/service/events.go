package service

import "github.com/google/uuid"

// EventPublisher delivers live events to the subscribers of one mall
type EventPublisher interface {
	Publish(mallID uuid.UUID, payload map[string]interface{})
}

type noopPublisher struct{}

func (noopPublisher) Publish(uuid.UUID, map[string]interface{}) {}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}
