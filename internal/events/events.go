package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventSource  = "hostel-service"
	EventVersion = "1.0"
)

type EventType string

const (
	RecordCreated EventType = "record.created"
	RecordUpdated EventType = "record.updated"
	RecordDeleted EventType = "record.deleted"
)

// Event announces a write that the store acknowledged.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	Source     string      `json:"source"`
	Version    string      `json:"version"`
	Timestamp  time.Time   `json:"timestamp"`
	Collection string      `json:"collection"`
	Key        string      `json:"key"`
	Data       interface{} `json:"data,omitempty"`
}

func NewEvent(eventType EventType, collection, key string, data interface{}) *Event {
	return &Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		Source:     EventSource,
		Version:    EventVersion,
		Timestamp:  time.Now().UTC(),
		Collection: collection,
		Key:        key,
		Data:       data,
	}
}

// EventPublisher delivers record events to downstream consumers
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}
