package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
)

// LogEvents subscribes to topic and writes one debug line per event. It
// returns once subscribed; consumption stops when ctx is cancelled or the
// subscriber is closed.
func LogEvents(ctx context.Context, sub message.Subscriber, topic string, logger *slog.Logger) error {
	messages, err := sub.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	go func() {
		for msg := range messages {
			var event Event
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				logger.Warn("Undecodable event", "message_id", msg.UUID, "error", err)
				msg.Ack()
				continue
			}
			logger.Debug("Event received",
				"event_id", event.ID,
				"type", event.Type,
				"collection", event.Collection,
				"key", event.Key)
			msg.Ack()
		}
	}()
	return nil
}
