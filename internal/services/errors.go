package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SAP-F-2025/hostel-service/internal/events"
)

var (
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidID        = errors.New("invalid record id")
)

// publishEvent delivers event. The write already succeeded, so a failure is
// logged and swallowed.
func publishEvent(ctx context.Context, publisher events.EventPublisher, logger *slog.Logger, event *events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish record event",
			"error", err,
			"type", event.Type,
			"collection", event.Collection,
			"key", event.Key)
	}
}
