package service

import (
	"context"

	"incorporate-run-be/internal/pkg/logger"
	"incorporate-run-be/pkg/events"
)

// publishEvent is fire-and-forget: the activity feed is auxiliary, so a bus
// failure is logged and never fails the request.
func publishEvent(ctx context.Context, publisher events.Publisher, log logger.ILogger, eventType string, data map[string]interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, events.New(eventType, data)); err != nil {
		log.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}
