package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/urbanmove/service-mobility/internal/platform/kafka"
	"github.com/urbanmove/service-mobility/internal/proto/events"
)

// eventPublisher publishes domain events. Failures are logged and never
// fail the use case that triggered them.
type eventPublisher struct {
	producer kafka.Publisher
	logger   *zap.Logger
}

func (p eventPublisher) publish(ctx context.Context, topic, eventType, key string, data interface{}) {
	if p.producer == nil {
		return
	}
	cloudEvent, err := kafka.NewCloudEvent(events.Source, eventType, data)
	if err != nil {
		p.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	cloudEvent.Subject = key

	if err := p.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
