package events

import (
	"context"
	"strings"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/urbanmove/service-mobility/internal/domain/arrival"
	"github.com/urbanmove/service-mobility/internal/platform/kafka"
	"github.com/urbanmove/service-mobility/internal/proto/events"
)

// ArrivalIngester stores a live arrivals snapshot.
type ArrivalIngester interface {
	Ingest(ctx context.Context, arrivals []arrival.Arrival, receivedAt time.Time) error
}

// ArrivalsConsumer listens to the live transit feed and hands snapshots to the arrivals board.
type ArrivalsConsumer struct {
	consumer *kafka.Consumer
	ingester ArrivalIngester
	logger   *zap.Logger
}

// NewArrivalsConsumer creates a new ArrivalsConsumer.
func NewArrivalsConsumer(
	brokers []string,
	groupID string,
	ingester ArrivalIngester,
	logger *zap.Logger,
) *ArrivalsConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, events.TopicTransitArrivals, logger)
	return &ArrivalsConsumer{
		consumer: consumer,
		ingester: ingester,
		logger:   logger,
	}
}

// Start begins consuming the feed. This blocks until the context is cancelled.
func (c *ArrivalsConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *ArrivalsConsumer) Close() error {
	return c.consumer.Close()
}

func (c *ArrivalsConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from arrivals topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case events.ArrivalsUpdated:
		return c.handleArrivalsUpdated(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled arrivals event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *ArrivalsConsumer) handleArrivalsUpdated(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt events.ArrivalsUpdatedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse ArrivalsUpdatedEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	arrivals := make([]arrival.Arrival, 0, len(evt.Arrivals))
	for _, p := range evt.Arrivals {
		a, ok := toArrival(p)
		if !ok {
			c.logger.Warn("skipping invalid arrival",
				zap.String("line_number", p.LineNumber),
				zap.String("type", p.Type),
				zap.Int("minutes", p.Minutes),
			)
			continue
		}
		arrivals = append(arrivals, a)
	}

	receivedAt := evt.OccurredAt
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}
	if err := c.ingester.Ingest(ctx, arrivals, receivedAt); err != nil {
		c.logger.Error("failed to ingest live arrivals",
			zap.Int("count", len(arrivals)),
			zap.Error(err),
		)
		return err
	}

	c.logger.Debug("live arrivals ingested", zap.Int("count", len(arrivals)))
	return nil
}

func toArrival(p events.ArrivalPayload) (arrival.Arrival, bool) {
	line := strings.TrimSpace(p.LineNumber)
	lineType := arrival.LineType(strings.ToLower(strings.TrimSpace(p.Type)))
	if line == "" || !lineType.IsValid() || p.Minutes < 0 {
		return arrival.Arrival{}, false
	}
	return arrival.Arrival{
		LineNumber:  line,
		LineName:    strings.TrimSpace(p.LineName),
		Destination: strings.TrimSpace(p.Destination),
		Type:        lineType,
		Minutes:     p.Minutes,
		ScheduledAt: p.ScheduledAt,
	}, true
}
