package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/urbanmove/service-mobility/internal/domain/arrival"
	"github.com/urbanmove/service-mobility/internal/platform/kafka"
	"github.com/urbanmove/service-mobility/internal/proto/events"
)

type recordingIngester struct {
	batches    [][]arrival.Arrival
	receivedAt time.Time
	err        error
}

func (r *recordingIngester) Ingest(_ context.Context, arrivals []arrival.Arrival, receivedAt time.Time) error {
	if r.err != nil {
		return r.err
	}
	r.batches = append(r.batches, arrivals)
	r.receivedAt = receivedAt
	return nil
}

func eventMessage(t *testing.T, eventType string, data interface{}) kafkago.Message {
	t.Helper()
	ce, err := kafka.NewCloudEvent("transit-feed", eventType, data)
	require.NoError(t, err)
	value, err := json.Marshal(ce)
	require.NoError(t, err)
	return kafkago.Message{Value: value}
}

func TestHandleMessage_IngestsValidArrivals(t *testing.T) {
	ingester := &recordingIngester{}
	c := &ArrivalsConsumer{ingester: ingester, logger: zap.NewNop()}
	occurred := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	msg := eventMessage(t, events.ArrivalsUpdated, events.ArrivalsUpdatedEvent{
		Arrivals: []events.ArrivalPayload{
			{LineNumber: " 875A ", LineName: "Lapa", Type: "BUS", Minutes: 4, ScheduledAt: "08:04"},
			{LineNumber: "", Type: "bus", Minutes: 1},
			{LineNumber: "L2", Type: "tram", Minutes: 3},
			{LineNumber: "L3", Type: "metro", Minutes: -1},
		},
		OccurredAt: occurred,
	})

	require.NoError(t, c.handleMessage(context.Background(), msg))
	require.Len(t, ingester.batches, 1)
	require.Len(t, ingester.batches[0], 1)
	assert.Equal(t, arrival.Arrival{
		LineNumber:  "875A",
		LineName:    "Lapa",
		Type:        arrival.LineTypeBus,
		Minutes:     4,
		ScheduledAt: "08:04",
	}, ingester.batches[0][0])
	assert.Equal(t, occurred, ingester.receivedAt)
}

func TestHandleMessage_MalformedIsSkipped(t *testing.T) {
	ingester := &recordingIngester{}
	c := &ArrivalsConsumer{ingester: ingester, logger: zap.NewNop()}

	assert.NoError(t, c.handleMessage(context.Background(), kafkago.Message{Value: []byte("not json")}))
	assert.NoError(t, c.handleMessage(context.Background(), eventMessage(t, events.ArrivalsUpdated, "not an object")))
	assert.NoError(t, c.handleMessage(context.Background(), eventMessage(t, "something.else", map[string]string{})))
	assert.Empty(t, ingester.batches)
}

func TestHandleMessage_IngestFailureIsRetried(t *testing.T) {
	ingester := &recordingIngester{err: errors.New("db down")}
	c := &ArrivalsConsumer{ingester: ingester, logger: zap.NewNop()}

	msg := eventMessage(t, events.ArrivalsUpdated, events.ArrivalsUpdatedEvent{
		Arrivals: []events.ArrivalPayload{{LineNumber: "L1", Type: "bus", Minutes: 2}},
	})
	assert.Error(t, c.handleMessage(context.Background(), msg))
}

func TestAlertSubject(t *testing.T) {
	assert.Equal(t, "arrivals.alerts.875A", AlertSubject("875A"))
	assert.Equal(t, "arrivals.alerts.Linha_1_2", AlertSubject(" Linha 1.2 "))
	assert.Equal(t, "arrivals.alerts._", AlertSubject(""))
}

func TestNewArrivalAlert(t *testing.T) {
	sentAt := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	alert := NewArrivalAlert(arrival.Arrival{LineNumber: "L1", Destination: "Sé", Minutes: 1, ScheduledAt: "08:01"}, sentAt)

	assert.Equal(t, events.ArrivalAlert{
		LineNumber:  "L1",
		Name:        "Sé",
		Minutes:     1,
		ScheduledAt: "08:01",
		Label:       "1 minute",
		SentAt:      sentAt,
	}, alert)
}
