package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/urbanmove/service-mobility/internal/domain/arrival"
	"github.com/urbanmove/service-mobility/internal/proto/events"
)

// AlertSubjectPrefix prefixes the per-line alert subjects.
const AlertSubjectPrefix = "arrivals.alerts"

// AlertMetrics records NATS publishing outcomes.
type AlertMetrics interface {
	NATSPublishedInc()
	NATSPublishErrInc()
	NATSSetConnected(connected bool)
}

// NATSAlertPublisher publishes arriving-soon alerts for favorited lines.
type NATSAlertPublisher struct {
	nc      *nats.Conn
	metrics AlertMetrics
	logger  *zap.Logger
}

// NewNATSAlertPublisher connects to NATS at url.
func NewNATSAlertPublisher(url string, m AlertMetrics, logger *zap.Logger) (*NATSAlertPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name(events.Source),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			logger.Warn("nats disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(true)
			}
			logger.Info("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			logger.Info("nats closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	if m != nil {
		m.NATSSetConnected(true)
	}
	return &NATSAlertPublisher{nc: nc, metrics: m, logger: logger}, nil
}

// Close drains pending alerts and closes the connection.
func (p *NATSAlertPublisher) Close() {
	if p.nc != nil {
		if err := p.nc.Drain(); err != nil {
			p.logger.Warn("failed to drain nats connection", zap.Error(err))
		}
		p.nc.Close()
	}
}

// PublishArrivalAlert publishes the alert of a on arrivals.alerts.<line>.
func (p *NATSAlertPublisher) PublishArrivalAlert(_ context.Context, a arrival.Arrival) error {
	b, err := json.Marshal(NewArrivalAlert(a, time.Now().UTC()))
	if err != nil {
		return err
	}
	err = p.nc.Publish(AlertSubject(a.LineNumber), b)
	if p.metrics != nil {
		if err != nil {
			p.metrics.NATSPublishErrInc()
		} else {
			p.metrics.NATSPublishedInc()
		}
	}
	return err
}

// NewArrivalAlert builds the alert payload of a.
func NewArrivalAlert(a arrival.Arrival, sentAt time.Time) events.ArrivalAlert {
	return events.ArrivalAlert{
		LineNumber:  a.LineNumber,
		Name:        a.DisplayName(),
		Minutes:     a.Minutes,
		ScheduledAt: a.ScheduledAt,
		Label:       arrival.FormatMinutes(a.Minutes),
		SentAt:      sentAt,
	}
}

// AlertSubject returns the NATS subject of a line's alerts.
func AlertSubject(lineNumber string) string {
	return AlertSubjectPrefix + "." + subjectToken(lineNumber)
}

func subjectToken(s string) string {
	s = strings.TrimSpace(s)
	// NATS tokens cannot contain spaces, '>', '*' or '.'
	repl := strings.NewReplacer(" ", "_", ".", "_", ">", "_", "*", "_", "/", "_", "\t", "_")
	s = repl.Replace(s)
	if s == "" {
		s = "_"
	}
	return s
}
