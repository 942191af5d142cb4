// Package events defines the Kafka topics, event types and payloads the
// service produces and consumes.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics.
const (
	TopicRouteEvents     = "route.events"
	TopicEmissionEvents  = "emission.events"
	TopicFavoriteEvents  = "favorite.events"
	TopicTransitArrivals = "transit.arrivals"
)

// Event types.
const (
	RouteEstimated   = "route.estimated"
	EmissionRecorded = "emission.recorded"
	FavoriteChanged  = "favorite.changed"
	ArrivalsUpdated  = "arrivals.updated"
)

// Source is the CloudEvents source of every produced event.
const Source = "service-mobility"

// RouteEstimatedEvent is published after a signed-in user's estimate is saved.
type RouteEstimatedEvent struct {
	RouteID          uuid.UUID `json:"route_id"`
	UserID           uuid.UUID `json:"user_id"`
	Origin           string    `json:"origin"`
	Destination      string    `json:"destination"`
	Modes            []string  `json:"modes"`
	Objective        string    `json:"objective"`
	TotalTimeMinutes int       `json:"total_time_minutes"`
	TotalDistanceKm  float64   `json:"total_distance_km"`
	EstimatedCost    float64   `json:"estimated_cost"`
	IsFallback       bool      `json:"is_fallback"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// EmissionRecordedEvent is published after an emission calculation is saved.
type EmissionRecordedEvent struct {
	RecordID       uuid.UUID `json:"record_id"`
	UserID         uuid.UUID `json:"user_id"`
	Mode           string    `json:"mode"`
	DistanceKm     float64   `json:"distance_km"`
	CO2GeneratedKg float64   `json:"co2_generated_kg"`
	CO2AvoidedKg   float64   `json:"co2_avoided_kg"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// FavoriteChangedEvent is published when a favorite is added or removed.
type FavoriteChangedEvent struct {
	UserID     uuid.UUID `json:"user_id"`
	LineNumber string    `json:"line_number"`
	Favorited  bool      `json:"favorited"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ArrivalPayload is one arrival in an ArrivalsUpdatedEvent.
type ArrivalPayload struct {
	LineNumber  string `json:"line_number"`
	LineName    string `json:"line_name,omitempty"`
	Destination string `json:"destination,omitempty"`
	Type        string `json:"type"`
	Minutes     int    `json:"minutes"`
	ScheduledAt string `json:"scheduled_at"`
}

// ArrivalsUpdatedEvent is a snapshot of the live feed.
type ArrivalsUpdatedEvent struct {
	Arrivals   []ArrivalPayload `json:"arrivals"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// ArrivalAlert is published on NATS when a favorited line is about to arrive.
type ArrivalAlert struct {
	LineNumber  string    `json:"line_number"`
	Name        string    `json:"name"`
	Minutes     int       `json:"minutes"`
	ScheduledAt string    `json:"scheduled_at"`
	Label       string    `json:"label"`
	SentAt      time.Time `json:"sent_at"`
}
