package route

import (
	"context"
	"errors"
)

// TravelMode is the mode understood by the routing collaborator.
type TravelMode string

const (
	TravelModeDriving   TravelMode = "DRIVING"
	TravelModeWalking   TravelMode = "WALKING"
	TravelModeBicycling TravelMode = "BICYCLING"
	TravelModeTransit   TravelMode = "TRANSIT"
)

var (
	// ErrNoCredential is returned by routing providers running without an API key.
	ErrNoCredential = errors.New("routing: no credential configured")
	// ErrNoRoute is returned when the collaborator finds no route.
	ErrNoRoute = errors.New("routing: no route found")
)

// RoutingResult is the raw distance and duration between two places.
type RoutingResult struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes float64 `json:"duration_minutes"`
}

// usable reports whether the figures can back an estimate.
func (r RoutingResult) usable() bool {
	return r.DistanceKm >= 0 && r.DurationMinutes >= 0 && !isBad(r.DistanceKm) && !isBad(r.DurationMinutes)
}

// RoutingProvider resolves the distance and duration of a trip.
type RoutingProvider interface {
	Route(ctx context.Context, origin, destination string, mode TravelMode) (RoutingResult, error)
}
