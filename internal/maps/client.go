// Package maps adapts the Google Maps Directions and Places APIs to the
// routing and place providers.
package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	gmaps "googlemaps.github.io/maps"

	"github.com/urbanmove/service-mobility/internal/domain/place"
	"github.com/urbanmove/service-mobility/internal/domain/route"
)

// DefaultTimeout bounds each call when none is configured.
const DefaultTimeout = 10 * time.Second

// Client calls Google Maps. Without an API key every call fails with the
// provider's no-credential error.
type Client struct {
	api     *gmaps.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient creates a Client. An empty apiKey is valid and disables the client.
func NewClient(apiKey string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{timeout: timeout, logger: logger}
	if apiKey == "" {
		logger.Warn("GOOGLE_MAPS_API_KEY not set, route estimates use the fallback pair")
		return c, nil
	}
	api, err := gmaps.NewClient(gmaps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	c.api = api
	return c, nil
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.api != nil
}

var travelModes = map[route.TravelMode]gmaps.Mode{
	route.TravelModeDriving:   gmaps.TravelModeDriving,
	route.TravelModeWalking:   gmaps.TravelModeWalking,
	route.TravelModeBicycling: gmaps.TravelModeBicycling,
	route.TravelModeTransit:   gmaps.TravelModeTransit,
}

// Route implements route.RoutingProvider with the first leg of the first
// Directions route.
func (c *Client) Route(ctx context.Context, origin, destination string, mode route.TravelMode) (route.RoutingResult, error) {
	if c.api == nil {
		return route.RoutingResult{}, route.ErrNoCredential
	}
	gmode, ok := travelModes[mode]
	if !ok {
		return route.RoutingResult{}, fmt.Errorf("unsupported travel mode: %s", mode)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	routes, _, err := c.api.Directions(ctx, &gmaps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        gmode,
		Region:      place.DefaultCountry,
	})
	if err != nil {
		if isZeroResults(err) {
			return route.RoutingResult{}, route.ErrNoRoute
		}
		return route.RoutingResult{}, fmt.Errorf("directions request failed: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return route.RoutingResult{}, route.ErrNoRoute
	}

	leg := routes[0].Legs[0]
	return route.RoutingResult{
		DistanceKm:      float64(leg.Distance.Meters) / 1000,
		DurationMinutes: leg.Duration.Minutes(),
	}, nil
}

// Autocomplete implements place.Provider.
func (c *Client) Autocomplete(ctx context.Context, input, country string) ([]place.Prediction, error) {
	if c.api == nil {
		return nil, place.ErrNoCredential
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.PlaceAutocomplete(ctx, &gmaps.PlaceAutocompleteRequest{
		Input:      input,
		Components: map[gmaps.Component][]string{gmaps.ComponentCountry: {country}},
	})
	if err != nil {
		if isZeroResults(err) {
			return []place.Prediction{}, nil
		}
		return nil, fmt.Errorf("autocomplete request failed: %w", err)
	}

	out := make([]place.Prediction, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		out = append(out, place.Prediction{
			PlaceID:       p.PlaceID,
			Description:   p.Description,
			MainText:      p.StructuredFormatting.MainText,
			SecondaryText: p.StructuredFormatting.SecondaryText,
		})
	}
	return out, nil
}

// Details implements place.Provider.
func (c *Client) Details(ctx context.Context, placeID string) (place.Details, error) {
	if c.api == nil {
		return place.Details{}, place.ErrNoCredential
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.api.PlaceDetails(ctx, &gmaps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields: []gmaps.PlaceDetailsFieldMask{
			gmaps.PlaceDetailsFieldMaskAddressComponent,
			gmaps.PlaceDetailsFieldMaskFormattedAddress,
			gmaps.PlaceDetailsFieldMaskGeometry,
		},
	})
	if err != nil {
		if isNotFound(err) {
			return place.Details{}, place.ErrNotFound
		}
		return place.Details{}, fmt.Errorf("place details request failed: %w", err)
	}
	if len(res.AddressComponents) == 0 {
		return place.Details{}, place.ErrNotFound
	}

	components := make([]place.Component, 0, len(res.AddressComponents))
	for _, ac := range res.AddressComponents {
		components = append(components, place.Component{
			LongName:  ac.LongName,
			ShortName: ac.ShortName,
			Types:     ac.Types,
		})
	}
	loc := res.Geometry.Location
	return place.ParseDetails(components, res.FormattedAddress, loc.Lat, loc.Lng), nil
}

func isZeroResults(err error) bool {
	return hasStatus(err, "ZERO_RESULTS")
}

func isNotFound(err error) bool {
	return hasStatus(err, "NOT_FOUND") || hasStatus(err, "INVALID_REQUEST")
}

// hasStatus matches the API status embedded in the client's error text.
func hasStatus(err error, status string) bool {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if strings.Contains(e.Error(), "maps: "+status) {
			return true
		}
	}
	return false
}
