// Package place models address autocompletion and place details.
package place

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	// MinQueryLength is the shortest input sent to the provider, in runes.
	MinQueryLength = 3
	// DefaultCountry restricts predictions to Brazil.
	DefaultCountry = "br"
)

// ErrNoCredential is returned by providers running without an API key.
var ErrNoCredential = errors.New("places: no credential configured")

// ErrNotFound is returned when a place has no usable address data.
var ErrNotFound = errors.New("places: place not found")

// Prediction is one autocomplete suggestion.
type Prediction struct {
	PlaceID       string `json:"place_id"`
	Description   string `json:"description"`
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text"`
}

// Details is the structured address of a place.
type Details struct {
	Address   string  `json:"address"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	ZipCode   string  `json:"zip_code"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Component is one address component returned by the provider.
type Component struct {
	LongName  string
	ShortName string
	Types     []string
}

func (c Component) has(kind string) bool {
	for _, t := range c.Types {
		if t == kind {
			return true
		}
	}
	return false
}

// Provider is the geocoding collaborator.
type Provider interface {
	Autocomplete(ctx context.Context, input, country string) ([]Prediction, error)
	Details(ctx context.Context, placeID string) (Details, error)
}

// NormalizeQuery trims input and reports whether it is long enough to query.
func NormalizeQuery(input string) (string, bool) {
	q := strings.TrimSpace(input)
	return q, utf8.RuneCountInString(q) >= MinQueryLength
}

// ParseDetails builds Details from address components. The street number is
// appended to the route; without a route the first part of the formatted
// address is used.
func ParseDetails(components []Component, formattedAddress string, lat, lng float64) Details {
	var d Details
	var street, number string
	for _, c := range components {
		if c.has("route") {
			street = c.LongName
		}
		if c.has("street_number") {
			number = c.LongName
		}
		if c.has("locality") {
			d.City = c.LongName
		}
		if c.has("administrative_area_level_1") {
			d.State = c.ShortName
		}
		if c.has("postal_code") {
			d.ZipCode = c.LongName
		}
	}

	switch {
	case street != "" && number != "":
		d.Address = street + ", " + number
	case street != "":
		d.Address = street
	default:
		first, _, _ := strings.Cut(formattedAddress, ",")
		d.Address = strings.TrimSpace(first)
	}
	d.Latitude = lat
	d.Longitude = lng
	return d
}
