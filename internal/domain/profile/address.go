package profile

import (
	"strings"

	"github.com/urbanmove/service-mobility/internal/platform/apperror"
)

// Address is a user's home address.
type Address struct {
	Address    string  `json:"address"`
	Complement string  `json:"complement"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	ZipCode    string  `json:"zip_code"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// IsSet reports whether a street address was registered.
func (a Address) IsSet() bool {
	return a.Address != ""
}

// Validate requires address, city and state.
func (a Address) Validate() error {
	var invalid []string
	if strings.TrimSpace(a.Address) == "" {
		invalid = append(invalid, "address")
	}
	if strings.TrimSpace(a.City) == "" {
		invalid = append(invalid, "city")
	}
	if strings.TrimSpace(a.State) == "" {
		invalid = append(invalid, "state")
	}
	if a.Latitude < -90 || a.Latitude > 90 {
		invalid = append(invalid, "latitude")
	}
	if a.Longitude < -180 || a.Longitude > 180 {
		invalid = append(invalid, "longitude")
	}
	if len(invalid) > 0 {
		return apperror.NewFieldsError(invalid...)
	}
	return nil
}

// Full joins the non-empty parts into one line usable as a route origin.
func (a Address) Full() string {
	if a.Address == "" {
		return ""
	}
	parts := []string{a.Address}
	for _, p := range []string{a.Complement, a.City, a.State, a.ZipCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func (a Address) trimmed() Address {
	a.Address = strings.TrimSpace(a.Address)
	a.Complement = strings.TrimSpace(a.Complement)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.ZipCode = strings.TrimSpace(a.ZipCode)
	return a
}
