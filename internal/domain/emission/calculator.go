// Package emission computes CO2 generated and avoided for a trip.
package emission

import (
	"math"

	"github.com/urbanmove/service-mobility/internal/platform/apperror"
)

// Result holds the emissions of one trip, rounded to two decimals.
type Result struct {
	DistanceKm     float64 `json:"distance_km"`
	Mode           Mode    `json:"mode"`
	CO2GeneratedKg float64 `json:"co2_generated_kg"`
	CO2AvoidedKg   float64 `json:"co2_avoided_kg"`
}

// Calculate returns the CO2 generated by travelling distanceKm with mode and
// the CO2 avoided compared to a car. Avoided emissions are never negative.
func Calculate(distanceKm float64, mode Mode) (Result, error) {
	if err := validateDistance(distanceKm); err != nil {
		return Result{}, err
	}
	if !mode.IsValid() {
		return Result{}, apperror.NewValidationError("unknown mode: "+string(mode), "mode")
	}

	generated := distanceKm * mode.Factor()
	reference := distanceKm * ReferenceMode.Factor()
	return Result{
		DistanceKm:     distanceKm,
		Mode:           mode,
		CO2GeneratedKg: round2(generated),
		CO2AvoidedKg:   round2(math.Max(0, reference-generated)),
	}, nil
}

// ModeComparison is one bar of the per-mode comparison.
type ModeComparison struct {
	Mode           Mode    `json:"mode"`
	CO2GeneratedKg float64 `json:"co2_generated_kg"`
	// PercentOfCar is the mode's emissions as a share of the car's, 0 to 100.
	PercentOfCar float64 `json:"percent_of_car"`
}

// Comparison returns every mode's emissions over distanceKm relative to the car.
func Comparison(distanceKm float64) ([]ModeComparison, error) {
	if err := validateDistance(distanceKm); err != nil {
		return nil, err
	}

	reference := distanceKm * ReferenceMode.Factor()
	out := make([]ModeComparison, 0, len(factors))
	for _, m := range AllModes() {
		generated := distanceKm * m.Factor()
		var pct float64
		if reference > 0 {
			pct = round2(generated / reference * 100)
		}
		out = append(out, ModeComparison{Mode: m, CO2GeneratedKg: round2(generated), PercentOfCar: pct})
	}
	return out, nil
}

func validateDistance(distanceKm float64) error {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm < 0 {
		return apperror.NewValidationError("distance must be a non-negative number", "distance_km")
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
