package route

import (
	"fmt"
	"math"
)

// Policy holds the tunable factors of the estimator.
type Policy struct {
	// SustainableFactor stretches durations for the SUSTAINABLE objective. Must be >= 1.
	SustainableFactor float64
	// BusPenalty applies on top of SustainableFactor when bus is selected
	// without bike or walking.
	BusPenalty float64
	// MetroBonus shrinks durations for FASTEST when metro is selected.
	MetroBonus float64

	FallbackDistanceKm      float64
	FallbackDurationMinutes float64
}

// DefaultPolicy returns the standard factors and fallback pair.
func DefaultPolicy() Policy {
	return Policy{
		SustainableFactor:       1.15,
		BusPenalty:              1.05,
		MetroBonus:              0.85,
		FallbackDistanceKm:      12.5,
		FallbackDurationMinutes: 45,
	}
}

// Validate checks the factors keep the objective invariants.
func (p Policy) Validate() error {
	for _, v := range []float64{p.SustainableFactor, p.BusPenalty, p.MetroBonus, p.FallbackDistanceKm, p.FallbackDurationMinutes} {
		if isBad(v) {
			return fmt.Errorf("estimator factors must be finite numbers, got %v", v)
		}
	}
	switch {
	case p.SustainableFactor < 1:
		return fmt.Errorf("sustainable factor must be >= 1, got %v", p.SustainableFactor)
	case p.BusPenalty < 1:
		return fmt.Errorf("bus penalty must be >= 1, got %v", p.BusPenalty)
	case p.MetroBonus <= 0 || p.MetroBonus > 1:
		return fmt.Errorf("metro bonus must be in (0, 1], got %v", p.MetroBonus)
	case p.FallbackDistanceKm < 0 || p.FallbackDurationMinutes < 0:
		return fmt.Errorf("fallback distance and duration must be non-negative")
	}
	return nil
}

// AdjustDuration applies the objective factors to a raw duration.
func (p Policy) AdjustDuration(minutes float64, objective Objective, modes []Mode) float64 {
	switch objective {
	case ObjectiveSustainable:
		minutes *= p.SustainableFactor
		if containsMode(modes, ModeBus) && !containsMode(modes, ModeBike) && !containsMode(modes, ModeWalking) {
			minutes *= p.BusPenalty
		}
	case ObjectiveFastest:
		if containsMode(modes, ModeMetro) {
			minutes *= p.MetroBonus
		}
	}
	return minutes
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func isBad(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
