package route

import "fmt"

// CostStrategy defines the interface for estimating the monetary cost of a route.
type CostStrategy interface {
	// Calculate returns the unrounded cost for the given parameters.
	Calculate(params CostParams) (float64, error)
}

// CostParams holds the inputs for cost calculation.
type CostParams struct {
	DistanceKm float64
	Modes      []Mode
}

// DefaultCostPerKm is charged for modes missing from the table.
const DefaultCostPerKm = 0.30

// AverageCostStrategy charges the distance times the mean per-km cost of the
// selected modes.
type AverageCostStrategy struct {
	perKm map[Mode]float64
}

// NewAverageCostStrategy creates an AverageCostStrategy with the standard table.
func NewAverageCostStrategy() *AverageCostStrategy {
	return &AverageCostStrategy{perKm: map[Mode]float64{
		ModeBus:     0.30,
		ModeMetro:   0.35,
		ModeBike:    0.05,
		ModeWalking: 0.00,
		ModeCarpool: 0.50,
	}}
}

// Calculate computes distance × mean(costPerKm).
func (s *AverageCostStrategy) Calculate(params CostParams) (float64, error) {
	if params.DistanceKm < 0 || isBad(params.DistanceKm) {
		return 0, fmt.Errorf("distance must be a non-negative number")
	}
	if len(params.Modes) == 0 {
		return 0, nil
	}
	return params.DistanceKm * s.averagePerKm(params.Modes), nil
}

func (s *AverageCostStrategy) averagePerKm(modes []Mode) float64 {
	var sum float64
	for _, m := range modes {
		rate, ok := s.perKm[m]
		if !ok {
			rate = DefaultCostPerKm
		}
		sum += rate
	}
	return sum / float64(len(modes))
}
