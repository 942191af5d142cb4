package route

import (
	"context"
	"fmt"
	"math"
)

// Estimator produces time, distance and cost estimates for multi-modal routes.
type Estimator struct {
	routing RoutingProvider
	cost    CostStrategy
	policy  Policy
}

// NewEstimator creates an Estimator. A nil routing provider means every
// estimate uses the fallback pair.
func NewEstimator(routing RoutingProvider, cost CostStrategy, policy Policy) *Estimator {
	return &Estimator{routing: routing, cost: cost, policy: policy}
}

// Estimate runs one estimation. Routing failures never fail the estimate;
// they yield a fallback estimate instead. A cancelled ctx discards the result.
func (e *Estimator) Estimate(ctx context.Context, req Request) (*RouteEstimate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	distance, duration, cause := e.resolve(ctx, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fallback := cause != nil
	if fallback {
		distance = e.policy.FallbackDistanceKm
		duration = e.policy.FallbackDurationMinutes
	}

	duration = e.policy.AdjustDuration(duration, req.Objective, req.Modes)

	cost, err := e.cost.Calculate(CostParams{DistanceKm: distance, Modes: req.Modes})
	if err != nil {
		return nil, fmt.Errorf("cost calculation failed: %w", err)
	}

	return &RouteEstimate{
		modes:            append([]Mode(nil), req.Modes...),
		totalTimeMinutes: int(math.Round(duration)),
		totalDistanceKm:  round2(distance),
		estimatedCost:    round2(cost),
		objective:        req.Objective,
		isFallback:       fallback,
		fallbackCause:    cause,
	}, nil
}

// resolve asks the routing provider for the primary mode's figures. A non-nil
// cause means the fallback pair must be used.
func (e *Estimator) resolve(ctx context.Context, req Request) (float64, float64, error) {
	if e.routing == nil {
		return 0, 0, ErrNoCredential
	}
	res, err := e.routing.Route(ctx, req.Origin, req.Destination, req.Modes[0].TravelMode())
	if err != nil {
		return 0, 0, err
	}
	if !res.usable() {
		return 0, 0, fmt.Errorf("%w: unusable figures %+v", ErrNoRoute, res)
	}
	return res.DistanceKm, res.DurationMinutes, nil
}
