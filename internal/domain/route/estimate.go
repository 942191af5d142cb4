package route

// RouteEstimate is the immutable result of one estimation.
type RouteEstimate struct {
	modes            []Mode
	totalTimeMinutes int
	totalDistanceKm  float64
	estimatedCost    float64
	objective        Objective
	isFallback       bool
	fallbackCause    error
}

// ReconstructEstimate rebuilds a RouteEstimate from persistence data (no validation).
func ReconstructEstimate(
	modes []Mode,
	totalTimeMinutes int,
	totalDistanceKm float64,
	estimatedCost float64,
	objective Objective,
	isFallback bool,
) *RouteEstimate {
	return &RouteEstimate{
		modes:            append([]Mode(nil), modes...),
		totalTimeMinutes: totalTimeMinutes,
		totalDistanceKm:  totalDistanceKm,
		estimatedCost:    estimatedCost,
		objective:        objective,
		isFallback:       isFallback,
	}
}

// Modes returns a copy of the selected modes in selection order.
func (e *RouteEstimate) Modes() []Mode { return append([]Mode(nil), e.modes...) }
func (e *RouteEstimate) TotalTimeMinutes() int { return e.totalTimeMinutes }
func (e *RouteEstimate) TotalDistanceKm() float64 { return e.totalDistanceKm }
func (e *RouteEstimate) EstimatedCost() float64 { return e.estimatedCost }
func (e *RouteEstimate) Objective() Objective { return e.objective }

// IsFallback reports whether the figures come from the fixed fallback pair
// instead of the routing collaborator.
func (e *RouteEstimate) IsFallback() bool { return e.isFallback }

// FallbackCause is the routing error that triggered the fallback, if any.
// It is not persisted.
func (e *RouteEstimate) FallbackCause() error { return e.fallbackCause }

// PrimaryMode returns the first selected mode.
func (e *RouteEstimate) PrimaryMode() Mode {
	if len(e.modes) == 0 {
		return ""
	}
	return e.modes[0]
}
