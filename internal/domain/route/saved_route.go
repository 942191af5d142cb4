package route

import (
	"time"

	"github.com/google/uuid"

	"github.com/urbanmove/service-mobility/internal/platform/apperror"
)

// SavedRoute is the aggregate root of a user's route history.
type SavedRoute struct {
	id          uuid.UUID
	userID      uuid.UUID
	origin      string
	destination string
	estimate    *RouteEstimate
	createdAt   time.Time
}

// NewSavedRoute records estimate for userID.
func NewSavedRoute(userID uuid.UUID, req Request, estimate *RouteEstimate) (*SavedRoute, error) {
	if userID == uuid.Nil {
		return nil, apperror.NewValidationError("user ID is required", "user_id")
	}
	if estimate == nil {
		return nil, apperror.NewValidationError("estimate is required")
	}
	return &SavedRoute{
		id:          uuid.New(),
		userID:      userID,
		origin:      req.Origin,
		destination: req.Destination,
		estimate:    estimate,
		createdAt:   time.Now().UTC(),
	}, nil
}

// ReconstructSavedRoute rebuilds a SavedRoute from persistence data (no validation).
func ReconstructSavedRoute(
	id uuid.UUID,
	userID uuid.UUID,
	origin string,
	destination string,
	estimate *RouteEstimate,
	createdAt time.Time,
) *SavedRoute {
	return &SavedRoute{
		id:          id,
		userID:      userID,
		origin:      origin,
		destination: destination,
		estimate:    estimate,
		createdAt:   createdAt,
	}
}

func (r *SavedRoute) ID() uuid.UUID { return r.id }
func (r *SavedRoute) UserID() uuid.UUID { return r.userID }
func (r *SavedRoute) Origin() string { return r.origin }
func (r *SavedRoute) Destination() string { return r.destination }
func (r *SavedRoute) Estimate() *RouteEstimate { return r.estimate }
func (r *SavedRoute) CreatedAt() time.Time { return r.createdAt }

// IsSustainable reports whether the route was computed for the SUSTAINABLE objective.
func (r *SavedRoute) IsSustainable() bool {
	return r.estimate.Objective() == ObjectiveSustainable
}
