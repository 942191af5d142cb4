package route

import (
	"context"

	"github.com/google/uuid"
)

// Stats aggregates non-fallback saved routes.
type Stats struct {
	RoutesCalculated   int64
	ActiveUsers        int64
	AverageTimeMinutes float64
}

// PopularPair is an origin/destination pair and how often it was saved.
type PopularPair struct {
	Origin      string
	Destination string
	Count       int64
}

// RouteRepository defines the persistence contract for saved routes.
type RouteRepository interface {
	// Save persists a new saved route.
	Save(ctx context.Context, route *SavedRoute) error

	// FindByUserID retrieves a user's saved routes, newest first, with pagination.
	FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*SavedRoute, int64, error)

	// Stats aggregates every saved route that is not a fallback estimate.
	Stats(ctx context.Context) (Stats, error)

	// PopularPairs returns the most saved origin/destination pairs.
	PopularPairs(ctx context.Context, limit int) ([]PopularPair, error)

	// ModeCounts counts how often each mode was selected across saved routes.
	ModeCounts(ctx context.Context) (map[Mode]int64, error)
}
