package application

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/urbanmove/service-mobility/internal/domain/emission"
	routeDomain "github.com/urbanmove/service-mobility/internal/domain/route"
)

// popularRoutesLimit is how many origin/destination pairs the dashboard ranks.
const popularRoutesLimit = 4

// PopularRouteDTO is one ranked origin/destination pair.
type PopularRouteDTO struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Count       int64  `json:"count"`
}

// ModalShareDTO is the share of one mode across saved route selections.
type ModalShareDTO struct {
	Mode       string `json:"mode"`
	Count      int64  `json:"count"`
	Percentage int    `json:"percentage"`
}

// DashboardDTO is the aggregate city-wide summary.
type DashboardDTO struct {
	TotalCO2AvoidedKg       float64           `json:"total_co2_avoided_kg"`
	AverageRouteTimeMinutes float64           `json:"average_route_time_minutes"`
	ActiveUsers             int64             `json:"active_users"`
	RoutesCalculated        int64             `json:"routes_calculated"`
	PopularRoutes           []PopularRouteDTO `json:"popular_routes"`
	ModalDistribution       []ModalShareDTO   `json:"modal_distribution"`
}

// DashboardService aggregates persisted history into the dashboard.
type DashboardService struct {
	routes    routeDomain.RouteRepository
	emissions emission.RecordRepository
	logger    *zap.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	routes routeDomain.RouteRepository,
	emissions emission.RecordRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		routes:    routes,
		emissions: emissions,
		logger:    logger,
	}
}

// Summary computes the dashboard over non-fallback saved routes.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardDTO, error) {
	stats, err := s.routes.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get route stats: %w", err)
	}

	avoided, err := s.emissions.TotalAvoided(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get emission totals: %w", err)
	}

	pairs, err := s.routes.PopularPairs(ctx, popularRoutesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get popular routes: %w", err)
	}

	counts, err := s.routes.ModeCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get mode counts: %w", err)
	}

	popular := make([]PopularRouteDTO, 0, len(pairs))
	for _, p := range pairs {
		popular = append(popular, PopularRouteDTO{
			Origin:      p.Origin,
			Destination: p.Destination,
			Count:       p.Count,
		})
	}

	return &DashboardDTO{
		TotalCO2AvoidedKg:       math.Round(avoided*100) / 100,
		AverageRouteTimeMinutes: math.Round(stats.AverageTimeMinutes*10) / 10,
		ActiveUsers:             stats.ActiveUsers,
		RoutesCalculated:        stats.RoutesCalculated,
		PopularRoutes:           popular,
		ModalDistribution:       modalDistribution(counts),
	}, nil
}

// modalDistribution lists every mode in canonical order with its integer
// share of all selections. Shares are zero when nothing was saved.
func modalDistribution(counts map[routeDomain.Mode]int64) []ModalShareDTO {
	var total int64
	for _, c := range counts {
		total += c
	}

	shares := make([]ModalShareDTO, 0, len(routeDomain.AllModes()))
	for _, m := range routeDomain.AllModes() {
		share := ModalShareDTO{Mode: string(m), Count: counts[m]}
		if total > 0 {
			share.Percentage = int(math.Round(float64(counts[m]) * 100 / float64(total)))
		}
		shares = append(shares, share)
	}
	return shares
}
