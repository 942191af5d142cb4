package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	routeDomain "github.com/urbanmove/service-mobility/internal/domain/route"
	"github.com/urbanmove/service-mobility/internal/platform/apperror"
	"github.com/urbanmove/service-mobility/internal/platform/kafka"
	"github.com/urbanmove/service-mobility/internal/platform/metrics"
	"github.com/urbanmove/service-mobility/internal/proto/events"
)

// Warnings attached to estimate responses.
const (
	WarningFallbackEstimate = "routing service unavailable: distance and duration are approximate"
	WarningNotSaved         = "the estimate could not be saved to your history"
)

// EstimateRouteRequest holds the data needed to estimate a route.
type EstimateRouteRequest struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Modes       []string `json:"modes"`
	Objective   string   `json:"objective"`
}

// RouteEstimateDTO is the response representation of an estimate, saved or not.
type RouteEstimateDTO struct {
	ID               *uuid.UUID `json:"id,omitempty"`
	Origin           string     `json:"origin"`
	Destination      string     `json:"destination"`
	Modes            []string   `json:"modes"`
	Objective        string     `json:"objective"`
	TotalTimeMinutes int        `json:"total_time_minutes"`
	TotalDistanceKm  float64    `json:"total_distance_km"`
	EstimatedCost    float64    `json:"estimated_cost"`
	IsSustainable    bool       `json:"is_sustainable"`
	IsFallback       bool       `json:"is_fallback"`
	Saved            bool       `json:"saved"`
	Warnings         []string   `json:"warnings,omitempty"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
}

// RouteService is the application service orchestrating route estimation.
type RouteService struct {
	estimator *routeDomain.Estimator
	repo      routeDomain.RouteRepository
	events    eventPublisher
	metrics   *metrics.Collector
	logger    *zap.Logger
}

// NewRouteService creates a new RouteService.
func NewRouteService(
	estimator *routeDomain.Estimator,
	repo routeDomain.RouteRepository,
	producer kafka.Publisher,
	m *metrics.Collector,
	logger *zap.Logger,
) *RouteService {
	return &RouteService{
		estimator: estimator,
		repo:      repo,
		events:    eventPublisher{producer: producer, logger: logger},
		metrics:   m,
		logger:    logger,
	}
}

// EstimateRoute estimates a route and, for signed-in users, saves it to their
// history. A failed save still returns the estimate, with a warning.
func (s *RouteService) EstimateRoute(ctx context.Context, userID *uuid.UUID, req EstimateRouteRequest) (*RouteEstimateDTO, error) {
	request, err := routeDomain.NewRequest(req.Origin, req.Destination, req.Modes, req.Objective)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	est, err := s.estimator.Estimate(ctx, request)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveEstimate(est.Objective().String(), est.IsFallback(), time.Since(start))

	result := estimateToDTO(request.Origin, request.Destination, est)
	if est.IsFallback() {
		s.logger.Warn("route estimate used fallback figures",
			zap.String("primary_mode", est.PrimaryMode().String()),
			zap.NamedError("cause", est.FallbackCause()),
		)
		result.Warnings = append(result.Warnings, WarningFallbackEstimate)
	}

	if userID == nil {
		return &result, nil
	}
	// the caller left while routing; nothing is saved
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	saved, err := routeDomain.NewSavedRoute(*userID, request, est)
	if err == nil {
		err = s.repo.Save(ctx, saved)
	}
	if err != nil {
		s.logger.Error("failed to save route",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		s.metrics.PersistFailed("routes")
		result.Warnings = append(result.Warnings, WarningNotSaved)
		return &result, nil
	}

	result = savedRouteToDTO(saved)
	if est.IsFallback() {
		result.Warnings = append(result.Warnings, WarningFallbackEstimate)
	}
	s.publishRouteEstimated(ctx, saved)
	return &result, nil
}

// ListRoutes returns a user's saved routes, newest first.
func (s *RouteService) ListRoutes(ctx context.Context, userID uuid.UUID, page, limit int) (*apperror.PaginatedResult[RouteEstimateDTO], error) {
	page, limit = apperror.NormalizePage(page, limit)
	routes, total, err := s.repo.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}

	dtos := make([]RouteEstimateDTO, 0, len(routes))
	for _, r := range routes {
		dtos = append(dtos, savedRouteToDTO(r))
	}
	result := apperror.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

func (s *RouteService) publishRouteEstimated(ctx context.Context, r *routeDomain.SavedRoute) {
	est := r.Estimate()
	evt := events.RouteEstimatedEvent{
		RouteID:          r.ID(),
		UserID:           r.UserID(),
		Origin:           r.Origin(),
		Destination:      r.Destination(),
		Modes:            modeStrings(est.Modes()),
		Objective:        est.Objective().String(),
		TotalTimeMinutes: est.TotalTimeMinutes(),
		TotalDistanceKm:  est.TotalDistanceKm(),
		EstimatedCost:    est.EstimatedCost(),
		IsFallback:       est.IsFallback(),
		OccurredAt:       time.Now().UTC(),
	}
	s.events.publish(ctx, events.TopicRouteEvents, events.RouteEstimated, r.ID().String(), evt)
}

func estimateToDTO(origin, destination string, est *routeDomain.RouteEstimate) RouteEstimateDTO {
	return RouteEstimateDTO{
		Origin:           origin,
		Destination:      destination,
		Modes:            modeStrings(est.Modes()),
		Objective:        est.Objective().String(),
		TotalTimeMinutes: est.TotalTimeMinutes(),
		TotalDistanceKm:  est.TotalDistanceKm(),
		EstimatedCost:    est.EstimatedCost(),
		IsSustainable:    est.Objective() == routeDomain.ObjectiveSustainable,
		IsFallback:       est.IsFallback(),
	}
}

func savedRouteToDTO(r *routeDomain.SavedRoute) RouteEstimateDTO {
	dto := estimateToDTO(r.Origin(), r.Destination(), r.Estimate())
	id := r.ID()
	createdAt := r.CreatedAt()
	dto.ID = &id
	dto.CreatedAt = &createdAt
	dto.Saved = true
	return dto
}

func modeStrings(modes []routeDomain.Mode) []string {
	out := make([]string, len(modes))
	for i, m := range modes {
		out[i] = m.String()
	}
	return out
}
