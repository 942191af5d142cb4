package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	routeDomain "github.com/urbanmove/service-mobility/internal/domain/route"
)

// RouteModel is the GORM model for the routes table.
type RouteModel struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID      `gorm:"type:uuid;index;not null"`
	Origin        string         `gorm:"not null;size:500"`
	Destination   string         `gorm:"not null;size:500"`
	Modals        pq.StringArray `gorm:"type:text[];not null"`
	Objective     string         `gorm:"not null;size:20"`
	TotalTime     int            `gorm:"not null"`
	TotalDistance float64        `gorm:"not null"`
	EstimatedCost float64        `gorm:"not null"`
	IsSustainable bool           `gorm:"not null;default:false"`
	IsFallback    bool           `gorm:"not null;default:false;index"`
	CreatedAt     time.Time      `gorm:"not null;index"`
}

// TableName returns the table name for the GORM model.
func (RouteModel) TableName() string {
	return "routes"
}

// GormRouteRepository is the GORM-based implementation of RouteRepository.
type GormRouteRepository struct {
	db *gorm.DB
}

// NewGormRouteRepository creates a new GormRouteRepository.
func NewGormRouteRepository(db *gorm.DB) *GormRouteRepository {
	return &GormRouteRepository{db: db}
}

// Save persists a new saved route.
func (r *GormRouteRepository) Save(ctx context.Context, route *routeDomain.SavedRoute) error {
	model := toRouteModel(route)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save route: %w", err)
	}
	return nil
}

// FindByUserID retrieves a user's saved routes with pagination, newest first.
func (r *GormRouteRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*routeDomain.SavedRoute, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&RouteModel{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count user routes: %w", err)
	}

	var models []RouteModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find user routes: %w", err)
	}

	routes := make([]*routeDomain.SavedRoute, 0, len(models))
	for i := range models {
		route, err := toDomainRoute(&models[i])
		if err != nil {
			return nil, 0, err
		}
		routes = append(routes, route)
	}
	return routes, total, nil
}

// Stats aggregates every saved route that is not a fallback estimate.
func (r *GormRouteRepository) Stats(ctx context.Context) (routeDomain.Stats, error) {
	var row struct {
		RoutesCalculated   int64
		ActiveUsers        int64
		AverageTimeMinutes float64
	}
	if err := r.db.WithContext(ctx).Model(&RouteModel{}).
		Select("count(*) AS routes_calculated, count(DISTINCT user_id) AS active_users, COALESCE(avg(total_time), 0) AS average_time_minutes").
		Where("is_fallback = ?", false).
		Scan(&row).Error; err != nil {
		return routeDomain.Stats{}, fmt.Errorf("failed to aggregate routes: %w", err)
	}
	return routeDomain.Stats{
		RoutesCalculated:   row.RoutesCalculated,
		ActiveUsers:        row.ActiveUsers,
		AverageTimeMinutes: row.AverageTimeMinutes,
	}, nil
}

// PopularPairs returns the most saved origin/destination pairs.
func (r *GormRouteRepository) PopularPairs(ctx context.Context, limit int) ([]routeDomain.PopularPair, error) {
	var rows []struct {
		Origin      string
		Destination string
		Count       int64
	}
	if err := r.db.WithContext(ctx).Model(&RouteModel{}).
		Select("origin, destination, count(*) AS count").
		Where("is_fallback = ?", false).
		Group("origin, destination").
		Order("count DESC, origin, destination").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to rank route pairs: %w", err)
	}

	pairs := make([]routeDomain.PopularPair, len(rows))
	for i, row := range rows {
		pairs[i] = routeDomain.PopularPair{Origin: row.Origin, Destination: row.Destination, Count: row.Count}
	}
	return pairs, nil
}

// ModeCounts counts how often each mode was selected across saved routes.
func (r *GormRouteRepository) ModeCounts(ctx context.Context) (map[routeDomain.Mode]int64, error) {
	var rows []struct {
		Mode  string
		Count int64
	}
	if err := r.db.WithContext(ctx).
		Table("routes, unnest(routes.modals) AS mode").
		Select("mode, count(*) AS count").
		Where("routes.is_fallback = ?", false).
		Group("mode").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count modes: %w", err)
	}

	counts := make(map[routeDomain.Mode]int64, len(rows))
	for _, row := range rows {
		m, err := routeDomain.ParseMode(row.Mode)
		if err != nil {
			continue
		}
		counts[m] += row.Count
	}
	return counts, nil
}

// --- Conversion Helpers ---

func toRouteModel(route *routeDomain.SavedRoute) *RouteModel {
	est := route.Estimate()
	modals := make(pq.StringArray, 0, len(est.Modes()))
	for _, m := range est.Modes() {
		modals = append(modals, m.String())
	}
	return &RouteModel{
		ID:            route.ID(),
		UserID:        route.UserID(),
		Origin:        route.Origin(),
		Destination:   route.Destination(),
		Modals:        modals,
		Objective:     est.Objective().String(),
		TotalTime:     est.TotalTimeMinutes(),
		TotalDistance: est.TotalDistanceKm(),
		EstimatedCost: est.EstimatedCost(),
		IsSustainable: route.IsSustainable(),
		IsFallback:    est.IsFallback(),
		CreatedAt:     route.CreatedAt(),
	}
}

func toDomainRoute(m *RouteModel) (*routeDomain.SavedRoute, error) {
	modes := make([]routeDomain.Mode, 0, len(m.Modals))
	for _, raw := range m.Modals {
		mode, err := routeDomain.ParseMode(raw)
		if err != nil {
			return nil, fmt.Errorf("route %s: %w", m.ID, err)
		}
		modes = append(modes, mode)
	}
	objective, err := routeDomain.ParseObjective(m.Objective)
	if err != nil {
		return nil, fmt.Errorf("route %s: %w", m.ID, err)
	}

	est := routeDomain.ReconstructEstimate(modes, m.TotalTime, m.TotalDistance, m.EstimatedCost, objective, m.IsFallback)
	return routeDomain.ReconstructSavedRoute(m.ID, m.UserID, m.Origin, m.Destination, est, m.CreatedAt), nil
}
