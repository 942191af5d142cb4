package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	routeDomain "github.com/urbanmove/service-mobility/internal/domain/route"
)

func TestDashboardSummary(t *testing.T) {
	routes := &memRouteRepo{
		stats: routeDomain.Stats{RoutesCalculated: 20, ActiveUsers: 3, AverageTimeMinutes: 37.46},
		pairs: []routeDomain.PopularPair{
			{Origin: "A", Destination: "B", Count: 9},
			{Origin: "C", Destination: "D", Count: 5},
			{Origin: "E", Destination: "F", Count: 3},
			{Origin: "G", Destination: "H", Count: 2},
			{Origin: "I", Destination: "J", Count: 1},
		},
		modes: map[routeDomain.Mode]int64{
			routeDomain.ModeBus:   5,
			routeDomain.ModeMetro: 3,
			routeDomain.ModeBike:  2,
		},
	}
	emissions := &memEmissionRepo{total: 12.346}
	svc := NewDashboardService(routes, emissions, zap.NewNop())

	dto, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12.35, dto.TotalCO2AvoidedKg)
	assert.Equal(t, 37.5, dto.AverageRouteTimeMinutes)
	assert.Equal(t, int64(3), dto.ActiveUsers)
	assert.Equal(t, int64(20), dto.RoutesCalculated)

	require.Len(t, dto.PopularRoutes, 4)
	assert.Equal(t, "A", dto.PopularRoutes[0].Origin)

	require.Len(t, dto.ModalDistribution, 5)
	assert.Equal(t, ModalShareDTO{Mode: "bus", Count: 5, Percentage: 50}, dto.ModalDistribution[0])
	assert.Equal(t, 30, dto.ModalDistribution[1].Percentage)
	assert.Equal(t, 20, dto.ModalDistribution[2].Percentage)
	assert.Equal(t, 0, dto.ModalDistribution[4].Percentage)
}

func TestDashboardSummary_Empty(t *testing.T) {
	svc := NewDashboardService(&memRouteRepo{}, &memEmissionRepo{}, zap.NewNop())

	dto, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Empty(t, dto.PopularRoutes)
	for _, share := range dto.ModalDistribution {
		assert.Zero(t, share.Percentage)
	}
}
