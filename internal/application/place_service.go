package application

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/urbanmove/service-mobility/internal/domain/place"
	"github.com/urbanmove/service-mobility/internal/platform/apperror"
)

// PredictionCache caches autocomplete results.
type PredictionCache interface {
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
}

// PlaceService completes addresses through the geocoding collaborator.
type PlaceService struct {
	provider place.Provider
	cache    PredictionCache
	logger   *zap.Logger
}

// NewPlaceService creates a PlaceService. cache may be nil.
func NewPlaceService(provider place.Provider, cache PredictionCache, logger *zap.Logger) *PlaceService {
	return &PlaceService{provider: provider, cache: cache, logger: logger}
}

// Predict returns address suggestions for a partial input. It never fails:
// short input or a failing provider yields an empty list.
func (s *PlaceService) Predict(ctx context.Context, input string) []place.Prediction {
	query, ok := place.NormalizeQuery(input)
	if !ok {
		return []place.Prediction{}
	}
	key := place.DefaultCountry + ":" + strings.ToLower(query)

	if s.cache != nil {
		var cached []place.Prediction
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("prediction cache read failed", zap.Error(err))
		} else if found {
			return cached
		}
	}

	predictions, err := s.provider.Autocomplete(ctx, query, place.DefaultCountry)
	if err != nil {
		if !errors.Is(err, place.ErrNoCredential) {
			s.logger.Warn("address autocomplete failed", zap.String("input", query), zap.Error(err))
		}
		return []place.Prediction{}
	}
	if predictions == nil {
		predictions = []place.Prediction{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, predictions); err != nil {
			s.logger.Warn("prediction cache write failed", zap.Error(err))
		}
	}
	return predictions
}

// Details resolves a place id into a structured address.
func (s *PlaceService) Details(ctx context.Context, placeID string) (*place.Details, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return nil, apperror.NewValidationError("place id is required", "place_id")
	}

	details, err := s.provider.Details(ctx, placeID)
	if err != nil {
		if errors.Is(err, place.ErrNotFound) {
			return nil, apperror.NewNotFoundError("place", placeID)
		}
		s.logger.Warn("place details failed", zap.String("place_id", placeID), zap.Error(err))
		return nil, apperror.NewUnavailableError("geocoding service", err)
	}
	return &details, nil
}
