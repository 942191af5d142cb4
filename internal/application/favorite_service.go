package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/urbanmove/service-mobility/internal/domain/favorite"
	"github.com/urbanmove/service-mobility/internal/platform/kafka"
	"github.com/urbanmove/service-mobility/internal/platform/metrics"
	"github.com/urbanmove/service-mobility/internal/proto/events"
)

// FavoriteDTO reports the membership of one line after an operation.
type FavoriteDTO struct {
	LineNumber string `json:"line_number"`
	Favorited  bool   `json:"favorited"`
}

// SetFavoriteRequest sets the desired membership of a line.
type SetFavoriteRequest struct {
	Favorite *bool `json:"favorite" binding:"required"`
}

// FavoriteService manages favorite transit lines.
type FavoriteService struct {
	repo    favorite.FavoriteRepository
	events  eventPublisher
	metrics *metrics.Collector
	logger  *zap.Logger
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(repo favorite.FavoriteRepository, producer kafka.Publisher, m *metrics.Collector, logger *zap.Logger) *FavoriteService {
	return &FavoriteService{
		repo:    repo,
		events:  eventPublisher{producer: producer, logger: logger},
		metrics: m,
		logger:  logger,
	}
}

// Toggle flips the membership of lineNumber.
func (s *FavoriteService) Toggle(ctx context.Context, userID uuid.UUID, lineNumber string) (*FavoriteDTO, error) {
	fav, err := favorite.NewFavorite(userID, lineNumber)
	if err != nil {
		return nil, err
	}
	exists, err := s.repo.Exists(ctx, userID, fav.LineNumber())
	if err != nil {
		return nil, fmt.Errorf("failed to check favorite: %w", err)
	}
	return s.apply(ctx, fav, !exists)
}

// Set makes the membership of lineNumber equal to desired. Repeating a call
// leaves the state unchanged.
func (s *FavoriteService) Set(ctx context.Context, userID uuid.UUID, lineNumber string, desired bool) (*FavoriteDTO, error) {
	fav, err := favorite.NewFavorite(userID, lineNumber)
	if err != nil {
		return nil, err
	}
	exists, err := s.repo.Exists(ctx, userID, fav.LineNumber())
	if err != nil {
		return nil, fmt.Errorf("failed to check favorite: %w", err)
	}
	if exists == desired {
		return &FavoriteDTO{LineNumber: fav.LineNumber(), Favorited: desired}, nil
	}
	return s.apply(ctx, fav, desired)
}

// List returns the user's favorite line numbers.
func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID) ([]string, error) {
	lines, err := s.repo.ListLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	if lines == nil {
		lines = []string{}
	}
	return lines, nil
}

func (s *FavoriteService) apply(ctx context.Context, fav *favorite.Favorite, favorited bool) (*FavoriteDTO, error) {
	var err error
	if favorited {
		err = s.repo.Add(ctx, fav)
	} else {
		err = s.repo.Remove(ctx, fav.UserID(), fav.LineNumber())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update favorite: %w", err)
	}

	s.metrics.FavoriteChanged(favorited)
	s.logger.Info("favorite changed",
		zap.String("user_id", fav.UserID().String()),
		zap.String("line_number", fav.LineNumber()),
		zap.Bool("favorited", favorited),
	)
	s.events.publish(ctx, events.TopicFavoriteEvents, events.FavoriteChanged, fav.UserID().String(), events.FavoriteChangedEvent{
		UserID:     fav.UserID(),
		LineNumber: fav.LineNumber(),
		Favorited:  favorited,
		OccurredAt: time.Now().UTC(),
	})
	return &FavoriteDTO{LineNumber: fav.LineNumber(), Favorited: favorited}, nil
}
