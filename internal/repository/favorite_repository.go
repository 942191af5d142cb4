package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/urbanmove/service-mobility/internal/domain/favorite"
)

// FavoriteModel is the GORM model for the user_favorites join table.
type FavoriteModel struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	LineNumber string    `gorm:"type:varchar(32);primaryKey;index"`
	CreatedAt  time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName sets the table name.
func (FavoriteModel) TableName() string { return "user_favorites" }

// GormFavoriteRepository implements FavoriteRepository using GORM.
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new GormFavoriteRepository.
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// Exists reports whether the user has favorited the line.
func (r *GormFavoriteRepository) Exists(ctx context.Context, userID uuid.UUID, lineNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&FavoriteModel{}).
		Where("user_id = ? AND line_number = ?", userID, lineNumber).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

// Add inserts the favorite, ignoring a row that already exists.
func (r *GormFavoriteRepository) Add(ctx context.Context, f *favorite.Favorite) error {
	model := FavoriteModel{UserID: f.UserID(), LineNumber: f.LineNumber(), CreatedAt: f.CreatedAt()}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Remove deletes the favorite if present.
func (r *GormFavoriteRepository) Remove(ctx context.Context, userID uuid.UUID, lineNumber string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND line_number = ?", userID, lineNumber).
		Delete(&FavoriteModel{}).Error; err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

// ListLines returns the user's favorite lines, oldest first.
func (r *GormFavoriteRepository) ListLines(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var lines []string
	if err := r.db.WithContext(ctx).Model(&FavoriteModel{}).
		Where("user_id = ?", userID).
		Order("created_at, line_number").
		Pluck("line_number", &lines).Error; err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return lines, nil
}

// AnyFavorited returns which of lineNumbers at least one user favorited.
func (r *GormFavoriteRepository) AnyFavorited(ctx context.Context, lineNumbers []string) (map[string]bool, error) {
	out := make(map[string]bool)
	if len(lineNumbers) == 0 {
		return out, nil
	}
	var lines []string
	if err := r.db.WithContext(ctx).Model(&FavoriteModel{}).
		Distinct("line_number").
		Where("line_number IN ?", lineNumbers).
		Pluck("line_number", &lines).Error; err != nil {
		return nil, fmt.Errorf("failed to look up favorited lines: %w", err)
	}
	for _, l := range lines {
		out[l] = true
	}
	return out, nil
}
