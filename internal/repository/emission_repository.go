package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/urbanmove/service-mobility/internal/domain/emission"
)

// EmissionModel is the GORM model for the emissions_history table.
type EmissionModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	DistanceKm     float64   `gorm:"not null"`
	Mode           string    `gorm:"type:varchar(20);not null"`
	CO2GeneratedKg float64   `gorm:"column:co2_generated_kg;not null"`
	CO2AvoidedKg   float64   `gorm:"column:co2_avoided_kg;not null"`
	CreatedAt      time.Time `gorm:"not null;index"`
}

// TableName sets the table name.
func (EmissionModel) TableName() string { return "emissions_history" }

// GormEmissionRepository implements RecordRepository using GORM.
type GormEmissionRepository struct {
	db *gorm.DB
}

// NewGormEmissionRepository creates a new GormEmissionRepository.
func NewGormEmissionRepository(db *gorm.DB) *GormEmissionRepository {
	return &GormEmissionRepository{db: db}
}

// Save persists a new emission record.
func (r *GormEmissionRepository) Save(ctx context.Context, record *emission.Record) error {
	model := toEmissionModel(record)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save emission record: %w", err)
	}
	return nil
}

// FindByUserID retrieves a user's records with pagination, newest first.
func (r *GormEmissionRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*emission.Record, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&EmissionModel{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count emission records: %w", err)
	}

	var models []EmissionModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find emission records: %w", err)
	}

	records := make([]*emission.Record, 0, len(models))
	for i := range models {
		record, err := toEmissionDomain(&models[i])
		if err != nil {
			return nil, 0, err
		}
		records = append(records, record)
	}
	return records, total, nil
}

// TotalAvoidedByUser sums the CO2 a user avoided.
func (r *GormEmissionRepository) TotalAvoidedByUser(ctx context.Context, userID uuid.UUID) (float64, error) {
	var total float64
	if err := r.db.WithContext(ctx).Model(&EmissionModel{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(co2_avoided_kg), 0)").
		Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to sum user emissions: %w", err)
	}
	return total, nil
}

// TotalAvoided sums the CO2 avoided by every user.
func (r *GormEmissionRepository) TotalAvoided(ctx context.Context) (float64, error) {
	var total float64
	if err := r.db.WithContext(ctx).Model(&EmissionModel{}).
		Select("COALESCE(SUM(co2_avoided_kg), 0)").
		Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to sum emissions: %w", err)
	}
	return total, nil
}

func toEmissionModel(r *emission.Record) EmissionModel {
	res := r.Result()
	return EmissionModel{
		ID:             r.ID(),
		UserID:         r.UserID(),
		DistanceKm:     res.DistanceKm,
		Mode:           res.Mode.String(),
		CO2GeneratedKg: res.CO2GeneratedKg,
		CO2AvoidedKg:   res.CO2AvoidedKg,
		CreatedAt:      r.CreatedAt(),
	}
}

func toEmissionDomain(m *EmissionModel) (*emission.Record, error) {
	mode, err := emission.ParseMode(m.Mode)
	if err != nil {
		return nil, fmt.Errorf("emission record %s: %w", m.ID, err)
	}
	return emission.ReconstructRecord(m.ID, m.UserID, emission.Result{
		DistanceKm:     m.DistanceKm,
		Mode:           mode,
		CO2GeneratedKg: m.CO2GeneratedKg,
		CO2AvoidedKg:   m.CO2AvoidedKg,
	}, m.CreatedAt), nil
}
