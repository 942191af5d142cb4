package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	profileDomain "github.com/urbanmove/service-mobility/internal/domain/profile"
	"github.com/urbanmove/service-mobility/internal/platform/apperror"
)

// ProfileModel is the GORM model for the profiles table.
type ProfileModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName     string    `gorm:"type:varchar(200);not null"`
	Email        string    `gorm:"type:varchar(320);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(100);not null"`
	Address      string    `gorm:"type:varchar(500)"`
	Complement   string    `gorm:"type:varchar(200)"`
	City         string    `gorm:"type:varchar(100)"`
	State        string    `gorm:"type:varchar(50)"`
	ZipCode      string    `gorm:"type:varchar(20)"`
	Latitude     float64   `gorm:"type:double precision"`
	Longitude    float64   `gorm:"type:double precision"`
	Version      int64     `gorm:"not null;default:1"`
	CreatedAt    time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt    time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (ProfileModel) TableName() string { return "profiles" }

// GormProfileRepository implements ProfileRepository using GORM.
type GormProfileRepository struct {
	db *gorm.DB
}

func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

func (r *GormProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*profileDomain.Profile, error) {
	var model ProfileModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFoundError("Profile", id.String())
		}
		return nil, fmt.Errorf("failed to find profile by ID: %w", err)
	}
	return toProfileDomain(&model), nil
}

func (r *GormProfileRepository) FindByEmail(ctx context.Context, email string) (*profileDomain.Profile, error) {
	var model ProfileModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFoundError("Profile", email)
		}
		return nil, fmt.Errorf("failed to find profile by email: %w", err)
	}
	return toProfileDomain(&model), nil
}

func (r *GormProfileRepository) Save(ctx context.Context, p *profileDomain.Profile) error {
	if err := r.db.WithContext(ctx).Create(toProfileModel(p)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.NewConflictError("email is already registered")
		}
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// Update persists changes only if nobody else changed the profile since it was loaded.
func (r *GormProfileRepository) Update(ctx context.Context, p *profileDomain.Profile) error {
	model := toProfileModel(p)
	previousVersion := p.Version() - 1

	result := r.db.WithContext(ctx).
		Model(&ProfileModel{}).
		Where("id = ? AND version = ?", model.ID, previousVersion).
		Updates(map[string]interface{}{
			"full_name":  model.FullName,
			"address":    model.Address,
			"complement": model.Complement,
			"city":       model.City,
			"state":      model.State,
			"zip_code":   model.ZipCode,
			"latitude":   model.Latitude,
			"longitude":  model.Longitude,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NewConflictError("profile was modified by another transaction")
	}
	return nil
}

// --- Conversions ---

func toProfileModel(p *profileDomain.Profile) *ProfileModel {
	addr := p.Address()
	return &ProfileModel{
		ID:           p.ID(),
		FullName:     p.FullName(),
		Email:        p.Email(),
		PasswordHash: p.PasswordHash(),
		Address:      addr.Address,
		Complement:   addr.Complement,
		City:         addr.City,
		State:        addr.State,
		ZipCode:      addr.ZipCode,
		Latitude:     addr.Latitude,
		Longitude:    addr.Longitude,
		Version:      p.Version(),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
}

func toProfileDomain(m *ProfileModel) *profileDomain.Profile {
	return profileDomain.Reconstruct(
		m.ID,
		m.FullName, m.Email, m.PasswordHash,
		profileDomain.Address{
			Address:    m.Address,
			Complement: m.Complement,
			City:       m.City,
			State:      m.State,
			ZipCode:    m.ZipCode,
			Latitude:   m.Latitude,
			Longitude:  m.Longitude,
		},
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}
