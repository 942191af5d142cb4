package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/urbanmove/service-mobility/internal/domain/emission"
	"github.com/urbanmove/service-mobility/internal/platform/apperror"
	"github.com/urbanmove/service-mobility/internal/platform/kafka"
	"github.com/urbanmove/service-mobility/internal/platform/metrics"
	"github.com/urbanmove/service-mobility/internal/proto/events"
)

// CalculateEmissionRequest holds the inputs of an emission calculation.
type CalculateEmissionRequest struct {
	DistanceKm *float64 `json:"distance_km"`
	Mode       string   `json:"mode"`
}

// EmissionDTO is the response representation of an emission calculation.
type EmissionDTO struct {
	ID             *uuid.UUID `json:"id,omitempty"`
	DistanceKm     float64    `json:"distance_km"`
	Mode           string     `json:"mode"`
	CO2GeneratedKg float64    `json:"co2_generated_kg"`
	CO2AvoidedKg   float64    `json:"co2_avoided_kg"`
	Saved          bool       `json:"saved"`
	Warnings       []string   `json:"warnings,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

// EmissionService handles emission calculations and history.
type EmissionService struct {
	repo    emission.RecordRepository
	events  eventPublisher
	metrics *metrics.Collector
	logger  *zap.Logger
}

// NewEmissionService creates a new EmissionService.
func NewEmissionService(repo emission.RecordRepository, producer kafka.Publisher, m *metrics.Collector, logger *zap.Logger) *EmissionService {
	return &EmissionService{
		repo:    repo,
		events:  eventPublisher{producer: producer, logger: logger},
		metrics: m,
		logger:  logger,
	}
}

// Calculate computes emissions and saves them for signed-in users.
func (s *EmissionService) Calculate(ctx context.Context, userID *uuid.UUID, req CalculateEmissionRequest) (*EmissionDTO, error) {
	var invalid []string
	if req.DistanceKm == nil {
		invalid = append(invalid, "distance_km")
	}
	mode, err := emission.ParseMode(req.Mode)
	if err != nil {
		invalid = append(invalid, "mode")
	}
	if len(invalid) > 0 {
		return nil, apperror.NewFieldsError(invalid...)
	}

	res, err := emission.Calculate(*req.DistanceKm, mode)
	if err != nil {
		return nil, err
	}
	s.metrics.EmissionInc(mode.String())

	dto := resultToDTO(res)
	if userID == nil {
		return &dto, nil
	}

	record, err := emission.NewRecord(*userID, res)
	if err == nil {
		err = s.repo.Save(ctx, record)
	}
	if err != nil {
		s.logger.Error("failed to save emission record",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		s.metrics.PersistFailed("emissions_history")
		dto.Warnings = append(dto.Warnings, WarningNotSaved)
		return &dto, nil
	}

	dto = recordToDTO(record)
	s.events.publish(ctx, events.TopicEmissionEvents, events.EmissionRecorded, record.ID().String(), events.EmissionRecordedEvent{
		RecordID:       record.ID(),
		UserID:         record.UserID(),
		Mode:           res.Mode.String(),
		DistanceKm:     res.DistanceKm,
		CO2GeneratedKg: res.CO2GeneratedKg,
		CO2AvoidedKg:   res.CO2AvoidedKg,
		OccurredAt:     time.Now().UTC(),
	})
	return &dto, nil
}

// Compare returns every mode's emissions over distanceKm relative to a car.
func (s *EmissionService) Compare(distanceKm float64) ([]emission.ModeComparison, error) {
	return emission.Comparison(distanceKm)
}

// History returns a user's saved calculations, newest first.
func (s *EmissionService) History(ctx context.Context, userID uuid.UUID, page, limit int) (*apperror.PaginatedResult[EmissionDTO], error) {
	page, limit = apperror.NormalizePage(page, limit)
	records, total, err := s.repo.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list emissions: %w", err)
	}
	dtos := make([]EmissionDTO, 0, len(records))
	for _, r := range records {
		dtos = append(dtos, recordToDTO(r))
	}
	result := apperror.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

func resultToDTO(res emission.Result) EmissionDTO {
	return EmissionDTO{
		DistanceKm:     res.DistanceKm,
		Mode:           res.Mode.String(),
		CO2GeneratedKg: res.CO2GeneratedKg,
		CO2AvoidedKg:   res.CO2AvoidedKg,
	}
}

func recordToDTO(r *emission.Record) EmissionDTO {
	dto := resultToDTO(r.Result())
	id := r.ID()
	createdAt := r.CreatedAt()
	dto.ID = &id
	dto.CreatedAt = &createdAt
	dto.Saved = true
	return dto
}
