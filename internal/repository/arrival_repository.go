package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/urbanmove/service-mobility/internal/domain/arrival"
)

// lineStatusInactive marks transport lines hidden from the board.
const lineStatusInactive = "inactive"

// liveArrivalTTL is how long a live arrival stays on the board after it was received.
const liveArrivalTTL = 30 * time.Minute

// TransportLineModel is the GORM model for the curated transport_lines table.
type TransportLineModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	LineNumber  string     `gorm:"type:varchar(32);uniqueIndex;not null"`
	Name        string     `gorm:"type:varchar(200);not null"`
	Type        string     `gorm:"type:varchar(10);not null"`
	Status      string     `gorm:"type:varchar(30);not null;default:'active'"`
	NextArrival *time.Time `gorm:"type:timestamptz"`
	UpdatedAt   time.Time  `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName sets the table name.
func (TransportLineModel) TableName() string { return "transport_lines" }

// LiveArrivalModel is the GORM model for the live_arrivals table. It holds
// the latest feed entry of each line.
type LiveArrivalModel struct {
	LineNumber  string    `gorm:"type:varchar(32);primaryKey"`
	LineName    string    `gorm:"type:varchar(200)"`
	Destination string    `gorm:"type:varchar(200)"`
	Type        string    `gorm:"type:varchar(10);not null"`
	Minutes     int       `gorm:"not null"`
	ScheduledAt string    `gorm:"type:varchar(5);not null"`
	ReceivedAt  time.Time `gorm:"type:timestamptz;not null;index"`
}

// TableName sets the table name.
func (LiveArrivalModel) TableName() string { return "live_arrivals" }

// GormTransportLineRepository serves the board from the transport_lines table.
type GormTransportLineRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormTransportLineRepository creates a new GormTransportLineRepository.
func NewGormTransportLineRepository(db *gorm.DB) *GormTransportLineRepository {
	return &GormTransportLineRepository{db: db, now: time.Now}
}

// Kind identifies the static source.
func (r *GormTransportLineRepository) Kind() arrival.SourceKind { return arrival.SourceStatic }

// Arrivals lists the next arrival of every active line that has one scheduled.
func (r *GormTransportLineRepository) Arrivals(ctx context.Context) ([]arrival.Arrival, error) {
	var models []TransportLineModel
	if err := r.db.WithContext(ctx).
		Where("status <> ? AND next_arrival IS NOT NULL", lineStatusInactive).
		Order("next_arrival").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list transport lines: %w", err)
	}

	now := r.now()
	arrivals := make([]arrival.Arrival, 0, len(models))
	for _, m := range models {
		arrivals = append(arrivals, arrival.FromSchedule(m.LineNumber, m.Name, arrival.LineType(m.Type), m.NextArrival.In(now.Location()), now))
	}
	return arrivals, nil
}

// GormLiveArrivalRepository stores and serves the live arrivals feed.
type GormLiveArrivalRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormLiveArrivalRepository creates a new GormLiveArrivalRepository.
func NewGormLiveArrivalRepository(db *gorm.DB) *GormLiveArrivalRepository {
	return &GormLiveArrivalRepository{db: db, now: time.Now}
}

// Kind identifies the live source.
func (r *GormLiveArrivalRepository) Kind() arrival.SourceKind { return arrival.SourceLive }

// Upsert replaces the stored arrival of each line in arrivals. A line listed
// more than once keeps its soonest arrival.
func (r *GormLiveArrivalRepository) Upsert(ctx context.Context, arrivals []arrival.Arrival, receivedAt time.Time) error {
	arrivals = arrival.Earliest(arrivals)
	if len(arrivals) == 0 {
		return nil
	}
	models := make([]LiveArrivalModel, 0, len(arrivals))
	for _, a := range arrivals {
		models = append(models, LiveArrivalModel{
			LineNumber:  a.LineNumber,
			LineName:    a.LineName,
			Destination: a.Destination,
			Type:        string(a.Type),
			Minutes:     a.Minutes,
			ScheduledAt: a.ScheduledAt,
			ReceivedAt:  receivedAt.UTC(),
		})
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "line_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"line_name", "destination", "type", "minutes", "scheduled_at", "received_at"}),
	}).Create(&models).Error
	if err != nil {
		return fmt.Errorf("failed to upsert live arrivals: %w", err)
	}
	return nil
}

// Arrivals lists recent feed entries with minutes counted down since receipt.
func (r *GormLiveArrivalRepository) Arrivals(ctx context.Context) ([]arrival.Arrival, error) {
	now := r.now()
	var models []LiveArrivalModel
	if err := r.db.WithContext(ctx).
		Where("received_at >= ?", now.Add(-liveArrivalTTL).UTC()).
		Order("minutes, line_number").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list live arrivals: %w", err)
	}

	arrivals := make([]arrival.Arrival, 0, len(models))
	for _, m := range models {
		minutes := m.Minutes - int(now.Sub(m.ReceivedAt)/time.Minute)
		if minutes < 0 {
			minutes = 0
		}
		arrivals = append(arrivals, arrival.Arrival{
			LineNumber:  m.LineNumber,
			LineName:    m.LineName,
			Destination: m.Destination,
			Type:        arrival.LineType(m.Type),
			Minutes:     minutes,
			ScheduledAt: m.ScheduledAt,
		})
	}
	return arrivals, nil
}
