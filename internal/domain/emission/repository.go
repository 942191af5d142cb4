package emission

import (
	"context"

	"github.com/google/uuid"
)

// RecordRepository defines persistence operations for emission history.
type RecordRepository interface {
	Save(ctx context.Context, record *Record) error
	FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*Record, int64, error)
	TotalAvoidedByUser(ctx context.Context, userID uuid.UUID) (float64, error)
	TotalAvoided(ctx context.Context) (float64, error)
}
