package emission

import (
	"time"

	"github.com/google/uuid"

	"github.com/urbanmove/service-mobility/internal/platform/apperror"
)

// Record is the aggregate root of a user's emission history.
type Record struct {
	id        uuid.UUID
	userID    uuid.UUID
	result    Result
	createdAt time.Time
}

// NewRecord stores result for userID.
func NewRecord(userID uuid.UUID, result Result) (*Record, error) {
	if userID == uuid.Nil {
		return nil, apperror.NewValidationError("user ID is required", "user_id")
	}
	if !result.Mode.IsValid() {
		return nil, apperror.NewValidationError("unknown mode: "+string(result.Mode), "mode")
	}
	return &Record{
		id:        uuid.New(),
		userID:    userID,
		result:    result,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructRecord rebuilds a Record from persistence.
func ReconstructRecord(id, userID uuid.UUID, result Result, createdAt time.Time) *Record {
	return &Record{id: id, userID: userID, result: result, createdAt: createdAt}
}

// Getters.
func (r *Record) ID() uuid.UUID { return r.id }
func (r *Record) UserID() uuid.UUID { return r.userID }
func (r *Record) Result() Result { return r.result }
func (r *Record) CreatedAt() time.Time { return r.createdAt }
