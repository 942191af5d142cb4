// Package profile models registered users and their home address.
package profile

import (
	"context"

	"github.com/google/uuid"
)

// ProfileRepository defines persistence operations for profiles.
type ProfileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	FindByEmail(ctx context.Context, email string) (*Profile, error)
	// Save inserts a new profile; a taken email yields a conflict error.
	Save(ctx context.Context, profile *Profile) error
	// Update persists changes with optimistic locking on the version.
	Update(ctx context.Context, profile *Profile) error
}
