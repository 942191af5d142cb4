package favorite

import (
	"context"

	"github.com/google/uuid"
)

// FavoriteRepository stores favorites as one row per (user, line).
type FavoriteRepository interface {
	// Exists reports whether the user has favorited the line.
	Exists(ctx context.Context, userID uuid.UUID, lineNumber string) (bool, error)

	// Add inserts the favorite. Adding an existing favorite is a no-op.
	Add(ctx context.Context, favorite *Favorite) error

	// Remove deletes the favorite. Removing a missing favorite is a no-op.
	Remove(ctx context.Context, userID uuid.UUID, lineNumber string) error

	// ListLines returns the user's favorite line numbers in insertion order.
	ListLines(ctx context.Context, userID uuid.UUID) ([]string, error)

	// AnyFavorited returns the subset of lines favorited by at least one user.
	AnyFavorited(ctx context.Context, lineNumbers []string) (map[string]bool, error)
}
