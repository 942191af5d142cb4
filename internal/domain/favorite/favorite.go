// Package favorite models a user's favorite transit lines.
package favorite

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/urbanmove/service-mobility/internal/platform/apperror"
)

// MaxLineNumberLength bounds the stored line identifier.
const MaxLineNumberLength = 32

// Favorite is a (user, line) membership.
type Favorite struct {
	userID     uuid.UUID
	lineNumber string
	createdAt  time.Time
}

// NewFavorite validates and creates a Favorite.
func NewFavorite(userID uuid.UUID, lineNumber string) (*Favorite, error) {
	if userID == uuid.Nil {
		return nil, apperror.NewValidationError("user ID is required", "user_id")
	}
	line, err := NormalizeLine(lineNumber)
	if err != nil {
		return nil, err
	}
	return &Favorite{userID: userID, lineNumber: line, createdAt: time.Now().UTC()}, nil
}

// ReconstructFavorite rebuilds a Favorite from persistence.
func ReconstructFavorite(userID uuid.UUID, lineNumber string, createdAt time.Time) *Favorite {
	return &Favorite{userID: userID, lineNumber: lineNumber, createdAt: createdAt}
}

func (f *Favorite) UserID() uuid.UUID { return f.userID }
func (f *Favorite) LineNumber() string { return f.lineNumber }
func (f *Favorite) CreatedAt() time.Time { return f.createdAt }

// NormalizeLine trims a line identifier and checks its length.
func NormalizeLine(lineNumber string) (string, error) {
	line := strings.TrimSpace(lineNumber)
	if line == "" || utf8.RuneCountInString(line) > MaxLineNumberLength {
		return "", apperror.NewValidationError("line number is required and must be at most 32 characters", "line_number")
	}
	return line, nil
}
