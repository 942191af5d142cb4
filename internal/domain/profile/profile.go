package profile

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/urbanmove/service-mobility/internal/platform/apperror"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// Profile is the aggregate root for a registered user.
type Profile struct {
	id           uuid.UUID
	fullName     string
	email        string
	passwordHash string
	address      Address
	version      int64
	createdAt    time.Time
	updatedAt    time.Time
}

// NewProfile creates a profile with validated identity fields. The password
// must already be hashed.
func NewProfile(fullName, email, passwordHash string) (*Profile, error) {
	var invalid []string
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		invalid = append(invalid, "full_name")
	}
	normalized, err := NormalizeEmail(email)
	if err != nil {
		invalid = append(invalid, "email")
	}
	if passwordHash == "" {
		invalid = append(invalid, "password")
	}
	if len(invalid) > 0 {
		return nil, apperror.NewFieldsError(invalid...)
	}

	now := time.Now().UTC()
	return &Profile{
		id:           uuid.New(),
		fullName:     fullName,
		email:        normalized,
		passwordHash: passwordHash,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a Profile from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	fullName, email, passwordHash string,
	address Address,
	version int64,
	createdAt, updatedAt time.Time,
) *Profile {
	return &Profile{
		id:           id,
		fullName:     fullName,
		email:        email,
		passwordHash: passwordHash,
		address:      address,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// --- Getters ---

func (p *Profile) ID() uuid.UUID { return p.id }
func (p *Profile) FullName() string { return p.fullName }
func (p *Profile) Email() string { return p.email }
func (p *Profile) PasswordHash() string { return p.passwordHash }
func (p *Profile) Address() Address { return p.address }
func (p *Profile) Version() int64 { return p.version }
func (p *Profile) CreatedAt() time.Time { return p.createdAt }
func (p *Profile) UpdatedAt() time.Time { return p.updatedAt }

// --- Behavior ---

// UpdateAddress replaces the home address.
func (p *Profile) UpdateAddress(addr Address) error {
	addr = addr.trimmed()
	if err := addr.Validate(); err != nil {
		return err
	}
	p.address = addr
	p.version++
	p.updatedAt = time.Now().UTC()
	return nil
}

// Rename changes the display name.
func (p *Profile) Rename(fullName string) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return apperror.NewValidationError("full name is required", "full_name")
	}
	p.fullName = fullName
	p.version++
	p.updatedAt = time.Now().UTC()
	return nil
}

// NormalizeEmail lower-cases and validates an email address.
func NormalizeEmail(email string) (string, error) {
	e := strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e {
		return "", apperror.NewValidationError("invalid email", "email")
	}
	return e, nil
}

// ValidatePassword checks the plain-text password before hashing.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return apperror.NewValidationError("password must be at least 6 characters", "password")
	}
	if len(password) > MaxPasswordBytes {
		return apperror.NewValidationError("password must be at most 72 bytes", "password")
	}
	return nil
}
