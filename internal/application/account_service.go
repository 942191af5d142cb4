package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/urbanmove/service-mobility/internal/domain/emission"
	profileDomain "github.com/urbanmove/service-mobility/internal/domain/profile"
	routeDomain "github.com/urbanmove/service-mobility/internal/domain/route"
	"github.com/urbanmove/service-mobility/internal/platform/apperror"
	"github.com/urbanmove/service-mobility/internal/platform/auth"
)

// recentRoutesLimit is how many saved routes the profile overview shows.
const recentRoutesLimit = 5

// SignUpRequest is the request DTO for creating an account.
type SignUpRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignInRequest is the request DTO for opening a session.
type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateAddressRequest is the request DTO for the home address.
type UpdateAddressRequest struct {
	Address    string  `json:"address"`
	Complement string  `json:"complement"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	ZipCode    string  `json:"zip_code"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// SessionDTO is returned on sign-up and sign-in.
type SessionDTO struct {
	Token     string    `json:"token"`
	SessionID string    `json:"session_id"`
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProfileDTO is the API response representation of a profile.
type ProfileDTO struct {
	ID        uuid.UUID              `json:"id"`
	FullName  string                 `json:"full_name"`
	Email     string                 `json:"email"`
	Address   *profileDomain.Address `json:"address"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// ProfileStatsDTO summarises a user's activity.
type ProfileStatsDTO struct {
	TotalCO2AvoidedKg float64 `json:"total_co2_avoided_kg"`
	TotalRoutes       int64   `json:"total_routes"`
}

// ProfileOverviewDTO is the profile page: identity, stats and recent routes.
type ProfileOverviewDTO struct {
	Profile      ProfileDTO         `json:"profile"`
	Stats        ProfileStatsDTO    `json:"stats"`
	RecentRoutes []RouteEstimateDTO `json:"recent_routes"`
}

// AccountService implements sign-up, sessions and profile management.
type AccountService struct {
	profiles  profileDomain.ProfileRepository
	routes    routeDomain.RouteRepository
	emissions emission.RecordRepository
	sessions  *auth.SessionManager
	logger    *zap.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(
	profiles profileDomain.ProfileRepository,
	routes routeDomain.RouteRepository,
	emissions emission.RecordRepository,
	sessions *auth.SessionManager,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		profiles:  profiles,
		routes:    routes,
		emissions: emissions,
		sessions:  sessions,
		logger:    logger,
	}
}

// SignUp registers a user and opens their first session.
func (s *AccountService) SignUp(ctx context.Context, req SignUpRequest) (*SessionDTO, error) {
	if err := profileDomain.ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	p, err := profileDomain.NewProfile(req.FullName, req.Email, hash)
	if err != nil {
		return nil, err
	}
	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", zap.String("user_id", p.ID().String()))
	return s.openSession(ctx, p)
}

// SignIn checks credentials and opens a session.
func (s *AccountService) SignIn(ctx context.Context, req SignInRequest) (*SessionDTO, error) {
	email, err := profileDomain.NormalizeEmail(req.Email)
	if err != nil {
		return nil, apperror.NewUnauthorizedError("invalid email or password")
	}
	p, err := s.profiles.FindByEmail(ctx, email)
	if err != nil {
		if apperror.Is(err, apperror.CodeNotFound) {
			return nil, apperror.NewUnauthorizedError("invalid email or password")
		}
		return nil, err
	}
	if !auth.CheckPassword(p.PasswordHash(), req.Password) {
		return nil, apperror.NewUnauthorizedError("invalid email or password")
	}
	return s.openSession(ctx, p)
}

// SignOut closes the session.
func (s *AccountService) SignOut(ctx context.Context, session auth.Session) error {
	if err := s.sessions.Close(ctx, session); err != nil {
		return err
	}
	s.logger.Info("user signed out", zap.String("user_id", session.UserID.String()))
	return nil
}

// Overview returns the profile with activity stats and the latest routes.
func (s *AccountService) Overview(ctx context.Context, userID uuid.UUID) (*ProfileOverviewDTO, error) {
	p, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	avoided, err := s.emissions.TotalAvoidedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum avoided emissions: %w", err)
	}
	routes, total, err := s.routes.FindByUserID(ctx, userID, 1, recentRoutesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent routes: %w", err)
	}

	recent := make([]RouteEstimateDTO, 0, len(routes))
	for _, r := range routes {
		recent = append(recent, savedRouteToDTO(r))
	}
	return &ProfileOverviewDTO{
		Profile:      toProfileDTO(p),
		Stats:        ProfileStatsDTO{TotalCO2AvoidedKg: avoided, TotalRoutes: total},
		RecentRoutes: recent,
	}, nil
}

// UpdateAddress replaces the user's home address.
func (s *AccountService) UpdateAddress(ctx context.Context, userID uuid.UUID, req UpdateAddressRequest) (*ProfileDTO, error) {
	p, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := p.UpdateAddress(profileDomain.Address{
		Address:    req.Address,
		Complement: req.Complement,
		City:       req.City,
		State:      req.State,
		ZipCode:    req.ZipCode,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	}); err != nil {
		return nil, err
	}
	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	result := toProfileDTO(p)
	return &result, nil
}

func (s *AccountService) openSession(ctx context.Context, p *profileDomain.Profile) (*SessionDTO, error) {
	session, err := s.sessions.Open(ctx, p.ID(), p.Email())
	if err != nil {
		return nil, err
	}
	return &SessionDTO{
		Token:     session.Token,
		SessionID: session.ID,
		UserID:    session.UserID,
		Email:     session.Email,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func toProfileDTO(p *profileDomain.Profile) ProfileDTO {
	dto := ProfileDTO{
		ID:        p.ID(),
		FullName:  p.FullName(),
		Email:     p.Email(),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
	if addr := p.Address(); addr.IsSet() {
		dto.Address = &addr
	}
	return dto
}
