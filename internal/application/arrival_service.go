package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/urbanmove/service-mobility/internal/domain/arrival"
	"github.com/urbanmove/service-mobility/internal/domain/favorite"
	"github.com/urbanmove/service-mobility/internal/domain/profile"
	"github.com/urbanmove/service-mobility/internal/platform/apperror"
	"github.com/urbanmove/service-mobility/internal/platform/metrics"
)

// AlertPublisher notifies subscribers that a favorited line is arriving.
type AlertPublisher interface {
	PublishArrivalAlert(ctx context.Context, a arrival.Arrival) error
}

// LocationDTO is the user's registered home address.
type LocationDTO struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Full    string `json:"full"`
}

// BoardDTO is the arrivals board of one user.
type BoardDTO struct {
	Source      string               `json:"source"`
	Location    *LocationDTO         `json:"location"`
	Arrivals    []arrival.BoardEntry `json:"arrivals"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// ArrivalService serves the arrivals board from one configured source and
// ingests the live feed.
type ArrivalService struct {
	source    arrival.Source
	favorites favorite.FavoriteRepository
	profiles  profile.ProfileRepository
	feed      arrival.FeedStore
	alerts    AlertPublisher
	metrics   *metrics.Collector
	logger    *zap.Logger
}

// NewArrivalService creates an ArrivalService. feed and alerts may be nil
// when the live feed is not consumed.
func NewArrivalService(
	source arrival.Source,
	favorites favorite.FavoriteRepository,
	profiles profile.ProfileRepository,
	feed arrival.FeedStore,
	alerts AlertPublisher,
	m *metrics.Collector,
	logger *zap.Logger,
) *ArrivalService {
	return &ArrivalService{
		source:    source,
		favorites: favorites,
		profiles:  profiles,
		feed:      feed,
		alerts:    alerts,
		metrics:   m,
		logger:    logger,
	}
}

// Board lists upcoming arrivals with the user's favorites flagged.
func (s *ArrivalService) Board(ctx context.Context, userID uuid.UUID) (*BoardDTO, error) {
	arrivals, err := s.source.Arrivals(ctx)
	if err != nil {
		s.logger.Error("failed to read arrivals",
			zap.String("source", string(s.source.Kind())),
			zap.Error(err),
		)
		return nil, apperror.NewUnavailableError("arrivals source", err)
	}

	lines, err := s.favorites.ListLines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	favorites := make(map[string]bool, len(lines))
	for _, l := range lines {
		favorites[l] = true
	}

	return &BoardDTO{
		Source:      string(s.source.Kind()),
		Location:    s.location(ctx, userID),
		Arrivals:    arrival.BuildBoard(arrivals, favorites),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// location is best effort: the board is still served without it.
func (s *ArrivalService) location(ctx context.Context, userID uuid.UUID) *LocationDTO {
	if s.profiles == nil {
		return nil
	}
	p, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if !apperror.Is(err, apperror.CodeNotFound) {
			s.logger.Warn("failed to load user location", zap.String("user_id", userID.String()), zap.Error(err))
		}
		return nil
	}
	addr := p.Address()
	if !addr.IsSet() {
		return nil
	}
	return &LocationDTO{Address: addr.Address, City: addr.City, State: addr.State, Full: addr.Full()}
}

// Ingest stores a live feed snapshot and alerts on favorited lines that are arriving.
func (s *ArrivalService) Ingest(ctx context.Context, arrivals []arrival.Arrival, receivedAt time.Time) error {
	if s.feed == nil {
		return errors.New("live feed store not configured")
	}
	arrivals = arrival.Earliest(arrivals)
	if len(arrivals) == 0 {
		return nil
	}
	if err := s.feed.Upsert(ctx, arrivals, receivedAt); err != nil {
		return fmt.Errorf("failed to store live arrivals: %w", err)
	}
	s.metrics.ArrivalsIngestedAdd(len(arrivals))

	s.alertArriving(ctx, arrivals)
	return nil
}

func (s *ArrivalService) alertArriving(ctx context.Context, arrivals []arrival.Arrival) {
	if s.alerts == nil {
		return
	}
	var arriving []arrival.Arrival
	var lines []string
	for _, a := range arrivals {
		if a.Status() == arrival.StatusArriving {
			arriving = append(arriving, a)
			lines = append(lines, a.LineNumber)
		}
	}
	if len(arriving) == 0 {
		return
	}

	favorited, err := s.favorites.AnyFavorited(ctx, lines)
	if err != nil {
		s.logger.Error("failed to look up favorited lines", zap.Error(err))
		return
	}
	for _, a := range arriving {
		if !favorited[a.LineNumber] {
			continue
		}
		if err := s.alerts.PublishArrivalAlert(ctx, a); err != nil {
			s.logger.Warn("failed to publish arrival alert",
				zap.String("line_number", a.LineNumber),
				zap.Error(err),
			)
		}
	}
}
