package application

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/urbanmove/service-mobility/internal/domain/arrival"
	"github.com/urbanmove/service-mobility/internal/domain/emission"
	"github.com/urbanmove/service-mobility/internal/domain/favorite"
	"github.com/urbanmove/service-mobility/internal/domain/place"
	profileDomain "github.com/urbanmove/service-mobility/internal/domain/profile"
	routeDomain "github.com/urbanmove/service-mobility/internal/domain/route"
	"github.com/urbanmove/service-mobility/internal/platform/apperror"
	"github.com/urbanmove/service-mobility/internal/platform/auth"
	"github.com/urbanmove/service-mobility/internal/platform/kafka"
)

var errStoreDown = errors.New("store unavailable")

// --- routing ---

type fakeRouting struct {
	result routeDomain.RoutingResult
	err    error
	calls  int
}

func (f *fakeRouting) Route(_ context.Context, _, _ string, _ routeDomain.TravelMode) (routeDomain.RoutingResult, error) {
	f.calls++
	return f.result, f.err
}

// --- routes ---

type memRouteRepo struct {
	saved   []*routeDomain.SavedRoute
	saveErr error
	stats   routeDomain.Stats
	pairs   []routeDomain.PopularPair
	modes   map[routeDomain.Mode]int64
}

func (r *memRouteRepo) Save(_ context.Context, route *routeDomain.SavedRoute) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, route)
	return nil
}

func (r *memRouteRepo) FindByUserID(_ context.Context, userID uuid.UUID, page, limit int) ([]*routeDomain.SavedRoute, int64, error) {
	var owned []*routeDomain.SavedRoute
	for i := len(r.saved) - 1; i >= 0; i-- {
		if r.saved[i].UserID() == userID {
			owned = append(owned, r.saved[i])
		}
	}
	total := int64(len(owned))
	start := (page - 1) * limit
	if start >= len(owned) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[start:end], total, nil
}

func (r *memRouteRepo) Stats(context.Context) (routeDomain.Stats, error) { return r.stats, nil }

func (r *memRouteRepo) PopularPairs(_ context.Context, limit int) ([]routeDomain.PopularPair, error) {
	if len(r.pairs) > limit {
		return r.pairs[:limit], nil
	}
	return r.pairs, nil
}

func (r *memRouteRepo) ModeCounts(context.Context) (map[routeDomain.Mode]int64, error) {
	return r.modes, nil
}

// --- emissions ---

type memEmissionRepo struct {
	records []*emission.Record
	saveErr error
	total   float64
}

func (r *memEmissionRepo) Save(_ context.Context, record *emission.Record) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.records = append(r.records, record)
	return nil
}

func (r *memEmissionRepo) FindByUserID(_ context.Context, userID uuid.UUID, _, _ int) ([]*emission.Record, int64, error) {
	var owned []*emission.Record
	for _, rec := range r.records {
		if rec.UserID() == userID {
			owned = append(owned, rec)
		}
	}
	return owned, int64(len(owned)), nil
}

func (r *memEmissionRepo) TotalAvoidedByUser(_ context.Context, userID uuid.UUID) (float64, error) {
	var sum float64
	for _, rec := range r.records {
		if rec.UserID() == userID {
			sum += rec.Result().CO2AvoidedKg
		}
	}
	return sum, nil
}

func (r *memEmissionRepo) TotalAvoided(context.Context) (float64, error) { return r.total, nil }

// --- favorites ---

type memFavoriteRepo struct {
	rows map[uuid.UUID][]string
	err  error
}

func newMemFavoriteRepo() *memFavoriteRepo {
	return &memFavoriteRepo{rows: make(map[uuid.UUID][]string)}
}

func (r *memFavoriteRepo) Exists(_ context.Context, userID uuid.UUID, line string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, l := range r.rows[userID] {
		if l == line {
			return true, nil
		}
	}
	return false, nil
}

func (r *memFavoriteRepo) Add(ctx context.Context, f *favorite.Favorite) error {
	if ok, _ := r.Exists(ctx, f.UserID(), f.LineNumber()); ok {
		return nil
	}
	r.rows[f.UserID()] = append(r.rows[f.UserID()], f.LineNumber())
	return nil
}

func (r *memFavoriteRepo) Remove(_ context.Context, userID uuid.UUID, line string) error {
	lines := r.rows[userID][:0]
	for _, l := range r.rows[userID] {
		if l != line {
			lines = append(lines, l)
		}
	}
	r.rows[userID] = lines
	return nil
}

func (r *memFavoriteRepo) ListLines(_ context.Context, userID uuid.UUID) ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	return append([]string(nil), r.rows[userID]...), nil
}

func (r *memFavoriteRepo) AnyFavorited(_ context.Context, lines []string) (map[string]bool, error) {
	out := make(map[string]bool)
	for _, owned := range r.rows {
		for _, l := range owned {
			for _, want := range lines {
				if l == want {
					out[l] = true
				}
			}
		}
	}
	return out, nil
}

// --- profiles ---

type memProfileRepo struct {
	byID map[uuid.UUID]*profileDomain.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{byID: make(map[uuid.UUID]*profileDomain.Profile)}
}

func (r *memProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*profileDomain.Profile, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, apperror.NewNotFoundError("profile", id.String())
	}
	return p, nil
}

func (r *memProfileRepo) FindByEmail(_ context.Context, email string) (*profileDomain.Profile, error) {
	for _, p := range r.byID {
		if p.Email() == email {
			return p, nil
		}
	}
	return nil, apperror.NewNotFoundError("profile", email)
}

func (r *memProfileRepo) Save(ctx context.Context, p *profileDomain.Profile) error {
	if _, err := r.FindByEmail(ctx, p.Email()); err == nil {
		return apperror.NewConflictError("email already registered")
	}
	r.byID[p.ID()] = p
	return nil
}

func (r *memProfileRepo) Update(_ context.Context, p *profileDomain.Profile) error {
	r.byID[p.ID()] = p
	return nil
}

// --- sessions ---

type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]auth.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]auth.Session)}
}

func (s *memSessionStore) Save(_ context.Context, session auth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *memSessionStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	return ok, nil
}

func (s *memSessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// --- events ---

type recordingPublisher struct {
	events []kafka.CloudEvent
	topics []string
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic string, event kafka.CloudEvent) error {
	if p.err != nil {
		return p.err
	}
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

// --- arrivals ---

type staticSource struct {
	arrivals []arrival.Arrival
	err      error
}

func (s *staticSource) Kind() arrival.SourceKind { return arrival.SourceStatic }

func (s *staticSource) Arrivals(context.Context) ([]arrival.Arrival, error) {
	return s.arrivals, s.err
}

type memFeed struct {
	stored     []arrival.Arrival
	receivedAt time.Time
}

func (f *memFeed) Upsert(_ context.Context, arrivals []arrival.Arrival, receivedAt time.Time) error {
	f.stored = append(f.stored, arrivals...)
	f.receivedAt = receivedAt
	return nil
}

type recordingAlerts struct {
	lines []string
}

func (a *recordingAlerts) PublishArrivalAlert(_ context.Context, arr arrival.Arrival) error {
	a.lines = append(a.lines, arr.LineNumber)
	sort.Strings(a.lines)
	return nil
}

// --- places ---

type fakePlaces struct {
	predictions []place.Prediction
	details     place.Details
	err         error
	calls       int
}

func (f *fakePlaces) Autocomplete(context.Context, string, string) ([]place.Prediction, error) {
	f.calls++
	return f.predictions, f.err
}

func (f *fakePlaces) Details(context.Context, string) (place.Details, error) {
	f.calls++
	return f.details, f.err
}

type memCache struct {
	entries map[string][]place.Prediction
}

func (c *memCache) Get(_ context.Context, key string, dst interface{}) (bool, error) {
	v, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	*(dst.(*[]place.Prediction)) = v
	return true, nil
}

func (c *memCache) Set(_ context.Context, key string, value interface{}) error {
	c.entries[key] = value.([]place.Prediction)
	return nil
}
