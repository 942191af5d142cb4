package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/urbanmove/service-mobility/internal/domain/arrival"
	"github.com/urbanmove/service-mobility/internal/domain/favorite"
	profileDomain "github.com/urbanmove/service-mobility/internal/domain/profile"
	"github.com/urbanmove/service-mobility/internal/platform/apperror"
)

func addFavorite(t *testing.T, repo *memFavoriteRepo, userID uuid.UUID, line string) {
	t.Helper()
	fav, err := favorite.NewFavorite(userID, line)
	require.NoError(t, err)
	require.NoError(t, repo.Add(context.Background(), fav))
}

func TestBoard_SortsAndFlagsFavorites(t *testing.T) {
	source := &staticSource{arrivals: []arrival.Arrival{
		{LineNumber: "L3", LineName: "Centro", Type: arrival.LineTypeBus, Minutes: 75},
		{LineNumber: "L1", Type: arrival.LineTypeMetro, Minutes: 1},
		{LineNumber: "L2", Destination: "Lapa", Type: arrival.LineTypeBus, Minutes: 12},
	}}
	favorites := newMemFavoriteRepo()
	profiles := newMemProfileRepo()
	userID := uuid.New()
	addFavorite(t, favorites, userID, "L2")

	svc := NewArrivalService(source, favorites, profiles, nil, nil, nil, zap.NewNop())
	board, err := svc.Board(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, "static", board.Source)
	assert.Nil(t, board.Location)
	require.Len(t, board.Arrivals, 3)

	assert.Equal(t, "L1", board.Arrivals[0].LineNumber)
	assert.Equal(t, "1 minute", board.Arrivals[0].Label)
	assert.Equal(t, arrival.StatusArriving, board.Arrivals[0].Status)
	assert.Equal(t, "Destination", board.Arrivals[0].Name)

	assert.Equal(t, "L2", board.Arrivals[1].LineNumber)
	assert.True(t, board.Arrivals[1].Favorited)
	assert.Equal(t, "Lapa", board.Arrivals[1].Name)
	assert.Equal(t, arrival.StatusOnTime, board.Arrivals[1].Status)

	assert.Equal(t, "1h 15m", board.Arrivals[2].Label)
	assert.False(t, board.Arrivals[2].Favorited)
}

func TestBoard_IncludesRegisteredLocation(t *testing.T) {
	profiles := newMemProfileRepo()
	p, err := profileDomain.NewProfile("Ana Souza", "ana@example.com", "hash")
	require.NoError(t, err)
	require.NoError(t, p.UpdateAddress(profileDomain.Address{Address: "Rua Augusta, 100", City: "São Paulo", State: "SP"}))
	require.NoError(t, profiles.Save(context.Background(), p))

	svc := NewArrivalService(&staticSource{}, newMemFavoriteRepo(), profiles, nil, nil, nil, zap.NewNop())
	board, err := svc.Board(context.Background(), p.ID())
	require.NoError(t, err)

	require.NotNil(t, board.Location)
	assert.Equal(t, "São Paulo", board.Location.City)
	assert.NotNil(t, board.Arrivals)
}

func TestBoard_SourceFailureIsUnavailable(t *testing.T) {
	svc := NewArrivalService(&staticSource{err: errStoreDown}, newMemFavoriteRepo(), nil, nil, nil, nil, zap.NewNop())

	_, err := svc.Board(context.Background(), uuid.New())
	assert.True(t, apperror.Is(err, apperror.CodeUnavailable))
}

func TestIngest_AlertsOnlyFavoritedArrivingLines(t *testing.T) {
	favorites := newMemFavoriteRepo()
	addFavorite(t, favorites, uuid.New(), "L1")
	addFavorite(t, favorites, uuid.New(), "L3")
	feed := &memFeed{}
	alerts := &recordingAlerts{}
	svc := NewArrivalService(&staticSource{}, favorites, nil, feed, alerts, nil, zap.NewNop())

	receivedAt := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	err := svc.Ingest(context.Background(), []arrival.Arrival{
		{LineNumber: "L1", Minutes: 2},
		{LineNumber: "L2", Minutes: 0},
		{LineNumber: "L3", Minutes: 9},
	}, receivedAt)
	require.NoError(t, err)

	assert.Len(t, feed.stored, 3)
	assert.Equal(t, receivedAt, feed.receivedAt)
	assert.Equal(t, []string{"L1"}, alerts.lines)
}

func TestIngest_WithoutFeedStore(t *testing.T) {
	svc := NewArrivalService(&staticSource{}, newMemFavoriteRepo(), nil, nil, nil, nil, zap.NewNop())

	err := svc.Ingest(context.Background(), []arrival.Arrival{{LineNumber: "L1"}}, time.Now())
	assert.Error(t, err)
}

func TestIngest_CollapsesRepeatedLines(t *testing.T) {
	favorites := newMemFavoriteRepo()
	addFavorite(t, favorites, uuid.New(), "8000")
	feed := &memFeed{}
	alerts := &recordingAlerts{}
	svc := NewArrivalService(&staticSource{}, favorites, nil, feed, alerts, nil, zap.NewNop())

	err := svc.Ingest(context.Background(), []arrival.Arrival{
		{LineNumber: "8000", Minutes: 15},
		{LineNumber: "8000", Minutes: 1},
		{LineNumber: "L7", Minutes: 6},
	}, time.Now())
	require.NoError(t, err)

	require.Len(t, feed.stored, 2)
	assert.Equal(t, "8000", feed.stored[0].LineNumber)
	assert.Equal(t, 1, feed.stored[0].Minutes)
	assert.Equal(t, "L7", feed.stored[1].LineNumber)
	assert.Equal(t, []string{"8000"}, alerts.lines)
}
