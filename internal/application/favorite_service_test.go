package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/urbanmove/service-mobility/internal/platform/apperror"
	"github.com/urbanmove/service-mobility/internal/proto/events"
)

func TestToggle_TwiceRestoresOriginalState(t *testing.T) {
	repo := newMemFavoriteRepo()
	pub := &recordingPublisher{}
	svc := NewFavoriteService(repo, pub, nil, zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	first, err := svc.Toggle(ctx, userID, "875A")
	require.NoError(t, err)
	assert.True(t, first.Favorited)

	lines, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"875A"}, lines)

	second, err := svc.Toggle(ctx, userID, "875A")
	require.NoError(t, err)
	assert.False(t, second.Favorited)

	lines, err = svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.NotNil(t, lines)

	require.Len(t, pub.events, 2)
	assert.Equal(t, events.TopicFavoriteEvents, pub.topics[0])
	assert.Equal(t, events.FavoriteChanged, pub.events[1].Type)
}

func TestToggle_DoesNotAffectOtherUsers(t *testing.T) {
	repo := newMemFavoriteRepo()
	svc := NewFavoriteService(repo, nil, nil, zap.NewNop())
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	_, err := svc.Toggle(ctx, alice, "L1")
	require.NoError(t, err)

	lines, err := svc.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestSet_IsIdempotent(t *testing.T) {
	repo := newMemFavoriteRepo()
	pub := &recordingPublisher{}
	svc := NewFavoriteService(repo, pub, nil, zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		dto, err := svc.Set(ctx, userID, "L2", true)
		require.NoError(t, err)
		assert.True(t, dto.Favorited)
	}
	lines, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"L2"}, lines)
	assert.Len(t, pub.events, 1)

	for i := 0; i < 2; i++ {
		dto, err := svc.Set(ctx, userID, "L2", false)
		require.NoError(t, err)
		assert.False(t, dto.Favorited)
	}
	lines, err = svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.Len(t, pub.events, 2)
}

func TestToggle_InvalidLine(t *testing.T) {
	svc := NewFavoriteService(newMemFavoriteRepo(), nil, nil, zap.NewNop())

	_, err := svc.Toggle(context.Background(), uuid.New(), "   ")
	assert.True(t, apperror.Is(err, apperror.CodeValidation))
}

func TestToggle_StoreFailure(t *testing.T) {
	repo := newMemFavoriteRepo()
	repo.err = errStoreDown
	svc := NewFavoriteService(repo, nil, nil, zap.NewNop())

	_, err := svc.Toggle(context.Background(), uuid.New(), "L1")
	assert.ErrorIs(t, err, errStoreDown)
}
