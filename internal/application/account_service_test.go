package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/urbanmove/service-mobility/internal/platform/apperror"
	"github.com/urbanmove/service-mobility/internal/platform/auth"
)

type accountFixture struct {
	svc      *AccountService
	sessions *auth.SessionManager
	profiles *memProfileRepo
	routes   *memRouteRepo
}

func newAccountFixture() accountFixture {
	sessions := auth.NewSessionManager(auth.NewJWTManager("test-secret", time.Hour), newMemSessionStore())
	profiles := newMemProfileRepo()
	routes := &memRouteRepo{}
	svc := NewAccountService(profiles, routes, &memEmissionRepo{}, sessions, zap.NewNop())
	return accountFixture{svc: svc, sessions: sessions, profiles: profiles, routes: routes}
}

func signUp(t *testing.T, f accountFixture) *SessionDTO {
	t.Helper()
	s, err := f.svc.SignUp(context.Background(), SignUpRequest{
		FullName: "Ana Souza",
		Email:    "Ana@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	return s
}

func TestSignUpAndSignIn(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()

	created := signUp(t, f)
	assert.Equal(t, "ana@example.com", created.Email)
	assert.NotEmpty(t, created.Token)

	signedIn, err := f.svc.SignIn(ctx, SignInRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, created.UserID, signedIn.UserID)
	assert.NotEqual(t, created.SessionID, signedIn.SessionID)

	session, err := f.sessions.Resolve(ctx, signedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, created.UserID, session.UserID)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	f := newAccountFixture()
	signUp(t, f)

	_, err := f.svc.SignUp(context.Background(), SignUpRequest{FullName: "Other", Email: "ana@example.com", Password: "secret123"})
	assert.True(t, apperror.Is(err, apperror.CodeConflict))
}

func TestSignUp_ShortPassword(t *testing.T) {
	f := newAccountFixture()

	_, err := f.svc.SignUp(context.Background(), SignUpRequest{FullName: "Ana", Email: "ana@example.com", Password: "123"})
	assert.True(t, apperror.Is(err, apperror.CodeValidation))
	assert.Empty(t, f.profiles.byID)
}

func TestSignUp_OverlongPassword(t *testing.T) {
	f := newAccountFixture()

	_, err := f.svc.SignUp(context.Background(), SignUpRequest{FullName: "Ana", Email: "ana@example.com", Password: strings.Repeat("x", 80)})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Equal(t, []string{"password"}, appErr.Fields)
	assert.Empty(t, f.profiles.byID)
}

func TestSignIn_BadCredentials(t *testing.T) {
	f := newAccountFixture()
	signUp(t, f)
	ctx := context.Background()

	_, err := f.svc.SignIn(ctx, SignInRequest{Email: "ana@example.com", Password: "wrong-password"})
	assert.True(t, apperror.Is(err, apperror.CodeUnauthorized))

	_, err = f.svc.SignIn(ctx, SignInRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.True(t, apperror.Is(err, apperror.CodeUnauthorized))
}

func TestSignOut_RevokesSession(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()
	created := signUp(t, f)

	session, err := f.sessions.Resolve(ctx, created.Token)
	require.NoError(t, err)
	require.NoError(t, f.svc.SignOut(ctx, session))

	_, err = f.sessions.Resolve(ctx, created.Token)
	assert.ErrorIs(t, err, auth.ErrSessionRevoked)
}

func TestOverviewAndUpdateAddress(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()
	created := signUp(t, f)

	overview, err := f.svc.Overview(ctx, created.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", overview.Profile.FullName)
	assert.Nil(t, overview.Profile.Address)
	assert.Zero(t, overview.Stats.TotalRoutes)
	assert.Empty(t, overview.RecentRoutes)

	_, err = f.svc.UpdateAddress(ctx, created.UserID, UpdateAddressRequest{Address: "Rua Augusta, 100"})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, []string{"city", "state"}, appErr.Fields)

	updated, err := f.svc.UpdateAddress(ctx, created.UserID, UpdateAddressRequest{
		Address: "Rua Augusta, 100",
		City:    "São Paulo",
		State:   "SP",
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Address)
	assert.Equal(t, "SP", updated.Address.State)
}

func TestOverview_UnknownUser(t *testing.T) {
	f := newAccountFixture()

	_, err := f.svc.Overview(context.Background(), uuid.New())
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}
