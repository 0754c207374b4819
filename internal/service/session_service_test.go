package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"homefix/internal/models"
	"homefix/internal/validate"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthClient struct {
	mock.Mock
}

func (m *mockAuthClient) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *mockAuthClient) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *mockAuthClient) SignOut(ctx context.Context, accessToken string) error {
	return m.Called(ctx, accessToken).Error(0)
}

func (m *mockAuthClient) CurrentUser(ctx context.Context, accessToken string) (*models.Session, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func newSessionService(auth *mockAuthClient, cache *fakeCache) *SessionService {
	logger := zerolog.New(io.Discard)
	return NewSessionService(auth, cache, nil, &logger)
}

func TestSessionLifecycle(t *testing.T) {
	auth := new(mockAuthClient)
	cache := newFakeCache()
	svc := newSessionService(auth, cache)
	ctx := context.Background()

	var changes []*models.Session
	svc.Subscribe(func(s *models.Session) { changes = append(changes, s) })

	assert.Nil(t, svc.Current())
	assert.Empty(t, svc.Token())

	session := &models.Session{UserID: "U1", Email: "a@b.com", AccessToken: "tok-1"}
	auth.On("SignIn", ctx, "a@b.com", "secret1").Return(session, nil).Once()

	got, err := svc.SignIn(ctx, "a@b.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "U1", got.UserID)
	assert.Equal(t, "tok-1", svc.Token())

	// Token persisted for the next startup's stored-session check.
	stored, err := cache.Get(ctx, sessionCacheKey)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", string(stored))

	auth.On("SignOut", ctx, "tok-1").Return(nil).Once()
	require.NoError(t, svc.SignOut(ctx))
	assert.Nil(t, svc.Current())

	stored, err = cache.Get(ctx, sessionCacheKey)
	require.NoError(t, err)
	assert.Nil(t, stored)

	// One notification per change: sign-in then sign-out.
	require.Len(t, changes, 2)
	assert.Equal(t, "U1", changes[0].UserID)
	assert.Nil(t, changes[1])
	auth.AssertExpectations(t)
}

func TestSignInValidatesCredentialsFirst(t *testing.T) {
	auth := new(mockAuthClient)
	svc := newSessionService(auth, newFakeCache())

	_, err := svc.SignIn(context.Background(), "", "secret1")
	assert.ErrorIs(t, err, validate.ErrMissingEmail)

	_, err = svc.SignIn(context.Background(), "a@b.com", "123")
	assert.ErrorIs(t, err, validate.ErrPasswordTooShort)

	// The auth provider is never reached for invalid input.
	auth.AssertNotCalled(t, "SignIn", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignUpSetsSession(t *testing.T) {
	auth := new(mockAuthClient)
	svc := newSessionService(auth, newFakeCache())
	ctx := context.Background()

	session := &models.Session{UserID: "U2", Email: "new@b.com", AccessToken: "tok-2"}
	auth.On("SignUp", ctx, "new@b.com", "secret1").Return(session, nil).Once()

	got, err := svc.SignUp(ctx, "new@b.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "U2", got.UserID)
	assert.Equal(t, "U2", svc.Current().UserID)
	auth.AssertExpectations(t)
}

func TestSignOutWithoutSession(t *testing.T) {
	svc := newSessionService(new(mockAuthClient), newFakeCache())
	assert.ErrorIs(t, svc.SignOut(context.Background()), ErrNotSignedIn)
}

func TestSignOutClearsSessionWhenBackendFails(t *testing.T) {
	auth := new(mockAuthClient)
	svc := newSessionService(auth, newFakeCache())
	ctx := context.Background()

	session := &models.Session{UserID: "U1", AccessToken: "tok-1"}
	auth.On("SignIn", ctx, "a@b.com", "secret1").Return(session, nil).Once()
	_, err := svc.SignIn(ctx, "a@b.com", "secret1")
	require.NoError(t, err)

	auth.On("SignOut", ctx, "tok-1").Return(errors.New("backend down")).Once()
	require.NoError(t, svc.SignOut(ctx))
	assert.Nil(t, svc.Current())
	auth.AssertExpectations(t)
}

func TestRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("ValidStoredToken", func(t *testing.T) {
		auth := new(mockAuthClient)
		cache := newFakeCache()
		require.NoError(t, cache.Set(ctx, sessionCacheKey, []byte("tok-9")))
		svc := newSessionService(auth, cache)

		auth.On("CurrentUser", ctx, "tok-9").Return(&models.Session{UserID: "U9", AccessToken: "tok-9"}, nil).Once()

		svc.Restore(ctx)
		require.NotNil(t, svc.Current())
		assert.Equal(t, "U9", svc.Current().UserID)
		auth.AssertExpectations(t)
	})

	t.Run("RejectedStoredToken", func(t *testing.T) {
		auth := new(mockAuthClient)
		cache := newFakeCache()
		require.NoError(t, cache.Set(ctx, sessionCacheKey, []byte("stale")))
		svc := newSessionService(auth, cache)

		auth.On("CurrentUser", ctx, "stale").Return(nil, errors.New("expired")).Once()

		svc.Restore(ctx)
		assert.Nil(t, svc.Current())

		stored, err := cache.Get(ctx, sessionCacheKey)
		require.NoError(t, err)
		assert.Nil(t, stored)
	})

	t.Run("NoStoredToken", func(t *testing.T) {
		auth := new(mockAuthClient)
		svc := newSessionService(auth, newFakeCache())
		svc.Restore(ctx)
		assert.Nil(t, svc.Current())
		auth.AssertNotCalled(t, "CurrentUser", mock.Anything, mock.Anything)
	})
}
