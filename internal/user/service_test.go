package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) GetDetailsByID(ctx context.Context, id uint) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByGoogleID(ctx context.Context, googleID string) (*User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) CreateFromGoogle(ctx context.Context, profile GoogleProfile) (*User, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) LinkGoogleAccount(ctx context.Context, userID uint, googleID string, avatarURL *string) (*User, error) {
	args := m.Called(ctx, userID, googleID, avatarURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) InsertRefreshToken(ctx context.Context, token RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func TestService_ResolveGoogleLogin(t *testing.T) {
	ctx := context.Background()
	profile := GoogleProfile{GoogleID: "goog-1", Email: "ada@example.com", Name: "Ada"}

	t.Run("Existing google account", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByGoogleID", ctx, "goog-1").Return(&User{ID: 1}, nil)

		u, err := NewService(repo).ResolveGoogleLogin(ctx, profile)

		require.NoError(t, err)
		assert.Equal(t, uint(1), u.ID)
		assert.False(t, u.IsNew)
		repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("Links existing email account", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByGoogleID", ctx, "goog-1").Return(nil, nil)
		repo.On("FindByEmail", ctx, "ada@example.com").Return(&User{ID: 2}, nil)
		repo.On("LinkGoogleAccount", ctx, uint(2), "goog-1", (*string)(nil)).
			Return(&User{ID: 2}, nil)

		u, err := NewService(repo).ResolveGoogleLogin(ctx, profile)

		require.NoError(t, err)
		assert.Equal(t, uint(2), u.ID)
		assert.False(t, u.IsNew)
	})

	t.Run("Creates new user", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByGoogleID", ctx, "goog-1").Return(nil, nil)
		repo.On("FindByEmail", ctx, "ada@example.com").Return(nil, nil)
		repo.On("CreateFromGoogle", ctx, profile).Return(&User{ID: 3}, nil)

		u, err := NewService(repo).ResolveGoogleLogin(ctx, profile)

		require.NoError(t, err)
		assert.Equal(t, uint(3), u.ID)
		assert.True(t, u.IsNew)
	})

	t.Run("Lookup error", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByGoogleID", ctx, "goog-1").Return(nil, errors.New("db error"))

		_, err := NewService(repo).ResolveGoogleLogin(ctx, profile)
		assert.Error(t, err)
	})
}

func TestService_ExistsByID(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ExistsByID", mock.Anything, uint(1)).Return(true, nil)

	ok, err := NewService(repo).ExistsByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestService_StoreRefreshToken(t *testing.T) {
	repo := new(MockRepository)
	token := RefreshToken{UserID: 1, Token: "t", ExpiresAt: time.Now()}
	repo.On("InsertRefreshToken", mock.Anything, token).Return(nil)

	assert.NoError(t, NewService(repo).StoreRefreshToken(context.Background(), token))
}
