package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/devconnect-service/internal/config"
	"github.com/spec-kit/devconnect-service/internal/domain"
	"github.com/spec-kit/devconnect-service/internal/repository"
	"github.com/spec-kit/devconnect-service/internal/service"
	apperrors "github.com/spec-kit/devconnect-service/pkg/util"
)

// UserRepoMock mocks repository.UserRepository.
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = "new-user-id"
		user.CreatedAt = time.Now()
		user.UpdatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *UserRepoMock) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *UserRepoMock) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// ResetRepoMock mocks repository.PasswordResetRepository.
type ResetRepoMock struct {
	mock.Mock
}

func (m *ResetRepoMock) Create(ctx context.Context, token *repository.PasswordResetToken) error {
	args := m.Called(ctx, token)
	if args.Error(0) == nil {
		token.ID = "reset-id"
		token.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *ResetRepoMock) GetByToken(ctx context.Context, token string) (*repository.PasswordResetToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PasswordResetToken), args.Error(1)
}

func (m *ResetRepoMock) MarkUsed(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret",
			AccessTokenTTLHours:     1,
			PasswordResetTTLMinutes: 30,
			BcryptCost:              bcrypt.MinCost,
		},
	}
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRegister(t *testing.T) {
	t.Run("creates account and issues token", func(t *testing.T) {
		users := new(UserRepoMock)
		users.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, pgx.ErrNoRows).Once()
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "new@example.com" && u.Name == "New User" &&
				u.PasswordHash != "" && u.PasswordHash != "secret123" &&
				u.AvatarURL != ""
		})).Return(nil).Once()

		svc := service.NewAuthService(testConfig(), service.AuthDependencies{UserRepo: users})

		user, token, exp, err := svc.Register(context.Background(), "New User", "new@example.com", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.True(t, exp.After(time.Now()))
		assert.Equal(t, "new-user-id", user.ID)
		users.AssertExpectations(t)
	})

	t.Run("duplicate email fails validation", func(t *testing.T) {
		users := new(UserRepoMock)
		users.On("GetByEmail", mock.Anything, "taken@example.com").
			Return(&domain.User{ID: "u1", Email: "taken@example.com"}, nil).Once()

		svc := service.NewAuthService(testConfig(), service.AuthDependencies{UserRepo: users})

		_, _, _, err := svc.Register(context.Background(), "Someone", "taken@example.com", "secret123")
		require.Error(t, err)
		de := apperrors.ToDomainError(err)
		assert.Equal(t, "VALIDATION_FAILED", de.Code)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(r *UserRepoMock)
		wantToken  bool
	}{
		{
			name:     "success",
			email:    "u1@example.com",
			password: "correct-horse",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetByEmail", mock.Anything, "u1@example.com").
					Return(&domain.User{ID: "u1", Email: "u1@example.com", PasswordHash: hashFor(t, "correct-horse")}, nil).Once()
			},
			wantToken: true,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "whatever",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, pgx.ErrNoRows).Once()
			},
		},
		{
			name:     "wrong password",
			email:    "u1@example.com",
			password: "wrong",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetByEmail", mock.Anything, "u1@example.com").
					Return(&domain.User{ID: "u1", Email: "u1@example.com", PasswordHash: hashFor(t, "correct-horse")}, nil).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UserRepoMock)
			tt.setupMocks(users)
			svc := service.NewAuthService(testConfig(), service.AuthDependencies{UserRepo: users})

			_, token, _, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantToken {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				return
			}

			// unknown email and wrong password must be indistinguishable
			require.Error(t, err)
			de := apperrors.ToDomainError(err)
			assert.Equal(t, "INVALID_CREDENTIALS", de.Code)
			require.Len(t, de.Errors, 1)
			assert.Equal(t, "invalid credentials", de.Errors[0].Msg)
		})
	}
}

func TestPasswordReset(t *testing.T) {
	t.Run("unknown email yields neither token nor error", func(t *testing.T) {
		users := new(UserRepoMock)
		resets := new(ResetRepoMock)
		users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, pgx.ErrNoRows).Once()

		svc := service.NewAuthService(testConfig(), service.AuthDependencies{UserRepo: users, PasswordResetRepo: resets})

		token, err := svc.RequestPasswordReset(context.Background(), "ghost@example.com")
		require.NoError(t, err)
		assert.Nil(t, token)
		resets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("confirm updates hash and marks token used", func(t *testing.T) {
		users := new(UserRepoMock)
		resets := new(ResetRepoMock)
		stored := &repository.PasswordResetToken{
			ID:        "reset-1",
			UserID:    "u1",
			Token:     "tok",
			ExpiresAt: time.Now().Add(time.Hour),
		}
		resets.On("GetByToken", mock.Anything, "tok").Return(stored, nil).Once()
		users.On("GetByID", mock.Anything, "u1").
			Return(&domain.User{ID: "u1", PasswordHash: hashFor(t, "old")}, nil).Once()
		users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("brand-new-pass")) == nil
		})).Return(nil).Once()
		resets.On("MarkUsed", mock.Anything, "reset-1").Return(nil).Once()

		svc := service.NewAuthService(testConfig(), service.AuthDependencies{UserRepo: users, PasswordResetRepo: resets})

		err := svc.ConfirmPasswordReset(context.Background(), "tok", "brand-new-pass")
		require.NoError(t, err)
		users.AssertExpectations(t)
		resets.AssertExpectations(t)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		users := new(UserRepoMock)
		resets := new(ResetRepoMock)
		resets.On("GetByToken", mock.Anything, "tok").Return(&repository.PasswordResetToken{
			ID:        "reset-1",
			UserID:    "u1",
			Token:     "tok",
			ExpiresAt: time.Now().Add(-time.Minute),
		}, nil).Once()

		svc := service.NewAuthService(testConfig(), service.AuthDependencies{UserRepo: users, PasswordResetRepo: resets})

		err := svc.ConfirmPasswordReset(context.Background(), "tok", "brand-new-pass")
		require.Error(t, err)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestGravatarURL(t *testing.T) {
	a := service.GravatarURL("Person@Example.com ")
	b := service.GravatarURL("person@example.com")
	assert.Equal(t, a, b)
	assert.Contains(t, a, "gravatar.com/avatar/")
}
