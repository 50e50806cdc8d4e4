package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	api "github.com/spec-kit/devconnect-service/internal/api/http"
	"github.com/spec-kit/devconnect-service/internal/api/http/handlers"
	"github.com/spec-kit/devconnect-service/internal/auth"
	"github.com/spec-kit/devconnect-service/internal/config"
	"github.com/spec-kit/devconnect-service/internal/domain"
	"github.com/spec-kit/devconnect-service/internal/events"
	"github.com/spec-kit/devconnect-service/internal/observability"
	"github.com/spec-kit/devconnect-service/internal/service"
)

const (
	testPostID    = "6c84fb90-12c4-11e1-840d-7b25c5ee775a"
	unknownPostID = "6c84fb90-12c4-11e1-840d-7b25c5ee775b"
)

type userRepoMock struct {
	mock.Mock
}

func (m *userRepoMock) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = "u1"
		user.CreatedAt = time.Now()
		user.UpdatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *userRepoMock) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *userRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *userRepoMock) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type postRepoMock struct {
	mock.Mock
}

func (m *postRepoMock) Create(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	if args.Error(0) == nil {
		post.ID = testPostID
		post.CreatedAt = time.Now()
		post.UpdatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *postRepoMock) Update(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *postRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *postRepoMock) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *postRepoMock) ListAll(ctx context.Context) ([]domain.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Post), args.Error(1)
}

type profileRepoMock struct {
	mock.Mock
}

func (m *profileRepoMock) Create(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *profileRepoMock) Update(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *profileRepoMock) DeleteByUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *profileRepoMock) GetByUser(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *profileRepoMock) ListAll(ctx context.Context) ([]domain.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profile), args.Error(1)
}

type testEnv struct {
	app      *fiber.App
	users    *userRepoMock
	posts    *postRepoMock
	profiles *profileRepoMock
	authSvc  *service.AuthService
	metrics  *observability.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := new(userRepoMock)
	posts := new(postRepoMock)
	profiles := new(profileRepoMock)

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "router-secret",
			AccessTokenTTLHours:     1,
			PasswordResetTTLMinutes: 30,
			BcryptCost:              bcrypt.MinCost,
		},
	}
	dispatcher := events.NewInMemoryDispatcher()
	authSvc := service.NewAuthService(cfg, service.AuthDependencies{UserRepo: users, Dispatcher: dispatcher})
	postSvc := service.NewPostService(posts, users, dispatcher)
	profileSvc := service.NewProfileService(profiles, users)

	app := fiber.New()
	metrics := observability.NewMetrics()
	api.RegisterMiddlewares(app, zap.NewNop(), metrics, 0)
	api.RegisterRoutes(app, api.RouteConfig{
		Health:         handlers.NewHealthHandler("devconnect-service", "test", nil, nil),
		Users:          handlers.NewUsersHandler(authSvc),
		Profiles:       handlers.NewProfilesHandler(profileSvc, nil),
		Posts:          handlers.NewPostsHandler(postSvc),
		AuthMiddleware: auth.NewAuthMiddleware(authSvc.TokenManager()),
	})

	return &testEnv{app: app, users: users, posts: posts, profiles: profiles, authSvc: authSvc, metrics: metrics}
}

func (e *testEnv) tokenFor(t *testing.T, userID string) string {
	t.Helper()
	token, _, err := e.authSvc.TokenManager().GenerateToken(userID)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func TestGuardOnProtectedRoutes(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		method  string
		path    string
		token   string
		wantMsg string
	}{
		{"current user without token", http.MethodGet, "/api/auth", "", "no token, authorization denied"},
		{"posts without token", http.MethodGet, "/api/posts", "", "no token, authorization denied"},
		{"own profile without token", http.MethodGet, "/api/profile/me", "", "no token, authorization denied"},
		{"garbage token", http.MethodGet, "/api/auth", "not-a-jwt", "token is not valid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := env.do(t, tt.method, tt.path, tt.token, nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, tt.wantMsg, body["msg"])
		})
	}
}

func TestRegisterValidationShape(t *testing.T) {
	env := newTestEnv(t)

	resp, raw := env.do(t, http.MethodPost, "/api/users", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Len(t, body.Errors, 3)
	assert.Equal(t, "name is required", body.Errors[0].Msg)
	assert.Equal(t, "email is required", body.Errors[1].Msg)
	assert.Equal(t, "password is required", body.Errors[2].Msg)
}

func TestRegisterThenFetchCurrentUser(t *testing.T) {
	env := newTestEnv(t)

	env.users.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, pgx.ErrNoRows).Once()
	env.users.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	resp, raw := env.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var registered struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
		Auth struct {
			Token string `json:"token"`
		} `json:"auth"`
	}
	require.NoError(t, json.Unmarshal(raw, &registered))
	assert.Equal(t, "u1", registered.User.ID)
	require.NotEmpty(t, registered.Auth.Token)
	assert.NotContains(t, string(raw), "password")

	env.users.On("GetByID", mock.Anything, "u1").Return(&domain.User{
		ID:    "u1",
		Name:  "Alice",
		Email: "alice@example.com",
	}, nil).Once()

	resp, raw = env.do(t, http.MethodGet, "/api/auth", registered.Auth.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var me struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(raw, &me))
	assert.Equal(t, "u1", me.ID)
	assert.Equal(t, "alice@example.com", me.Email)

	env.users.AssertExpectations(t)
}

func TestLoginWrongPasswordShape(t *testing.T) {
	env := newTestEnv(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	require.NoError(t, err)
	env.users.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{
		ID:           "u1",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
	}, nil).Once()

	resp, raw := env.do(t, http.MethodPost, "/api/auth", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "invalid credentials", body.Errors[0].Msg)
}

func TestPostLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, "u2")

	env.users.On("GetByID", mock.Anything, "u2").Return(&domain.User{
		ID:        "u2",
		Name:      "Bob",
		AvatarURL: "https://example.com/bob.png",
	}, nil)
	env.posts.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	resp, raw := env.do(t, http.MethodPost, "/api/posts", token, map[string]string{"text": "hello world"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID       string           `json:"id"`
		Name     string           `json:"name"`
		Likes    []domain.Like    `json:"likes"`
		Comments []domain.Comment `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, testPostID, created.ID)
	assert.Equal(t, "Bob", created.Name)
	assert.Empty(t, created.Likes)
	assert.Empty(t, created.Comments)

	env.posts.On("GetByID", mock.Anything, testPostID).Return(&domain.Post{
		ID:     testPostID,
		UserID: "u2",
		Text:   "hello world",
		Likes:  []domain.Like{},
	}, nil).Once()
	env.posts.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	resp, raw = env.do(t, http.MethodPut, "/api/posts/like/"+testPostID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var likes []domain.Like
	require.NoError(t, json.Unmarshal(raw, &likes))
	require.Len(t, likes, 1)
	assert.Equal(t, "u2", likes[0].UserID)

	env.posts.On("GetByID", mock.Anything, testPostID).Return(&domain.Post{
		ID:     testPostID,
		UserID: "u2",
		Likes:  []domain.Like{{UserID: "u2"}},
	}, nil).Once()

	resp, raw = env.do(t, http.MethodPut, "/api/posts/like/"+testPostID, token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "post already liked", body["msg"])

	env.posts.AssertExpectations(t)
}

func TestDeleteForeignPostForbidden(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, "u2")

	env.posts.On("GetByID", mock.Anything, testPostID).Return(&domain.Post{
		ID:     testPostID,
		UserID: "someone-else",
	}, nil).Once()

	resp, raw := env.do(t, http.MethodDelete, "/api/posts/"+testPostID, token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "user not authorized", body["msg"])
}

func TestMissingPostNotFound(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, "u2")

	env.posts.On("GetByID", mock.Anything, unknownPostID).Return(nil, pgx.ErrNoRows).Once()

	resp, raw := env.do(t, http.MethodGet, "/api/posts/"+unknownPostID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "post not found", body["msg"])
}

func TestMalformedIDsNotFound(t *testing.T) {
	// ids that cannot be row keys must 404 without reaching the store
	env := newTestEnv(t)
	token := env.tokenFor(t, "u2")

	resp, raw := env.do(t, http.MethodGet, "/api/posts/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "post not found", body["msg"])
	env.posts.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)

	resp, raw = env.do(t, http.MethodGet, "/api/profile/user/foo", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "profile not found", body["msg"])
	env.profiles.AssertNotCalled(t, "GetByUser", mock.Anything, mock.Anything)
}

func TestMetricsRecordRenderedStatus(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, "u2")

	env.posts.On("GetByID", mock.Anything, unknownPostID).Return(nil, pgx.ErrNoRows).Once()

	resp, _ := env.do(t, http.MethodGet, "/api/posts/"+unknownPostID, token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	counts := env.metrics.RequestCounts()
	path := "/api/posts/" + unknownPostID
	assert.Equal(t, int64(1), counts[path+"|GET|404"])
	assert.Zero(t, counts[path+"|GET|200"])
}

func TestPublicProfileListing(t *testing.T) {
	env := newTestEnv(t)

	env.profiles.On("ListAll", mock.Anything).Return([]domain.Profile{
		{ID: "pr1", UserID: "u1", Status: "Developer", Skills: []string{"Go"}},
	}, nil).Once()

	resp, raw := env.do(t, http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var listed []map[string]any
	require.NoError(t, json.Unmarshal(raw, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "u1", listed[0]["user_id"])
}
