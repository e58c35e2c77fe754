package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gocloud.dev/blob/memblob"

	"github.com/spec-kit/photoshare-service/internal/api/http/handlers"
	"github.com/spec-kit/photoshare-service/internal/auth"
	"github.com/spec-kit/photoshare-service/internal/domain"
	"github.com/spec-kit/photoshare-service/internal/imagehost"
	"github.com/spec-kit/photoshare-service/internal/observability"
	"github.com/spec-kit/photoshare-service/internal/repository"
	"github.com/spec-kit/photoshare-service/internal/service"
	apperrors "github.com/spec-kit/photoshare-service/pkg/util/errorutil"
)

type testServer struct {
	app      *fiber.App
	tokens   *auth.TokenManager
	now      time.Time
	users    map[string]*domain.User
	metrics  *observability.Metrics
	store    *imagehost.Store
	authAPI  *mockAuthAPI
	userAPI  *mockUserAPI
	photoAPI *mockPhotoAPI
	tagAPI   *mockTagAPI
	comments *mockCommentAPI
}

func newTestServer(t *testing.T, pingers map[string]handlers.Pinger) *testServer {
	t.Helper()
	s := &testServer{
		now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		users: map[string]*domain.User{
			"admin@example.com": {ID: "u-admin", Username: "admin", Email: "admin@example.com", Role: domain.RoleAdmin, IsActive: true},
			"mod@example.com":   {ID: "u-mod", Username: "mod", Email: "mod@example.com", Role: domain.RoleModerator, IsActive: true},
			"user@example.com":  {ID: "u-user", Username: "user", Email: "user@example.com", Role: domain.RoleUser, IsActive: true},
			"gone@example.com":  {ID: "u-gone", Username: "gone", Email: "gone@example.com", Role: domain.RoleUser, IsActive: false},
		},
		metrics:  observability.NewMetricsWithRegistry(prometheus.NewRegistry()),
		authAPI:  &mockAuthAPI{},
		userAPI:  &mockUserAPI{},
		photoAPI: &mockPhotoAPI{},
		tagAPI:   &mockTagAPI{},
		comments: &mockCommentAPI{},
	}

	tokens, err := auth.NewTokenManager(auth.TokenConfig{Secret: "router-secret", Algorithm: "HS256"},
		auth.WithClock(func() time.Time { return s.now }))
	require.NoError(t, err)
	s.tokens = tokens

	lookup := auth.UserLookupFunc(func(_ context.Context, email string) (*domain.User, error) {
		if user, ok := s.users[email]; ok {
			return user, nil
		}
		return nil, domain.ErrUserNotFound
	})

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })
	s.store = imagehost.NewStore(bucket, "http://localhost/media", "https://img.example.com", nil)

	logger := zap.NewNop()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger, s.metrics)})
	RegisterMiddlewares(app, logger, s.metrics, time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("photoshare-service", "test", pingers),
		Auth:           handlers.NewAuthHandler(s.authAPI),
		Users:          handlers.NewUsersHandler(s.userAPI, 1<<20),
		Photos:         handlers.NewPhotosHandler(s.photoAPI, 1<<20),
		Tags:           handlers.NewTagsHandler(s.tagAPI),
		Comments:       handlers.NewCommentsHandler(s.comments),
		Transformer:    handlers.NewTransformerHandler(s.photoAPI),
		Media:          handlers.NewMediaHandler(s.store),
		AuthMiddleware: auth.NewAuthMiddleware(auth.NewResolver(tokens, lookup), s.metrics, logger),
		Metrics:        s.metrics,
		MetricsPath:    "/metrics",
	})
	s.app = app
	return s
}

func (s *testServer) accessToken(t *testing.T, email string) string {
	t.Helper()
	token, _, err := s.tokens.IssueAccessToken(email, 0)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	payload := map[string]any{}
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return resp, payload
}

func errorMessage(payload map[string]any) string {
	errBody, _ := payload["error"].(map[string]any)
	msg, _ := errBody["message"].(string)
	return msg
}

func TestAuthenticationFailures(t *testing.T) {
	s := newTestServer(t, nil)
	refresh, _, err := s.tokens.IssueRefreshToken("user@example.com", 0)
	require.NoError(t, err)
	ghost := s.accessToken(t, "ghost@example.com")
	banned := s.accessToken(t, "gone@example.com")

	tests := []struct {
		name    string
		token   string
		message string
	}{
		{"missing bearer", "", auth.MsgNotAuthenticated},
		{"garbage token", "not-a-jwt", auth.MsgCouldNotValidate},
		{"refresh token as access", refresh, auth.MsgInvalidScope},
		{"unknown subject", ghost, auth.MsgCouldNotValidate},
		{"deactivated subject", banned, auth.MsgCouldNotValidate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, payload := s.do(t, http.MethodGet, "/api/users/me", tt.token, "")
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "Bearer", resp.Header.Get(fiber.HeaderWWWAuthenticate))
			assert.Equal(t, tt.message, errorMessage(payload))
		})
	}
}

func TestExpiredAccessToken(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.accessToken(t, "user@example.com")

	s.now = s.now.Add(14 * time.Minute)
	resp, _ := s.do(t, http.MethodGet, "/api/users/me", token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	s.now = s.now.Add(2 * time.Minute)
	resp, payload := s.do(t, http.MethodGet, "/api/users/me", token, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, auth.MsgCouldNotValidate, errorMessage(payload))
}

func TestCurrentUser(t *testing.T) {
	s := newTestServer(t, nil)
	resp, payload := s.do(t, http.MethodGet, "/api/users/me", s.accessToken(t, "mod@example.com"), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := payload["data"].(map[string]any)
	assert.Equal(t, "mod@example.com", data["email"])
	assert.Equal(t, "moderator", data["role"])
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestRoleGatedRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	s.userAPI.On("List", mock.Anything, repository.Page{Offset: 10, Limit: 5}).Return([]domain.User{*s.users["user@example.com"]}, nil)
	s.comments.On("Delete", mock.Anything, s.users["mod@example.com"], "c-1").Return(&domain.Comment{ID: "c-1"}, nil)

	tests := []struct {
		name   string
		method string
		path   string
		email  string
		status int
	}{
		{"admin lists users", http.MethodGet, "/api/users?skip=10&limit=5", "admin@example.com", http.StatusOK},
		{"moderator cannot list users", http.MethodGet, "/api/users?skip=10&limit=5", "mod@example.com", http.StatusForbidden},
		{"user cannot list users", http.MethodGet, "/api/users?skip=10&limit=5", "user@example.com", http.StatusForbidden},
		{"moderator deletes comment", http.MethodDelete, "/api/comments/c-1", "mod@example.com", http.StatusOK},
		{"user cannot delete comment", http.MethodDelete, "/api/comments/c-1", "user@example.com", http.StatusForbidden},
		{"user cannot rename tag", http.MethodPut, "/api/tags/t-1", "user@example.com", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, payload := s.do(t, tt.method, tt.path, s.accessToken(t, tt.email), "")
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status == http.StatusForbidden {
				assert.Equal(t, auth.MsgNotPermitted, errorMessage(payload))
				assert.Empty(t, resp.Header.Get(fiber.HeaderWWWAuthenticate))
			}
		})
	}
	s.comments.AssertNumberOfCalls(t, "Delete", 1)
}

func TestSignup(t *testing.T) {
	s := newTestServer(t, nil)
	s.authAPI.On("Signup", mock.Anything, service.SignupInput{Username: "alice", Email: "alice@example.com", Password: "secret1"}).
		Return(&domain.User{ID: "u-1", Username: "alice", Email: "alice@example.com", Role: domain.RoleUser, IsActive: true}, nil).Once()

	resp, payload := s.do(t, http.MethodPost, "/api/auth/signup", "", `{"username":"alice","email":"alice@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := payload["data"].(map[string]any)
	assert.Equal(t, "user", data["role"])
	assert.NotContains(t, data, "password_hash")

	resp, payload = s.do(t, http.MethodPost, "/api/auth/signup", "", `{"username":"alice","email":"nope","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	details := payload["error"].(map[string]any)["details"].(map[string]any)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
	s.authAPI.AssertExpectations(t)
}

func TestLoginAndRefresh(t *testing.T) {
	s := newTestServer(t, nil)
	exp := s.now.Add(15 * time.Minute)
	pair := &service.TokenPair{AccessToken: "a", RefreshToken: "r", AccessExpiresAt: exp, RefreshExpiresAt: exp}
	s.authAPI.On("Login", mock.Anything, "alice@example.com", "secret1").Return(pair, nil).Once()
	s.authAPI.On("Refresh", mock.Anything, "r").Return(pair, nil).Once()

	resp, payload := s.do(t, http.MethodPost, "/api/auth/login", "", `{"email":"alice@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := payload["data"].(map[string]any)
	assert.Equal(t, "bearer", data["token_type"])
	assert.Equal(t, "a", data["access_token"])

	resp, _ = s.do(t, http.MethodGet, "/api/auth/refresh_token", "r", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/api/auth/refresh_token", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	s.authAPI.AssertExpectations(t)
}

func TestServiceErrorsAreRendered(t *testing.T) {
	s := newTestServer(t, nil)
	s.photoAPI.On("Get", mock.Anything, "missing").Return(nil, apperrors.NewNotFound("photo", nil))
	s.photoAPI.On("Get", mock.Anything, "boom").Return(nil, errors.New("connection reset"))

	resp, payload := s.do(t, http.MethodGet, "/api/photos/missing", s.accessToken(t, "user@example.com"), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "photo not found", errorMessage(payload))

	resp, payload = s.do(t, http.MethodGet, "/api/photos/boom", s.accessToken(t, "user@example.com"), "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal server error", errorMessage(payload))
}

func TestTransformKeepsDefaults(t *testing.T) {
	s := newTestServer(t, nil)
	user := s.users["user@example.com"]
	expected := domain.DefaultTransformation()
	expected.Circle.UseFilter = true
	s.photoAPI.On("Transform", mock.Anything, user, "p-1", expected).Return(&domain.Photo{ID: "p-1"}, nil).Once()

	resp, _ := s.do(t, http.MethodPatch, "/api/transformer/p-1", s.accessToken(t, "user@example.com"), `{"circle":{"use_filter":true}}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	s.photoAPI.AssertExpectations(t)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, map[string]handlers.Pinger{
		"postgres": stubPinger{},
		"redis":    stubPinger{err: errors.New("dial tcp: refused")},
	})

	resp, _ := s.do(t, http.MethodGet, "/health/live", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, payload := s.do(t, http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	details := payload["error"].(map[string]any)["details"].(map[string]any)
	assert.Equal(t, "ok", details["postgres"])
	assert.Equal(t, "dial tcp: refused", details["redis"])
}

func TestMediaAndMetrics(t *testing.T) {
	s := newTestServer(t, nil)
	_, err := s.store.Put(context.Background(), "qr_codes/p-1.png", []byte("\x89PNG\r\n\x1a\n"), "image/png")
	require.NoError(t, err)

	resp, _ := s.do(t, http.MethodGet, "/media/qr_codes/p-1.png", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))

	resp, _ = s.do(t, http.MethodGet, "/media/qr_codes/none.png", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/api/users/me", "", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metricsResp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(metricsResp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, metricsResp.StatusCode)
	assert.Contains(t, string(body), `auth_failures_total{reason="missing_bearer"} 1`)
}
