package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"todoList/internal/auth"
	"todoList/internal/middleware"
	"todoList/internal/models/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenManager(accessTTL time.Duration) *auth.TokenManager {
	return auth.NewTokenManager(auth.Config{
		Secret:     "test-secret",
		AccessTTL:  accessTTL,
		RefreshTTL: 7 * 24 * time.Hour,
		Issuer:     "todoList-test",
	})
}

// TestAuth тестирует проверку токена и передачу владельца в контекст
func TestAuth(t *testing.T) {
	tokens := newTokenManager(15 * time.Minute)
	u := &user.User{ID: uuid.New(), Username: "alice_01", Email: "alice@example.com"}
	pair, err := tokens.IssuePair(u)
	require.NoError(t, err)

	var gotUserID uuid.UUID
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = middleware.GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := middleware.Auth(tokens)(next)

	t.Run("success - bearer token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/tasks", nil)
		req.Header.Set("Authorization", "Bearer "+pair.Access)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, gotOK)
		assert.Equal(t, u.ID, gotUserID)
	})

	t.Run("error - no header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/tasks", nil)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "missing token")
	})

	t.Run("error - malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/tasks", nil)
		req.Header.Set("Authorization", pair.Access)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("error - refresh token is not an access token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/tasks", nil)
		req.Header.Set("Authorization", "Bearer "+pair.Refresh)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("error - expired token", func(t *testing.T) {
		expiredTokens := newTokenManager(-1 * time.Minute)
		expiredPair, err := expiredTokens.IssuePair(u)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/tasks", nil)
		req.Header.Set("Authorization", "Bearer "+expiredPair.Access)
		w := httptest.NewRecorder()

		// секрет тот же, токен отклоняется именно по сроку
		middleware.Auth(newTokenManager(15*time.Minute))(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("error - garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/tasks", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// TestRateLimit тестирует ограничение частоты запросов
func TestRateLimit(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	limited := middleware.RateLimit(3)(next)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/tasks", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		limited.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	// четвёртый запрос с того же адреса упирается в лимит
	req := httptest.NewRequest("GET", "/tasks", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	limited.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// другой адрес не задет
	req = httptest.NewRequest("GET", "/tasks", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w = httptest.NewRecorder()
	limited.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
