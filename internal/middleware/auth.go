package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"todoList/internal/auth"
	"todoList/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const userIDKey contextKey = "user_id"

// Auth проверяет заголовок Authorization и кладёт ID пользователя в контекст.
func Auth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, r, "missing token")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w, r, "invalid authorization header")
				return
			}

			claims, err := tokens.ValidateAccess(parts[1])
			if err != nil {
				logger.Warn(
					"HTTP: Отказ по токену доступа",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Error(err),
				)
				unauthorized(w, r, "invalid or expired token")
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				unauthorized(w, r, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID возвращает ID пользователя, положенный middleware Auth.
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// WithUserID используется в тестах для подстановки владельца в контекст.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

func unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	json.NewEncoder(w).Encode(map[string]any{
		"status_code": http.StatusUnauthorized,
		"message":     message,
	})
}
