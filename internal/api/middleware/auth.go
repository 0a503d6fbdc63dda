package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/tablebook/reservation-service/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

// Auth проверяет наличие заголовка X-User-ID и кладет ID в контекст
// Аутентификация как таковая выполняется на внешнем шлюзе, сервис
// доверяет заголовку
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "заголовок X-User-ID обязателен")
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, "некорректный X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireOperator пропускает только пользователей из списка операторов
// Вешается после Auth
func RequireOperator(isOperator func(id int64) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok || !isOperator(userID) {
				handlers.RespondForbidden(w, "доступ только для операторов")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext извлекает ID пользователя, положенный Auth
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
