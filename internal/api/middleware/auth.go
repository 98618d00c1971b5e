package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type contextKey string

const actorContextKey contextKey = "actor"

const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"

	roleAdmin = "admin"
)

const (
	msgMissingUserID = "отсутствует заголовок X-User-ID"
	msgInvalidUserID = "некорректный заголовок X-User-ID"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth извлекает действующего пользователя из заголовков запроса.
// Аутентификацию выполняет API-gateway, сервис доверяет заголовкам
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawUserID := r.Header.Get(headerUserID)
			if rawUserID == "" {
				logger.Warn("auth: missing %s header, %s %s", headerUserID, r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			userID, err := strconv.ParseInt(rawUserID, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("auth: invalid %s header %q, %s %s", headerUserID, rawUserID, r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgInvalidUserID)
				return
			}

			actor := domain.Actor{
				UserID:  userID,
				IsAdmin: r.Header.Get(headerUserRole) == roleAdmin,
			}

			ctx := context.WithValue(r.Context(), actorContextKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFromContext возвращает действующего пользователя из контекста запроса.
// Второй результат false, если запрос прошел мимо Auth middleware
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey).(domain.Actor)
	return actor, ok
}
