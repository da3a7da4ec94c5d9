package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/FIT-ScheduleService/internal/api/handlers"
	"github.com/m04kA/FIT-ScheduleService/internal/domain"
)

const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"

	msgMissingIdentity = "отсутствуют заголовки идентификации пользователя"
	msgInvalidUserID   = "некорректный ID пользователя"
	msgInvalidRole     = "некорректная роль пользователя"
)

type actorKey struct{}

// Actor аутентифицированный пользователь запроса.
// Заголовки X-User-ID и X-User-Role проставляет API-шлюз после проверки токена.
type Actor struct {
	UserID uuid.UUID
	Role   domain.Role
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth извлекает пользователя из заголовков шлюза и кладёт его в контекст запроса
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawID := r.Header.Get(headerUserID)
			rawRole := r.Header.Get(headerUserRole)

			if rawID == "" || rawRole == "" {
				logger.Warn("%s %s - Missing identity headers", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingIdentity)
				return
			}

			userID, err := uuid.Parse(rawID)
			if err != nil {
				logger.Warn("%s %s - Invalid user ID %q: %v", r.Method, r.URL.Path, rawID, err)
				handlers.RespondUnauthorized(w, msgInvalidUserID)
				return
			}

			role := domain.Role(rawRole)
			if !domain.IsValidRole(role) {
				logger.Warn("%s %s - Invalid role %q", r.Method, r.URL.Path, rawRole)
				handlers.RespondUnauthorized(w, msgInvalidRole)
				return
			}

			actor := Actor{UserID: userID, Role: role}
			ctx := context.WithValue(r.Context(), actorKey{}, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFromContext возвращает пользователя запроса, положенного Auth middleware
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}
