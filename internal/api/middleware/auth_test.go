package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func TestAuth(t *testing.T) {
	var gotActor Actor
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotActor, _ = ActorFromContext(r.Context())
		called = true
		w.WriteHeader(http.StatusOK)
	})
	handler := Auth(nopLogger{})(next)

	t.Run("valid headers pass actor through", func(t *testing.T) {
		called = false
		userID := uuid.New()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)
		req.Header.Set("X-User-ID", userID.String())
		req.Header.Set("X-User-Role", "trainer")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		require.True(t, called)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, gotActor.UserID)
		assert.Equal(t, domain.RoleTrainer, gotActor.Role)
	})

	t.Run("missing headers rejected", func(t *testing.T) {
		called = false

		req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed user id rejected", func(t *testing.T) {
		called = false

		req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)
		req.Header.Set("X-User-ID", "not-a-uuid")
		req.Header.Set("X-User-Role", "client")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		called = false

		req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)
		req.Header.Set("X-User-ID", uuid.New().String())
		req.Header.Set("X-User-Role", "superuser")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
