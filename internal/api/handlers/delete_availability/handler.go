package delete_availability

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/FIT-ScheduleService/internal/api/handlers"
	"github.com/m04kA/FIT-ScheduleService/internal/api/middleware"
	"github.com/m04kA/FIT-ScheduleService/internal/service/availability"
	"github.com/m04kA/FIT-ScheduleService/internal/service/availability/models"
)

const (
	msgInvalidWindowID = "некорректный ID окна доступности"
	msgNotFound        = "окно доступности не найдено"
	msgMissingIdentity = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/availability/{windowId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем windowId из URL
	vars := mux.Vars(r)
	windowID, err := uuid.Parse(vars["windowId"])
	if err != nil {
		h.logger.Warn("DELETE /availability/{id} - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	// Получаем пользователя из контекста (через middleware Auth)
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("DELETE /availability/{id} - Missing user identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	// Удаляем окно доступности
	err = h.service.Delete(r.Context(), &models.DeleteAvailabilityRequest{
		ActingUserID: actor.UserID,
		ActingRole:   actor.Role,
		WindowID:     windowID,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrWindowNotFound):
			h.logger.Warn("DELETE /availability/{id} - Window not found: window_id=%s", windowID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /availability/{id} - Access denied: window_id=%s, user_id=%s",
				windowID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /availability/{id} - Failed to delete window: window_id=%s, error=%v",
				windowID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability/{id} - Window deleted successfully: window_id=%s, user_id=%s",
		windowID, actor.UserID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
