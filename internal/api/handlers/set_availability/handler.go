package set_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/FIT-ScheduleService/internal/api/handlers"
	"github.com/m04kA/FIT-ScheduleService/internal/api/middleware"
	"github.com/m04kA/FIT-ScheduleService/internal/service/availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingIdentity    = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
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

// Handle POST /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /availability - Missing user identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	// Декодируем body
	var req SetAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Сохраняем окна доступности
	result, err := h.service.Set(r.Context(), req.ToServiceRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /availability - Access denied: user_id=%s", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /availability - Invalid input: user_id=%s, error=%v", actor.UserID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /availability - Failed to set availability: user_id=%s, error=%v",
				actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability - Availability saved successfully: trainer_id=%s, windows_count=%d",
		result.TrainerID, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result)
}
