package get_availability

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/FIT-ScheduleService/internal/api/handlers"
	"github.com/m04kA/FIT-ScheduleService/internal/api/middleware"
	"github.com/m04kA/FIT-ScheduleService/internal/service/availability"
	"github.com/m04kA/FIT-ScheduleService/internal/service/availability/models"
)

const (
	msgMissingIdentity  = "отсутствует ID пользователя"
	msgInvalidTrainerID = "некорректный ID тренера"
	msgMissingTrainerID = "ID тренера обязателен"
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

// Handle GET /api/v1/availability
// Query params: trainerId (для тренера опционален - по умолчанию своё расписание)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /availability - Missing user identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	req := &models.ListAvailabilityRequest{
		ActingUserID: actor.UserID,
		ActingRole:   actor.Role,
	}

	// Извлекаем trainerId из query параметров (опционально)
	if raw := r.URL.Query().Get("trainerId"); raw != "" {
		trainerID, err := uuid.Parse(raw)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid trainer ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTrainerID)
			return
		}
		req.TrainerID = &trainerID
	}

	// Получаем недельное расписание
	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Missing trainer ID: user_id=%s", actor.UserID)
			handlers.RespondBadRequest(w, msgMissingTrainerID)

		default:
			h.logger.Error("GET /availability - Failed to list availability: user_id=%s, error=%v",
				actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Availability retrieved successfully: trainer_id=%s, windows_count=%d",
		result.TrainerID, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result)
}
