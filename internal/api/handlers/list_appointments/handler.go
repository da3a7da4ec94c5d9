package list_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/FIT-ScheduleService/internal/api/handlers"
	"github.com/m04kA/FIT-ScheduleService/internal/api/middleware"
	"github.com/m04kA/FIT-ScheduleService/internal/domain"
	"github.com/m04kA/FIT-ScheduleService/internal/service/appointments"
	"github.com/m04kA/FIT-ScheduleService/internal/service/appointments/models"
)

const (
	msgMissingIdentity = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
	msgInvalidTrainer  = "некорректный ID тренера"
	msgInvalidClient   = "некорректный ID клиента"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus   = "некорректный статус"
	msgInvalidLimit    = "некорректное значение limit/offset"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments
// Query params: trainerId, clientId, dateFrom, dateTo (YYYY-MM-DD, dateTo не включается),
// status, includeCancelled, limit, offset - все опциональны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments - Missing user identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	query := r.URL.Query()
	req := &models.ListAppointmentsRequest{
		ActingUserID: actor.UserID,
		ActingRole:   actor.Role,
	}

	// Фильтр по тренеру (опционально)
	if raw := query.Get("trainerId"); raw != "" {
		trainerID, err := uuid.Parse(raw)
		if err != nil {
			h.logger.Warn("GET /appointments - Invalid trainer ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTrainer)
			return
		}
		req.TrainerID = &trainerID
	}

	// Фильтр по клиенту (опционально)
	if raw := query.Get("clientId"); raw != "" {
		clientID, err := uuid.Parse(raw)
		if err != nil {
			h.logger.Warn("GET /appointments - Invalid client ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidClient)
			return
		}
		req.ClientID = &clientID
	}

	// Период [dateFrom, dateTo) (опционально)
	if raw := query.Get("dateFrom"); raw != "" {
		from, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /appointments - Invalid dateFrom: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.RangeStart = &from
	}
	if raw := query.Get("dateTo"); raw != "" {
		to, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /appointments - Invalid dateTo: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.RangeEnd = &to
	}

	// Фильтр по статусу (опционально)
	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	// Включать ли отменённые встречи
	req.IncludeCancelled = query.Get("includeCancelled") == "true"

	// Пагинация
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		req.Limit = limit
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		req.Offset = offset
	}

	// Получаем список встреч
	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /appointments - Access denied: user_id=%s", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments - Invalid input: user_id=%s, error=%v", actor.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /appointments - Failed to list appointments: user_id=%s, error=%v",
				actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Appointments retrieved successfully: user_id=%s, count=%d",
		actor.UserID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
