package cancel_appointment

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/FIT-ScheduleService/internal/api/handlers"
	"github.com/m04kA/FIT-ScheduleService/internal/api/middleware"
	"github.com/m04kA/FIT-ScheduleService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный ID встречи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "встреча не найдена"
	msgMissingIdentity      = "отсутствует ID пользователя"
	msgForbidden            = "доступ запрещен"
	msgAlreadyCancelled     = "встреча уже отменена"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем appointmentId из URL
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["appointmentId"])
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	// Получаем пользователя из контекста (через middleware Auth)
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Missing user identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	// Декодируем body (тело опционально - отмена без причины)
	var req CancelAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Отменяем встречу
	result, err := h.service.Cancel(r.Context(), req.ToServiceRequest(appointmentID, actor))
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Access denied: appointment_id=%s, user_id=%s",
				appointmentID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrAlreadyCancelled):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Already cancelled: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgAlreadyCancelled)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid input: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /appointments/{id}/cancel - Failed to cancel appointment: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/cancel - Appointment cancelled successfully: appointment_id=%s, user_id=%s, late=%t",
		appointmentID, actor.UserID, result.LateCancellation)
	handlers.RespondJSON(w, http.StatusOK, result)
}
