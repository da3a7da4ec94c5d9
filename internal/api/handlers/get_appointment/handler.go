package get_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/FIT-ScheduleService/internal/api/handlers"
	"github.com/m04kA/FIT-ScheduleService/internal/api/middleware"
	"github.com/m04kA/FIT-ScheduleService/internal/service/appointments"
	"github.com/m04kA/FIT-ScheduleService/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "некорректный ID встречи"
	msgNotFound             = "встреча не найдена"
	msgMissingIdentity      = "отсутствует ID пользователя"
	msgForbidden            = "доступ запрещен"
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

// Handle GET /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем appointmentId из URL
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["appointmentId"])
	if err != nil {
		h.logger.Warn("GET /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	// Получаем пользователя из контекста (через middleware Auth)
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments/{id} - Missing user identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	// Получаем встречу (сервис сам проверит права доступа)
	appointment, err := h.service.GetByID(r.Context(), &models.GetAppointmentRequest{
		AppointmentID: appointmentID,
		ActingUserID:  actor.UserID,
		ActingRole:    actor.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/{id} - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /appointments/{id} - Access denied: appointment_id=%s, user_id=%s",
				appointmentID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /appointments/{id} - Failed to get appointment: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/{id} - Appointment retrieved successfully: appointment_id=%s, user_id=%s",
		appointmentID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, appointment)
}
