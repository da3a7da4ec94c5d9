package update_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/FIT-ScheduleService/internal/api/handlers"
	"github.com/m04kA/FIT-ScheduleService/internal/api/middleware"
	rescheduleAppointment "github.com/m04kA/FIT-ScheduleService/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID встречи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "встреча не найдена"
	msgMissingIdentity      = "отсутствует ID пользователя"
	msgForbidden            = "доступ запрещен"
	msgInvalidTransition    = "недопустимая смена статуса"
	msgConflict             = "новое время пересекается с другой встречей"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем appointmentId из URL
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["appointmentId"])
	if err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	// Получаем пользователя из контекста (через middleware Auth)
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("PUT /appointments/{id} - Missing user identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	// Декодируем body
	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID, actor))
	if err != nil {
		var conflict *rescheduleAppointment.ConflictError
		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("PUT /appointments/{id} - Scheduling conflict: appointment_id=%s", appointmentID)
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Error:         msgConflict,
				ConflictStart: conflict.Start,
				ConflictEnd:   conflict.End,
			})

		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/{id} - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleAppointment.ErrForbidden):
			h.logger.Warn("PUT /appointments/{id} - Access denied: appointment_id=%s, user_id=%s",
				appointmentID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleAppointment.ErrInvalidTransition):
			h.logger.Warn("PUT /appointments/{id} - Invalid status transition: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			h.logger.Warn("PUT /appointments/{id} - Invalid input: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /appointments/{id} - Failed to update appointment: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{id} - Appointment updated successfully: appointment_id=%s, user_id=%s",
		appointmentID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
