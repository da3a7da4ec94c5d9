package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/FIT-ScheduleService/internal/api/handlers"
	"github.com/m04kA/FIT-ScheduleService/internal/api/middleware"
	createAppointment "github.com/m04kA/FIT-ScheduleService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgForbidden           = "доступ запрещен"
	msgOutsideAvailability = "время встречи вне окон доступности тренера"
	msgConflict            = "время встречи пересекается с другой встречей"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgForbidden)
		return
	}

	// Декодируем body
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor))
	if err != nil {
		var conflict *createAppointment.ConflictError
		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("POST /appointments - Scheduling conflict: trainer_id=%s, user_id=%s",
				req.TrainerID, actor.UserID)
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Error:         msgConflict,
				ConflictStart: conflict.Start,
				ConflictEnd:   conflict.End,
			})

		case errors.Is(err, createAppointment.ErrForbidden):
			h.logger.Warn("POST /appointments - Access denied: trainer_id=%s, user_id=%s",
				req.TrainerID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createAppointment.ErrOutsideAvailability):
			h.logger.Warn("POST /appointments - Outside availability: trainer_id=%s", req.TrainerID)
			handlers.RespondBadRequest(w, msgOutsideAvailability)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: trainer_id=%s, error=%v",
				req.TrainerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: id=%s, trainer_id=%s, client_id=%s",
		result.ID, result.TrainerID, result.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
