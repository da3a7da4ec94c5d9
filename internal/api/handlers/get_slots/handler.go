package get_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/FIT-ScheduleService/internal/api/handlers"
	"github.com/m04kA/FIT-ScheduleService/internal/domain"
	getSlots "github.com/m04kA/FIT-ScheduleService/internal/usecase/get_slots"
)

const (
	msgInvalidTrainerID = "некорректный ID тренера"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration  = "некорректная длительность слота"
)

type Handler struct {
	useCase GetSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/trainers/{trainerId}/slots
// Query params: date (required, YYYY-MM-DD), duration (optional, минуты)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем trainerId из URL
	trainerID, err := uuid.Parse(vars["trainerId"])
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/slots - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /trainers/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Извлекаем duration из query параметров (по умолчанию 60 минут)
	durationMinutes := domain.DefaultSlotDurationMinutes
	if durationStr := r.URL.Query().Get("duration"); durationStr != "" {
		durationMinutes, err = strconv.Atoi(durationStr)
		if err != nil {
			h.logger.Warn("GET /trainers/{id}/slots - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(trainerID, dateStr, durationMinutes)
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrInvalidDuration):
			h.logger.Warn("GET /trainers/{id}/slots - Invalid duration: trainer_id=%s, duration=%d",
				trainerID, durationMinutes)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /trainers/{id}/slots - Invalid input: trainer_id=%s, error=%v", trainerID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /trainers/{id}/slots - Failed to get slots: trainer_id=%s, error=%v", trainerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /trainers/{id}/slots - Slots retrieved successfully: trainer_id=%s, date=%s, slots_count=%d",
		trainerID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
