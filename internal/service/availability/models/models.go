package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
	"github.com/m04kA/FIT-ScheduleService/pkg/types"
)

// Request модели

// ListAvailabilityRequest запрос на получение недельного расписания тренера
type ListAvailabilityRequest struct {
	ActingUserID uuid.UUID   `json:"actingUserId"`
	ActingRole   domain.Role `json:"actingRole"`

	TrainerID *uuid.UUID `json:"trainerId,omitempty"` // По умолчанию - сам тренер
}

// WindowInput одно окно доступности в запросе на сохранение
type WindowInput struct {
	DayOfWeek   int     `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartTime   string  `json:"startTime"` // "HH:MM"
	EndTime     string  `json:"endTime"`   // "HH:MM"
	IsAvailable *bool   `json:"isAvailable,omitempty"`
	Location    *string `json:"location,omitempty"`
}

// SetAvailabilityRequest запрос на сохранение окон доступности.
// Окна сохраняются по ключу (тренер, день недели, время начала):
// существующее окно обновляется, новое создаётся.
type SetAvailabilityRequest struct {
	ActingUserID uuid.UUID   `json:"actingUserId"`
	ActingRole   domain.Role `json:"actingRole"`

	TrainerID *uuid.UUID    `json:"trainerId,omitempty"` // По умолчанию - сам тренер
	Windows   []WindowInput `json:"windows"`
}

// DeleteAvailabilityRequest запрос на удаление окна доступности
type DeleteAvailabilityRequest struct {
	ActingUserID uuid.UUID   `json:"actingUserId"`
	ActingRole   domain.Role `json:"actingRole"`

	WindowID uuid.UUID `json:"windowId"`
}

// ToDomainWindow конвертирует окно из запроса в domain модель
func (w *WindowInput) ToDomainWindow(trainerID uuid.UUID) (*domain.AvailabilityWindow, error) {
	start, err := types.NewTimeStringFromString(w.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := types.NewTimeStringFromString(w.EndTime)
	if err != nil {
		return nil, err
	}

	isAvailable := true
	if w.IsAvailable != nil {
		isAvailable = *w.IsAvailable
	}

	return &domain.AvailabilityWindow{
		TrainerID:   trainerID,
		DayOfWeek:   w.DayOfWeek,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: isAvailable,
		Location:    w.Location,
	}, nil
}

// Response модели

// WindowResponse ответ с данными окна доступности
type WindowResponse struct {
	ID          uuid.UUID `json:"id"`
	TrainerID   uuid.UUID `json:"trainerId"`
	DayOfWeek   int       `json:"dayOfWeek"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	IsAvailable bool      `json:"isAvailable"`
	Location    *string   `json:"location,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AvailabilityListResponse ответ с недельным расписанием
type AvailabilityListResponse struct {
	TrainerID uuid.UUID         `json:"trainerId"`
	Windows   []*WindowResponse `json:"windows"`
}

// FromDomainWindow конвертирует domain модель в response
func FromDomainWindow(w *domain.AvailabilityWindow) *WindowResponse {
	return &WindowResponse{
		ID:          w.ID,
		TrainerID:   w.TrainerID,
		DayOfWeek:   w.DayOfWeek,
		StartTime:   w.StartTime.String(),
		EndTime:     w.EndTime.String(),
		IsAvailable: w.IsAvailable,
		Location:    w.Location,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// FromDomainWindowList конвертирует список domain моделей в response
func FromDomainWindowList(trainerID uuid.UUID, windows []*domain.AvailabilityWindow) *AvailabilityListResponse {
	result := make([]*WindowResponse, 0, len(windows))
	for _, w := range windows {
		result = append(result, FromDomainWindow(w))
	}

	return &AvailabilityListResponse{
		TrainerID: trainerID,
		Windows:   result,
	}
}
