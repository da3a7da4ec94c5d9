package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// GetAppointmentRequest запрос на получение встречи
type GetAppointmentRequest struct {
	AppointmentID uuid.UUID   `json:"appointmentId"`
	ActingUserID  uuid.UUID   `json:"actingUserId"`
	ActingRole    domain.Role `json:"actingRole"`
}

// ListAppointmentsRequest запрос на получение списка встреч
type ListAppointmentsRequest struct {
	ActingUserID uuid.UUID   `json:"actingUserId"`
	ActingRole   domain.Role `json:"actingRole"`

	TrainerID        *uuid.UUID `json:"trainerId,omitempty"`        // Фильтр по тренеру (опционально)
	ClientID         *uuid.UUID `json:"clientId,omitempty"`         // Фильтр по клиенту (опционально)
	RangeStart       *time.Time `json:"rangeStart,omitempty"`       // Начало периода (опционально)
	RangeEnd         *time.Time `json:"rangeEnd,omitempty"`         // Конец периода, не включается (опционально)
	Status           *string    `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"` // Включить отменённые встречи
	Limit            int        `json:"limit,omitempty"`
	Offset           int        `json:"offset,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{
		TrainerID:        r.TrainerID,
		ClientID:         r.ClientID,
		RangeStart:       r.RangeStart,
		RangeEnd:         r.RangeEnd,
		IncludeCancelled: r.IncludeCancelled,
		Limit:            r.Limit,
		Offset:           r.Offset,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// CancelAppointmentRequest запрос на отмену встречи
type CancelAppointmentRequest struct {
	AppointmentID uuid.UUID   `json:"appointmentId"`
	ActingUserID  uuid.UUID   `json:"actingUserId"`
	ActingRole    domain.Role `json:"actingRole"`
	Reason        *string     `json:"reason,omitempty"` // Причина отмены (опционально)
}

// UpdateStatusRequest запрос на обновление статуса встречи
type UpdateStatusRequest struct {
	AppointmentID uuid.UUID   `json:"appointmentId"`
	ActingUserID  uuid.UUID   `json:"actingUserId"`
	ActingRole    domain.Role `json:"actingRole"`
	Status        string      `json:"status"`
}

// Response модели

// AppointmentResponse ответ с данными встречи
type AppointmentResponse struct {
	ID              uuid.UUID  `json:"id"`
	TrainerID       uuid.UUID  `json:"trainerId"`
	ClientID        uuid.UUID  `json:"clientId"`
	Title           string     `json:"title"`
	Description     *string    `json:"description,omitempty"`
	AppointmentType string     `json:"appointmentType"`
	StartDatetime   time.Time  `json:"startDatetime"`
	EndDatetime     time.Time  `json:"endDatetime"`
	DurationMinutes int        `json:"durationMinutes"`
	Location        *string    `json:"location,omitempty"`
	IsOnline        bool       `json:"isOnline"`
	MeetingLink     *string    `json:"meetingLink,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	Status          string     `json:"status"`
	CancelReason    *string    `json:"cancelReason,omitempty"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком встреч
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// CancelAppointmentResponse ответ на отмену встречи.
// LateCancellation выставляется, когда отмена произошла менее чем
// за 24 часа до начала ещё не начавшейся встречи.
type CancelAppointmentResponse struct {
	Appointment      *AppointmentResponse `json:"appointment"`
	LateCancellation bool                 `json:"lateCancellation"`
}

// FromDomainAppointment конвертирует domain модель в response
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              a.ID,
		TrainerID:       a.TrainerID,
		ClientID:        a.ClientID,
		Title:           a.Title,
		Description:     a.Description,
		AppointmentType: string(a.AppointmentType),
		StartDatetime:   a.StartDatetime,
		EndDatetime:     a.EndDatetime,
		DurationMinutes: a.DurationMinutes,
		Location:        a.Location,
		IsOnline:        a.IsOnline,
		MeetingLink:     a.MeetingLink,
		Notes:           a.Notes,
		Status:          string(a.Status),
		CancelReason:    a.CancelReason,
		CancelledAt:     a.CancelledAt,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в response
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	result := make([]*AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		result = append(result, FromDomainAppointment(a))
	}

	return &AppointmentListResponse{
		Appointments: result,
		Total:        len(result),
	}
}

// ToDomainAppointmentStatus конвертирует строку в domain статус
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !domain.IsValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
