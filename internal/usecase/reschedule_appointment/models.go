package reschedule_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
)

// Request модель запроса на обновление встречи.
// Все поля, кроме идентификаторов, опциональны: обновляются только переданные.
type Request struct {
	ActingUserID uuid.UUID   // ID действующего пользователя (из заголовков шлюза)
	ActingRole   domain.Role // Роль действующего пользователя

	AppointmentID uuid.UUID // ID обновляемой встречи

	Title           *string    // Новое название
	Description     *string    // Новое описание
	AppointmentType *string    // Новый тип встречи
	StartDatetime   *time.Time // Новое начало
	EndDatetime     *time.Time // Новый конец
	Location        *string    // Новое место проведения
	IsOnline        *bool      // Признак онлайн-встречи
	MeetingLink     *string    // Новая ссылка на встречу
	Notes           *string    // Новые заметки
	Status          *string    // Новый статус
}

// Response модель ответа с обновлённой встречей
type Response struct {
	ID              uuid.UUID
	TrainerID       uuid.UUID
	ClientID        uuid.UUID
	Title           string
	Description     *string
	AppointmentType string
	StartDatetime   time.Time
	EndDatetime     time.Time
	DurationMinutes int
	Location        *string
	IsOnline        bool
	MeetingLink     *string
	Notes           *string
	Status          string
	CancelReason    *string
	CancelledAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func fromDomain(a *domain.Appointment) *Response {
	return &Response{
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
