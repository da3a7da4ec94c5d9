package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
)

// Request модель запроса на создание встречи
type Request struct {
	ActingUserID uuid.UUID   // ID действующего пользователя (из заголовков шлюза)
	ActingRole   domain.Role // Роль действующего пользователя

	TrainerID       uuid.UUID              // ID тренера (владелец расписания)
	ClientID        uuid.UUID              // ID клиента
	Title           string                 // Название встречи
	Description     *string                // Описание (опционально)
	AppointmentType domain.AppointmentType // Тип встречи
	StartDatetime   time.Time              // Начало (наивное локальное время)
	EndDatetime     time.Time              // Конец
	Location        *string                // Место проведения (опционально)
	IsOnline        bool                   // Онлайн-встреча
	MeetingLink     *string                // Ссылка на встречу (опционально)
	Notes           *string                // Заметки (опционально)
}

// Response модель ответа с созданной встречей
type Response struct {
	ID              uuid.UUID
	TrainerID       uuid.UUID
	ClientID        uuid.UUID
	Title           string
	Description     *string
	AppointmentType string
	StartDatetime   time.Time
	EndDatetime     time.Time
	DurationMinutes int // Всегда равен round((end-start)/1m)
	Location        *string
	IsOnline        bool
	MeetingLink     *string
	Notes           *string
	Status          string

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
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
