package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/FIT-ScheduleService/internal/api/middleware"
	"github.com/m04kA/FIT-ScheduleService/internal/domain"
	createAppointment "github.com/m04kA/FIT-ScheduleService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	TrainerID       uuid.UUID `json:"trainerId"`
	ClientID        uuid.UUID `json:"clientId"`
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	AppointmentType string    `json:"appointmentType"`
	StartDatetime   time.Time `json:"startDatetime"`
	EndDatetime     time.Time `json:"endDatetime"`
	Location        *string   `json:"location,omitempty"`
	IsOnline        bool      `json:"isOnline"`
	MeetingLink     *string   `json:"meetingLink,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	TrainerID       uuid.UUID `json:"trainerId"`
	ClientID        uuid.UUID `json:"clientId"`
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	AppointmentType string    `json:"appointmentType"`
	StartDatetime   time.Time `json:"startDatetime"`
	EndDatetime     time.Time `json:"endDatetime"`
	DurationMinutes int       `json:"durationMinutes"`
	Location        *string   `json:"location,omitempty"`
	IsOnline        bool      `json:"isOnline"`
	MeetingLink     *string   `json:"meetingLink,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ConflictResponse тело ответа 409 с интервалом конфликтующей встречи
type ConflictResponse struct {
	Error         string    `json:"error"`
	ConflictStart time.Time `json:"conflictStart"`
	ConflictEnd   time.Time `json:"conflictEnd"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(actor middleware.Actor) *createAppointment.Request {
	return &createAppointment.Request{
		ActingUserID:    actor.UserID,
		ActingRole:      actor.Role,
		TrainerID:       r.TrainerID,
		ClientID:        r.ClientID,
		Title:           r.Title,
		Description:     r.Description,
		AppointmentType: domain.AppointmentType(r.AppointmentType),
		StartDatetime:   r.StartDatetime,
		EndDatetime:     r.EndDatetime,
		Location:        r.Location,
		IsOnline:        r.IsOnline,
		MeetingLink:     r.MeetingLink,
		Notes:           r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		TrainerID:       resp.TrainerID,
		ClientID:        resp.ClientID,
		Title:           resp.Title,
		Description:     resp.Description,
		AppointmentType: resp.AppointmentType,
		StartDatetime:   resp.StartDatetime,
		EndDatetime:     resp.EndDatetime,
		DurationMinutes: resp.DurationMinutes,
		Location:        resp.Location,
		IsOnline:        resp.IsOnline,
		MeetingLink:     resp.MeetingLink,
		Notes:           resp.Notes,
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt,
		UpdatedAt:       resp.UpdatedAt,
	}
}
