package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// AppointmentType represents the kind of training session
type AppointmentType string

const (
	TypeOneOnOne      AppointmentType = "one_on_one"
	TypeGroupClass    AppointmentType = "group_class"
	TypeAssessment    AppointmentType = "assessment"
	TypeConsultation  AppointmentType = "consultation"
	TypeOnlineSession AppointmentType = "online_session"
)

// Appointment represents a scheduled session between a trainer and a client
type Appointment struct {
	ID              uuid.UUID
	TrainerID       uuid.UUID
	ClientID        uuid.UUID
	Title           string
	Description     *string
	AppointmentType AppointmentType
	StartDatetime   time.Time
	EndDatetime     time.Time
	DurationMinutes int
	Location        *string
	IsOnline        bool
	MeetingLink     *string
	Notes           *string
	Status          AppointmentStatus

	CancelReason *string
	CancelledAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies the trainer's time
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// IsTerminal returns true if no further status transitions are allowed
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCancelled || a.Status == StatusNoShow
}

// CanBeRescheduled returns true if the appointment times may still be changed
func (a *Appointment) CanBeRescheduled() bool {
	return !a.IsCancelled()
}

// CanTransitionTo reports whether a status change to target is legal.
// Any non-terminal status may move to any other valid status; there is
// no way out of cancelled or no_show.
func (a *Appointment) CanTransitionTo(target AppointmentStatus) bool {
	if !IsValidStatus(target) {
		return false
	}
	return !a.IsTerminal()
}

// IsValidStatus returns true if s is one of the known appointment statuses
func IsValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// IsValidType returns true if t is one of the known appointment types
func IsValidType(t AppointmentType) bool {
	switch t {
	case TypeOneOnOne, TypeGroupClass, TypeAssessment, TypeConsultation, TypeOnlineSession:
		return true
	default:
		return false
	}
}

// ComputeDurationMinutes derives the stored duration from the time range
func ComputeDurationMinutes(start, end time.Time) int {
	return int(end.Sub(start).Round(time.Minute) / time.Minute)
}

// AppointmentFilter фильтр для выборки встреч
type AppointmentFilter struct {
	TrainerID        *uuid.UUID         // Фильтр по тренеру
	ClientID         *uuid.UUID         // Фильтр по клиенту
	RangeStart       *time.Time         // Начало периода по start_datetime (включительно)
	RangeEnd         *time.Time         // Конец периода по start_datetime (исключительно)
	Status           *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool               // Включать ли отменённые встречи
	Limit            int                // 0 = без ограничения
	Offset           int
}
