package create_appointment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
	"github.com/m04kA/FIT-ScheduleService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TrainerID == uuid.Nil {
		return fmt.Errorf("%w: trainerID is required", ErrInvalidInput)
	}

	if req.ClientID == uuid.Nil {
		return fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	if req.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	if len(req.Title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}

	if !domain.IsValidType(req.AppointmentType) {
		return fmt.Errorf("%w: unknown appointment type %q", ErrInvalidInput, req.AppointmentType)
	}

	if req.StartDatetime.IsZero() || req.EndDatetime.IsZero() {
		return fmt.Errorf("%w: startDatetime and endDatetime are required", ErrInvalidInput)
	}

	if !req.StartDatetime.Before(req.EndDatetime) {
		return fmt.Errorf("%w: end time must be after start time", ErrInvalidInput)
	}

	if req.Location != nil && len(*req.Location) > domain.MaxLocationLength {
		return fmt.Errorf("%w: location exceeds %d characters", ErrInvalidInput, domain.MaxLocationLength)
	}

	if req.MeetingLink != nil && len(*req.MeetingLink) > domain.MaxMeetingLinkLength {
		return fmt.Errorf("%w: meetingLink exceeds %d characters", ErrInvalidInput, domain.MaxMeetingLinkLength)
	}

	return nil
}

// checkActorCanCreate проверяет, что действующий пользователь имеет право
// создавать встречу в расписании тренера: сам тренер или администратор
func checkActorCanCreate(req *Request) error {
	switch req.ActingRole {
	case domain.RoleAdmin:
		return nil
	case domain.RoleTrainer:
		if req.ActingUserID != req.TrainerID {
			return ErrForbidden
		}
		return nil
	default:
		return ErrForbidden
	}
}

// findCoveringWindow проверяет, что интервал встречи целиком покрыт хотя бы
// одним включённым окном доступности (по настенному времени начала и конца)
func findCoveringWindow(windows []*domain.AvailabilityWindow, start, end time.Time) *domain.AvailabilityWindow {
	startTS := types.NewTimeString(start)
	endTS := types.NewTimeString(end)

	for _, w := range windows {
		if w.Covers(startTS, endTS) {
			return w
		}
	}
	return nil
}
