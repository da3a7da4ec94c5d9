package reschedule_appointment

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID == uuid.Nil {
		return fmt.Errorf("%w: appointmentID is required", ErrInvalidInput)
	}

	if req.Title != nil {
		if *req.Title == "" {
			return fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
		}
		if len(*req.Title) > domain.MaxTitleLength {
			return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, domain.MaxTitleLength)
		}
	}

	if req.AppointmentType != nil && !domain.IsValidType(domain.AppointmentType(*req.AppointmentType)) {
		return fmt.Errorf("%w: unknown appointment type %q", ErrInvalidInput, *req.AppointmentType)
	}

	if req.Status != nil && !domain.IsValidStatus(domain.AppointmentStatus(*req.Status)) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
	}

	if req.Location != nil && len(*req.Location) > domain.MaxLocationLength {
		return fmt.Errorf("%w: location exceeds %d characters", ErrInvalidInput, domain.MaxLocationLength)
	}

	if req.MeetingLink != nil && len(*req.MeetingLink) > domain.MaxMeetingLinkLength {
		return fmt.Errorf("%w: meetingLink exceeds %d characters", ErrInvalidInput, domain.MaxMeetingLinkLength)
	}

	return nil
}

// checkActorCanUpdate проверяет, что действующий пользователь имеет право
// обновлять встречу: её тренер или администратор
func checkActorCanUpdate(req *Request, appt *domain.Appointment) error {
	switch req.ActingRole {
	case domain.RoleAdmin:
		return nil
	case domain.RoleTrainer:
		if req.ActingUserID != appt.TrainerID {
			return ErrForbidden
		}
		return nil
	default:
		return ErrForbidden
	}
}
