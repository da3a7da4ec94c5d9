package get_slots

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TrainerID == uuid.Nil {
		return fmt.Errorf("%w: trainerID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: got %d minutes", ErrInvalidDuration, req.DurationMinutes)
	}

	if req.DurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: duration exceeds %d minutes", ErrInvalidDuration, domain.MaxSlotDurationMinutes)
	}

	return nil
}
