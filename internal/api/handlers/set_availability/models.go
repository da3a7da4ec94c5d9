package set_availability

import (
	"github.com/google/uuid"

	"github.com/m04kA/FIT-ScheduleService/internal/api/middleware"
	"github.com/m04kA/FIT-ScheduleService/internal/service/availability/models"
)

// SetAvailabilityRequest HTTP request model
type SetAvailabilityRequest struct {
	TrainerID *uuid.UUID           `json:"trainerId,omitempty"`
	Windows   []models.WindowInput `json:"windows"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *SetAvailabilityRequest) ToServiceRequest(actor middleware.Actor) *models.SetAvailabilityRequest {
	return &models.SetAvailabilityRequest{
		ActingUserID: actor.UserID,
		ActingRole:   actor.Role,
		TrainerID:    r.TrainerID,
		Windows:      r.Windows,
	}
}
