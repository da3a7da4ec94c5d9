package cancel_appointment

import (
	"github.com/google/uuid"

	"github.com/m04kA/FIT-ScheduleService/internal/api/middleware"
	"github.com/m04kA/FIT-ScheduleService/internal/service/appointments/models"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelAppointmentRequest) ToServiceRequest(appointmentID uuid.UUID, actor middleware.Actor) *models.CancelAppointmentRequest {
	return &models.CancelAppointmentRequest{
		AppointmentID: appointmentID,
		ActingUserID:  actor.UserID,
		ActingRole:    actor.Role,
		Reason:        r.Reason,
	}
}
