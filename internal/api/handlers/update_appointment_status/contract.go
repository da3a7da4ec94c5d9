package update_appointment_status

import (
	"context"

	"github.com/m04kA/FIT-ScheduleService/internal/service/appointments/models"
)

type AppointmentService interface {
	UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
