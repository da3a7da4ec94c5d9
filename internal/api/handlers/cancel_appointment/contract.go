package cancel_appointment

import (
	"context"

	"github.com/m04kA/FIT-ScheduleService/internal/service/appointments/models"
)

type AppointmentService interface {
	Cancel(ctx context.Context, req *models.CancelAppointmentRequest) (*models.CancelAppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
