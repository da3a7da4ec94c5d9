package set_availability

import (
	"context"

	"github.com/m04kA/FIT-ScheduleService/internal/service/availability/models"
)

type AvailabilityService interface {
	Set(ctx context.Context, req *models.SetAvailabilityRequest) (*models.AvailabilityListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
