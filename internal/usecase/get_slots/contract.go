package get_slots

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	// ListAvailableForDay получает включённые окна тренера на день недели
	ListAvailableForDay(ctx context.Context, trainerID uuid.UUID, dayOfWeek int) ([]*domain.AvailabilityWindow, error)
}

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	// ListWithFilter получает встречи тренера за период
	ListWithFilter(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
