package create_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
)

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	// FindOverlapping ищет не отменённую встречу тренера, пересекающуюся с [start, end)
	FindOverlapping(ctx context.Context, trainerID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (*domain.Appointment, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	ListAvailableForDay(ctx context.Context, trainerID uuid.UUID, dayOfWeek int) ([]*domain.AvailabilityWindow, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
