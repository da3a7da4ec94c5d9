package reschedule_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
	apptRepo "github.com/m04kA/FIT-ScheduleService/internal/infra/storage/appointment"
)

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	// FindOverlapping ищет не отменённую встречу тренера, пересекающуюся с [start, end)
	FindOverlapping(ctx context.Context, trainerID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (*domain.Appointment, error)
	Update(ctx context.Context, id uuid.UUID, params apptRepo.UpdateParams) (*domain.Appointment, error)
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
