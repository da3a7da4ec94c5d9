package appointments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
)

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	ListWithFilter(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) (*domain.Appointment, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string, cancelledAt time.Time) (*domain.Appointment, error)
}

// TimeProvider источник текущего времени, подменяется в тестах
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
