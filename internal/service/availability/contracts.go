package availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	Upsert(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AvailabilityWindow, error)
	ListByTrainer(ctx context.Context, trainerID uuid.UUID) ([]*domain.AvailabilityWindow, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
