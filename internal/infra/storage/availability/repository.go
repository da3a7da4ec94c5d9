package availability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
	"github.com/m04kA/FIT-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/FIT-ScheduleService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с окнами доступности тренера
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает окно доступности или обновляет существующее.
// Уникальность окна: (trainer_id, day_of_week, start_time).
func (r *Repository) Upsert(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if window.ID == uuid.Nil {
		window.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("trainer_availability").
		Columns(
			"id",
			"trainer_id",
			"day_of_week",
			"start_time",
			"end_time",
			"is_available",
			"location",
		).
		Values(
			window.ID,
			window.TrainerID,
			window.DayOfWeek,
			window.StartTime,
			window.EndTime,
			window.IsAvailable,
			window.Location,
		).
		Suffix(`ON CONFLICT (trainer_id, day_of_week, start_time) DO UPDATE
			SET end_time = EXCLUDED.end_time,
			    is_available = EXCLUDED.is_available,
			    location = EXCLUDED.location,
			    updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&window.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time

	return window, nil
}

// GetByID получает окно доступности по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"trainer_id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_available",
		"location",
		"created_at",
		"updated_at",
	).
		From("trainer_availability").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var window domain.AvailabilityWindow
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&window.ID,
		&window.TrainerID,
		&window.DayOfWeek,
		&window.StartTime,
		&window.EndTime,
		&window.IsAvailable,
		&window.Location,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan window: %v", ErrScanRow, err)
	}

	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time

	return &window, nil
}

// ListByTrainer получает все окна доступности тренера (включая выключенные),
// упорядоченные по дню недели и времени начала
func (r *Repository) ListByTrainer(ctx context.Context, trainerID uuid.UUID) ([]*domain.AvailabilityWindow, error) {
	return r.list(ctx, squirrel.Eq{"trainer_id": trainerID}, "day_of_week ASC, start_time ASC")
}

// ListAvailableForDay получает включённые окна тренера на день недели
// в исходном порядке по времени начала. Пересекающиеся окна не сливаются.
func (r *Repository) ListAvailableForDay(ctx context.Context, trainerID uuid.UUID, dayOfWeek int) ([]*domain.AvailabilityWindow, error) {
	return r.list(ctx, squirrel.And{
		squirrel.Eq{"trainer_id": trainerID},
		squirrel.Eq{"day_of_week": dayOfWeek},
		squirrel.Eq{"is_available": true},
	}, "start_time ASC")
}

// Delete удаляет окно доступности
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("trainer_availability").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrWindowNotFound
	}

	return nil
}

func (r *Repository) list(ctx context.Context, where squirrel.Sqlizer, orderBy string) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"trainer_id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_available",
		"location",
		"created_at",
		"updated_at",
	).
		From("trainer_availability").
		Where(where).
		OrderBy(orderBy).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0)

	for rows.Next() {
		var window domain.AvailabilityWindow
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&window.ID,
			&window.TrainerID,
			&window.DayOfWeek,
			&window.StartTime,
			&window.EndTime,
			&window.IsAvailable,
			&window.Location,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: list - scan row: %v", ErrScanRow, err)
		}

		window.CreatedAt = createdAt.Time
		window.UpdatedAt = updatedAt.Time

		windows = append(windows, &window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}
