package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
	"github.com/m04kA/FIT-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/FIT-ScheduleService/pkg/psqlbuilder"
)

var appointmentColumns = []string{
	"id",
	"trainer_id",
	"client_id",
	"title",
	"description",
	"appointment_type",
	"start_datetime",
	"end_datetime",
	"duration_minutes",
	"location",
	"is_online",
	"meeting_link",
	"notes",
	"status",
	"cancel_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// UpdateParams набор изменяемых полей встречи; nil-поля не трогаются
type UpdateParams struct {
	Title           *string
	Description     *string
	AppointmentType *domain.AppointmentType
	StartDatetime   *time.Time
	EndDatetime     *time.Time
	DurationMinutes *int
	Location        *string
	IsOnline        *bool
	MeetingLink     *string
	Notes           *string
	Status          *domain.AppointmentStatus
}

// Repository репозиторий для работы со встречами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория встреч
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую встречу.
// Если в контексте передана активная транзакция, использует её -
// создание всегда вызывается внутри сериализуемой транзакции вместе
// с проверкой конфликтов, чтобы закрыть гонку check-then-act.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if appt.ID == uuid.Nil {
		appt.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"id",
			"trainer_id",
			"client_id",
			"title",
			"description",
			"appointment_type",
			"start_datetime",
			"end_datetime",
			"duration_minutes",
			"location",
			"is_online",
			"meeting_link",
			"notes",
			"status",
		).
		Values(
			appt.ID,
			appt.TrainerID,
			appt.ClientID,
			appt.Title,
			appt.Description,
			appt.AppointmentType,
			appt.StartDatetime,
			appt.EndDatetime,
			appt.DurationMinutes,
			appt.Location,
			appt.IsOnline,
			appt.MeetingLink,
			appt.Notes,
			appt.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает встречу по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// ListWithFilter получает встречи с гибкой фильтрацией.
// Период полуоткрытый: start_datetime >= RangeStart AND start_datetime < RangeEnd.
// Отменённые встречи исключаются, если не запрошены явно (IncludeCancelled
// или конкретный Status).
//
// Примеры использования:
//
// 1. Активные встречи тренера на день:
//    filter := domain.AppointmentFilter{TrainerID: &id, RangeStart: &day, RangeEnd: &nextDay}
//
// 2. История клиента включая отменённые:
//    filter := domain.AppointmentFilter{ClientID: &id, IncludeCancelled: true}
//
// 3. Только подтверждённые встречи:
//    filter := domain.AppointmentFilter{TrainerID: &id, Status: &confirmed}
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments")

	if filter.TrainerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"trainer_id": *filter.TrainerID})
	}
	if filter.ClientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}

	// Полуоткрытый период по времени начала
	if filter.RangeStart != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_datetime": *filter.RangeStart})
	}
	if filter.RangeEnd != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_datetime": *filter.RangeEnd})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	selectBuilder = selectBuilder.OrderBy("start_datetime ASC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	// Внутри транзакции блокируем строки дня - защита от параллельного бронирования
	if dbmetrics.IsInTransaction(ctx) && filter.RangeStart != nil && filter.RangeEnd != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// FindOverlapping ищет первую не отменённую встречу тренера, пересекающуюся
// с интервалом [start, end). Пересечение по строгим неравенствам: встречи,
// граничащие концами, не конфликтуют. excludeID исключает саму переносимую
// встречу из проверки.
// Возвращает ErrAppointmentNotFound, если конфликтов нет.
func (r *Repository) FindOverlapping(ctx context.Context, trainerID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"trainer_id": trainerID}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		Where(squirrel.Lt{"start_datetime": end}).
		Where(squirrel.Gt{"end_datetime": start}).
		OrderBy("start_datetime ASC").
		Limit(1)

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// Update частично обновляет встречу и возвращает актуальное состояние
func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("appointments").
		Set("updated_at", squirrel.Expr("NOW()"))

	hasFields := false
	set := func(column string, value interface{}) {
		updateBuilder = updateBuilder.Set(column, value)
		hasFields = true
	}

	if params.Title != nil {
		set("title", *params.Title)
	}
	if params.Description != nil {
		set("description", *params.Description)
	}
	if params.AppointmentType != nil {
		set("appointment_type", *params.AppointmentType)
	}
	if params.StartDatetime != nil {
		set("start_datetime", *params.StartDatetime)
	}
	if params.EndDatetime != nil {
		set("end_datetime", *params.EndDatetime)
	}
	if params.DurationMinutes != nil {
		set("duration_minutes", *params.DurationMinutes)
	}
	if params.Location != nil {
		set("location", *params.Location)
	}
	if params.IsOnline != nil {
		set("is_online", *params.IsOnline)
	}
	if params.MeetingLink != nil {
		set("meeting_link", *params.MeetingLink)
	}
	if params.Notes != nil {
		set("notes", *params.Notes)
	}
	if params.Status != nil {
		set("status", *params.Status)
	}

	if !hasFields {
		return nil, ErrNoFieldsToUpdate
	}

	query, args, err := updateBuilder.
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(appointmentColumns)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// UpdateStatus обновляет только статус встречи и возвращает обновлённую строку
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(appointmentColumns)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// Cancel отменяет встречу с указанием причины и момента отмены.
// cancelled_at и cancel_reason после отмены больше никогда не перезаписываются -
// повторная отмена блокируется на уровне сервиса.
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, reason string, cancelledAt time.Time) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancel_reason", reason).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(appointmentColumns)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.TrainerID,
		&appt.ClientID,
		&appt.Title,
		&appt.Description,
		&appt.AppointmentType,
		&appt.StartDatetime,
		&appt.EndDatetime,
		&appt.DurationMinutes,
		&appt.Location,
		&appt.IsOnline,
		&appt.MeetingLink,
		&appt.Notes,
		&appt.Status,
		&appt.CancelReason,
		&appt.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
