package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
	apptRepo "github.com/m04kA/FIT-ScheduleService/internal/infra/storage/appointment"
)

// UseCase use case для создания встречи
type UseCase struct {
	appointmentRepo  AppointmentRepository
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute выполняет use case создания встречи.
// Проверка конфликтов и запись выполняются в одной сериализуемой транзакции,
// чтобы два параллельных создания не прошли проверку одновременно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: actor=%s, trainer=%s, client=%s, start=%s, end=%s",
		req.ActingUserID, req.TrainerID, req.ClientID,
		req.StartDatetime.Format(domain.DateFormat+" "+domain.TimeFormat),
		req.EndDatetime.Format(domain.DateFormat+" "+domain.TimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Создавать встречу может только тренер в своём расписании (или админ)
	if err := checkActorCanCreate(req); err != nil {
		uc.logger.Warn("CreateAppointment: actor=%s role=%s denied for trainer=%s",
			req.ActingUserID, req.ActingRole, req.TrainerID)
		return nil, err
	}

	// 3. Производное поле: длительность в минутах из интервала времени
	durationMinutes := domain.ComputeDurationMinutes(req.StartDatetime, req.EndDatetime)

	var result *domain.Appointment

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Проверяем пересечение с существующими не отменёнными встречами
		conflict, err := uc.appointmentRepo.FindOverlapping(txCtx, req.TrainerID, req.StartDatetime, req.EndDatetime, nil)
		if err != nil && !errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Error("CreateAppointment: failed to check conflicts: %v", err)
			return fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
		}
		if conflict != nil {
			uc.logger.Warn("CreateAppointment: conflict with appointment id=%s (%s - %s)",
				conflict.ID,
				conflict.StartDatetime.Format(domain.TimeFormat),
				conflict.EndDatetime.Format(domain.TimeFormat))
			return &ConflictError{Start: conflict.StartDatetime, End: conflict.EndDatetime}
		}

		// 4.2. Время встречи должно попадать в окно доступности тренера
		dayOfWeek := int(req.StartDatetime.Weekday())
		windows, err := uc.availabilityRepo.ListAvailableForDay(txCtx, req.TrainerID, dayOfWeek)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get availability: %v", err)
			return fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
		}

		if findCoveringWindow(windows, req.StartDatetime, req.EndDatetime) == nil {
			uc.logger.Warn("CreateAppointment: time outside availability for trainer=%s, day=%d",
				req.TrainerID, dayOfWeek)
			return ErrOutsideAvailability
		}

		// 4.3. Создаем встречу в начальном статусе scheduled
		appt := &domain.Appointment{
			TrainerID:       req.TrainerID,
			ClientID:        req.ClientID,
			Title:           req.Title,
			Description:     req.Description,
			AppointmentType: req.AppointmentType,
			StartDatetime:   req.StartDatetime,
			EndDatetime:     req.EndDatetime,
			DurationMinutes: durationMinutes,
			Location:        req.Location,
			IsOnline:        req.IsOnline,
			MeetingLink:     req.MeetingLink,
			Notes:           req.Notes,
			Status:          domain.StatusScheduled,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%s", result.ID)

	return fromDomain(result), nil
}
