package get_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
)

const msgTrainerNotAvailable = "Trainer is not available on this day"

// UseCase use case для получения слотов тренера на дату
type UseCase struct {
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		logger:           logger,
	}
}

// Execute выполняет use case получения слотов.
// Слоты пересчитываются на каждый запрос и нигде не сохраняются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSlots: trainer=%s, date=%s, duration=%d",
		req.TrainerID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. День недели запрашиваемой даты (0 = воскресенье)
	dayOfWeek := int(req.Date.Weekday())

	// 3. Получаем включённые окна доступности тренера на этот день
	windows, err := uc.availabilityRepo.ListAvailableForDay(ctx, req.TrainerID, dayOfWeek)
	if err != nil {
		uc.logger.Error("GetSlots: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	// 4. Нет окон - валидный пустой результат с пояснением, не ошибка
	if len(windows) == 0 {
		uc.logger.Info("GetSlots: trainer=%s has no availability on day=%d", req.TrainerID, dayOfWeek)
		return &Response{
			TrainerID:       req.TrainerID,
			Date:            req.Date,
			DurationMinutes: req.DurationMinutes,
			Slots:           []Slot{},
			Message:         msgTrainerNotAvailable,
		}, nil
	}

	// 5. Нарезаем окна на слоты шириной в запрошенную длительность
	spans, err := discretizeWindows(windows, req.DurationMinutes)
	if err != nil {
		uc.logger.Error("GetSlots: failed to discretize windows: %v", err)
		return nil, fmt.Errorf("%w: failed to discretize windows: %v", ErrInternal, err)
	}

	// 6. Получаем не отменённые встречи тренера за сутки [день, день+24ч)
	rangeStart, rangeEnd := dayRange(req.Date)
	filter := domain.AppointmentFilter{
		TrainerID:        &req.TrainerID,
		RangeStart:       &rangeStart,
		RangeEnd:         &rangeEnd,
		IncludeCancelled: false,
	}

	appointments, err := uc.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 7. Размечаем доступность слотов по занятым интервалам
	slots, err := buildSlots(spans, busySpans(appointments))
	if err != nil {
		uc.logger.Error("GetSlots: failed to build slots: %v", err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetSlots: generated %d slots for trainer=%s, date=%s",
		len(slots), req.TrainerID, req.Date.Format(domain.DateFormat))

	return &Response{
		TrainerID:       req.TrainerID,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Slots:           slots,
	}, nil
}
