package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
	apptRepo "github.com/m04kA/FIT-ScheduleService/internal/infra/storage/appointment"
	"github.com/m04kA/FIT-ScheduleService/pkg/ptr"
)

// UseCase use case для обновления и переноса встречи
type UseCase struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointmentRepo AppointmentRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case обновления встречи.
// При переносе времени проверка конфликтов и запись выполняются в одной
// сериализуемой транзакции; собственный интервал встречи из проверки исключается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: actor=%s, appointment=%s", req.ActingUserID, req.AppointmentID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 2. Загрузка, проверки и запись в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Загружаем текущую версию встречи
		existing, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%s: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.2. Обновлять встречу может только её тренер или админ
		if err := checkActorCanUpdate(req, existing); err != nil {
			uc.logger.Warn("RescheduleAppointment: actor=%s role=%s denied for appointment=%s",
				req.ActingUserID, req.ActingRole, req.AppointmentID)
			return err
		}

		// 2.3. Смена статуса проходит через машину состояний:
		// из терминальных статусов (cancelled, no_show) переходов нет
		var newStatus *domain.AppointmentStatus
		if req.Status != nil {
			target := domain.AppointmentStatus(*req.Status)
			if !existing.CanTransitionTo(target) {
				uc.logger.Warn("RescheduleAppointment: invalid transition %s -> %s for appointment=%s",
					existing.Status, target, req.AppointmentID)
				return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, existing.Status, target)
			}
			newStatus = &target
		}

		params := apptRepo.UpdateParams{
			Title:       req.Title,
			Description: req.Description,
			Location:    req.Location,
			IsOnline:    req.IsOnline,
			MeetingLink: req.MeetingLink,
			Notes:       req.Notes,
			Status:      newStatus,
		}
		if req.AppointmentType != nil {
			params.AppointmentType = ptr.Ptr(domain.AppointmentType(*req.AppointmentType))
		}

		// 2.4. При переносе времени: непереданная граница берётся из текущей версии.
		// Время отменённой встречи менять нельзя - она уже не занимает
		// расписание тренера и не участвует в проверке конфликтов.
		if req.StartDatetime != nil || req.EndDatetime != nil {
			if !existing.CanBeRescheduled() {
				uc.logger.Warn("RescheduleAppointment: appointment id=%s has status %s and cannot be rescheduled",
					req.AppointmentID, existing.Status)
				return fmt.Errorf("%w: appointment is %s and cannot be rescheduled", ErrInvalidTransition, existing.Status)
			}

			newStart := existing.StartDatetime
			if req.StartDatetime != nil {
				newStart = *req.StartDatetime
			}
			newEnd := existing.EndDatetime
			if req.EndDatetime != nil {
				newEnd = *req.EndDatetime
			}

			if !newStart.Before(newEnd) {
				return fmt.Errorf("%w: end time must be after start time", ErrInvalidInput)
			}

			// 2.5. Проверяем пересечения с другими встречами тренера,
			// исключая саму переносимую встречу
			conflict, err := uc.appointmentRepo.FindOverlapping(txCtx, existing.TrainerID, newStart, newEnd, &existing.ID)
			if err != nil && !errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				uc.logger.Error("RescheduleAppointment: failed to check conflicts: %v", err)
				return fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
			}
			if conflict != nil {
				uc.logger.Warn("RescheduleAppointment: conflict with appointment id=%s (%s - %s)",
					conflict.ID,
					conflict.StartDatetime.Format(domain.TimeFormat),
					conflict.EndDatetime.Format(domain.TimeFormat))
				return &ConflictError{Start: conflict.StartDatetime, End: conflict.EndDatetime}
			}

			params.StartDatetime = &newStart
			params.EndDatetime = &newEnd
			params.DurationMinutes = ptr.Ptr(domain.ComputeDurationMinutes(newStart, newEnd))
		}

		// 2.6. Записываем обновление
		updated, err := uc.appointmentRepo.Update(txCtx, req.AppointmentID, params)
		if err != nil {
			if errors.Is(err, apptRepo.ErrNoFieldsToUpdate) {
				return fmt.Errorf("%w: no fields to update", ErrInvalidInput)
			}
			uc.logger.Error("RescheduleAppointment: failed to update appointment id=%s: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: successfully updated appointment id=%s", result.ID)

	return fromDomain(result), nil
}
