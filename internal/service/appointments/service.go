package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
	apptRepo "github.com/m04kA/FIT-ScheduleService/internal/infra/storage/appointment"
	"github.com/m04kA/FIT-ScheduleService/internal/service/appointments/models"
)

// Service сервис для работы со встречами
type Service struct {
	appointmentRepo AppointmentRepository
	clock           TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса встреч
func NewService(appointmentRepo AppointmentRepository, clock TimeProvider, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		clock:           clock,
		logger:          logger,
	}
}

// GetByID получает встречу по ID
// Проверяет права доступа - встречу видят только её тренер, её клиент или админ
func (s *Service) GetByID(ctx context.Context, req *models.GetAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for user=%s", req.AppointmentID, req.ActingUserID)

	appointment, err := s.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkParticipantAccess(appointment, req.ActingUserID, req.ActingRole); err != nil {
		s.logger.Warn("GetByID: access denied for user=%s to appointment id=%s", req.ActingUserID, req.AppointmentID)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%s", req.AppointmentID)
	return models.FromDomainAppointment(appointment), nil
}

// List получает список встреч с гибкой фильтрацией
// Тренер видит встречи своего расписания, клиент - свои записи,
// админ - любые. Фильтр по периоду полуоткрытый: [rangeStart, rangeEnd)
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments for user=%s role=%s", req.ActingUserID, req.ActingRole)

	// Не-админ видит только встречи, в которых участвует сам:
	// подставляем его ID в соответствующий фильтр
	switch req.ActingRole {
	case domain.RoleAdmin:
		// Без ограничений
	case domain.RoleTrainer:
		if req.TrainerID != nil && *req.TrainerID != req.ActingUserID {
			s.logger.Warn("List: trainer=%s requested schedule of trainer=%s", req.ActingUserID, *req.TrainerID)
			return nil, ErrAccessDenied
		}
		actorID := req.ActingUserID
		req.TrainerID = &actorID
	case domain.RoleClient:
		if req.ClientID != nil && *req.ClientID != req.ActingUserID {
			s.logger.Warn("List: client=%s requested appointments of client=%s", req.ActingUserID, *req.ClientID)
			return nil, ErrAccessDenied
		}
		actorID := req.ActingUserID
		req.ClientID = &actorID
	default:
		return nil, ErrAccessDenied
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for user=%s: %v", req.ActingUserID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for user=%s: %v", req.ActingUserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointments for user=%s", len(appointments), req.ActingUserID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет встречу
// Отменить встречу может её тренер, её клиент или админ.
// Повторная отмена - ошибка; причина и время первой отмены не перезаписываются.
func (s *Service) Cancel(ctx context.Context, req *models.CancelAppointmentRequest) (*models.CancelAppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%s by user=%s", req.AppointmentID, req.ActingUserID)

	// Получаем встречу
	appointment, err := s.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%s not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%s: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkParticipantAccess(appointment, req.ActingUserID, req.ActingRole); err != nil {
		s.logger.Warn("Cancel: access denied for user=%s to cancel appointment id=%s", req.ActingUserID, req.AppointmentID)
		return nil, err
	}

	// Повторная отмена запрещена
	if appointment.IsCancelled() {
		s.logger.Warn("Cancel: appointment id=%s is already cancelled", req.AppointmentID)
		return nil, ErrAlreadyCancelled
	}

	// Причина отмены по умолчанию - по роли инициатора
	reason := fmt.Sprintf("Cancelled by %s", req.ActingRole)
	if req.Reason != nil && *req.Reason != "" {
		reason = *req.Reason
	}
	if len(reason) > domain.MaxCancelReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
	}

	now := s.clock.Now()

	// Поздняя отмена: до начала ещё не начавшейся встречи осталось меньше 24 часов
	hoursUntilStart := appointment.StartDatetime.Sub(now).Hours()
	lateCancellation := hoursUntilStart > 0 && hoursUntilStart < domain.LateCancellationThresholdHours

	// Отменяем встречу
	cancelled, err := s.appointmentRepo.Cancel(ctx, req.AppointmentID, reason, now)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%s not found during cancellation", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%s: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%s, late=%t", req.AppointmentID, lateCancellation)
	return &models.CancelAppointmentResponse{
		Appointment:      models.FromDomainAppointment(cancelled),
		LateCancellation: lateCancellation,
	}, nil
}

// UpdateStatus обновляет статус встречи
// Доступно только тренеру встречи или админу; переходы из терминальных
// статусов запрещены
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: updating appointment id=%s to status=%s by user=%s",
		req.AppointmentID, req.Status, req.ActingUserID)

	// Получаем встречу
	appointment, err := s.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%s not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Менять статус может только тренер встречи или админ
	if req.ActingRole != domain.RoleAdmin &&
		!(req.ActingRole == domain.RoleTrainer && appointment.TrainerID == req.ActingUserID) {
		s.logger.Warn("UpdateStatus: access denied for user=%s to appointment id=%s", req.ActingUserID, req.AppointmentID)
		return nil, ErrAccessDenied
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%s", req.Status, req.AppointmentID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Переход проверяется машиной состояний
	if !appointment.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: invalid transition %s -> %s for appointment id=%s",
			appointment.Status, newStatus, req.AppointmentID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, newStatus)
	}

	// Обновляем статус
	updated, err := s.appointmentRepo.UpdateStatus(ctx, req.AppointmentID, newStatus)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%s not found during update", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%s to status=%s", req.AppointmentID, newStatus)
	return models.FromDomainAppointment(updated), nil
}

// Вспомогательные методы

// checkParticipantAccess проверяет, что пользователь имеет доступ к встрече:
// её тренер, её клиент или администратор
func (s *Service) checkParticipantAccess(appointment *domain.Appointment, userID uuid.UUID, role domain.Role) error {
	if role == domain.RoleAdmin {
		return nil
	}

	if appointment.TrainerID == userID || appointment.ClientID == userID {
		return nil
	}

	return ErrAccessDenied
}
