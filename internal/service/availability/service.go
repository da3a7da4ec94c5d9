package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
	availRepo "github.com/m04kA/FIT-ScheduleService/internal/infra/storage/availability"
	"github.com/m04kA/FIT-ScheduleService/internal/service/availability/models"
)

// Service сервис для работы с окнами доступности тренеров
type Service struct {
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(availabilityRepo AvailabilityRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// List получает недельное расписание тренера.
// Тренер по умолчанию получает своё расписание; чужое расписание доступно
// на чтение любому аутентифицированному пользователю (клиент выбирает тренера).
func (s *Service) List(ctx context.Context, req *models.ListAvailabilityRequest) (*models.AvailabilityListResponse, error) {
	trainerID, err := s.resolveTrainerID(req.ActingUserID, req.ActingRole, req.TrainerID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("List: fetching availability for trainer=%s", trainerID)

	windows, err := s.availabilityRepo.ListByTrainer(ctx, trainerID)
	if err != nil {
		s.logger.Error("List: repository error for trainer=%s: %v", trainerID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d windows for trainer=%s", len(windows), trainerID)
	return models.FromDomainWindowList(trainerID, windows), nil
}

// Set сохраняет окна доступности тренера.
// Менять расписание может только сам тренер или админ. Все окна запроса
// сохраняются в одной транзакции: либо всё, либо ничего.
func (s *Service) Set(ctx context.Context, req *models.SetAvailabilityRequest) (*models.AvailabilityListResponse, error) {
	trainerID, err := s.resolveTrainerID(req.ActingUserID, req.ActingRole, req.TrainerID)
	if err != nil {
		return nil, err
	}

	// Запись разрешена только владельцу расписания или админу
	if err := s.checkWriteAccess(req.ActingUserID, req.ActingRole, trainerID); err != nil {
		s.logger.Warn("Set: access denied for user=%s role=%s to trainer=%s", req.ActingUserID, req.ActingRole, trainerID)
		return nil, err
	}

	s.logger.Info("Set: saving %d windows for trainer=%s", len(req.Windows), trainerID)

	if len(req.Windows) == 0 {
		return nil, fmt.Errorf("%w: windows list is empty", ErrInvalidInput)
	}

	// Валидируем и конвертируем все окна до записи
	windows := make([]*domain.AvailabilityWindow, 0, len(req.Windows))
	for i, input := range req.Windows {
		if !domain.IsValidDayOfWeek(input.DayOfWeek) {
			return nil, fmt.Errorf("%w: windows[%d]: dayOfWeek must be 0..6", ErrInvalidInput, i)
		}

		window, err := input.ToDomainWindow(trainerID)
		if err != nil {
			s.logger.Warn("Set: invalid window[%d] for trainer=%s: %v", i, trainerID, err)
			return nil, fmt.Errorf("%w: windows[%d]: %v", ErrInvalidInput, i, err)
		}

		if !window.IsValidRange() {
			return nil, fmt.Errorf("%w: windows[%d]: endTime must be after startTime", ErrInvalidInput, i)
		}

		windows = append(windows, window)
	}

	saved := make([]*domain.AvailabilityWindow, 0, len(windows))

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, window := range windows {
			result, err := s.availabilityRepo.Upsert(txCtx, window)
			if err != nil {
				s.logger.Error("Set: failed to upsert window for trainer=%s day=%d: %v", trainerID, window.DayOfWeek, err)
				return fmt.Errorf("%w: Set - repository error: %v", ErrInternal, err)
			}
			saved = append(saved, result)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Set: successfully saved %d windows for trainer=%s", len(saved), trainerID)
	return models.FromDomainWindowList(trainerID, saved), nil
}

// Delete удаляет окно доступности.
// Удалить окно может только его тренер или админ.
func (s *Service) Delete(ctx context.Context, req *models.DeleteAvailabilityRequest) error {
	s.logger.Info("Delete: deleting window id=%s by user=%s", req.WindowID, req.ActingUserID)

	window, err := s.availabilityRepo.GetByID(ctx, req.WindowID)
	if err != nil {
		if errors.Is(err, availRepo.ErrWindowNotFound) {
			s.logger.Warn("Delete: window id=%s not found", req.WindowID)
			return ErrWindowNotFound
		}
		s.logger.Error("Delete: repository error for window id=%s: %v", req.WindowID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.checkWriteAccess(req.ActingUserID, req.ActingRole, window.TrainerID); err != nil {
		s.logger.Warn("Delete: access denied for user=%s to window id=%s", req.ActingUserID, req.WindowID)
		return err
	}

	if err := s.availabilityRepo.Delete(ctx, req.WindowID); err != nil {
		if errors.Is(err, availRepo.ErrWindowNotFound) {
			s.logger.Warn("Delete: window id=%s not found during deletion", req.WindowID)
			return ErrWindowNotFound
		}
		s.logger.Error("Delete: repository error for window id=%s: %v", req.WindowID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted window id=%s", req.WindowID)
	return nil
}

// Вспомогательные методы

// resolveTrainerID определяет тренера, к расписанию которого относится запрос:
// явный trainerId из запроса, иначе сам действующий тренер
func (s *Service) resolveTrainerID(actingUserID uuid.UUID, role domain.Role, trainerID *uuid.UUID) (uuid.UUID, error) {
	if trainerID != nil && *trainerID != uuid.Nil {
		return *trainerID, nil
	}

	if role == domain.RoleTrainer {
		return actingUserID, nil
	}

	return uuid.Nil, fmt.Errorf("%w: trainerId is required", ErrInvalidInput)
}

// checkWriteAccess проверяет право менять расписание тренера:
// сам тренер или администратор
func (s *Service) checkWriteAccess(actingUserID uuid.UUID, role domain.Role, trainerID uuid.UUID) error {
	switch role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleTrainer:
		if actingUserID != trainerID {
			return ErrAccessDenied
		}
		return nil
	default:
		return ErrAccessDenied
	}
}
