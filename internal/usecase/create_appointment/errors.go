package create_appointment

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrForbidden возвращается, когда создавать встречу пытается не тренер
	ErrForbidden = errors.New("create_appointment: only trainers can create appointments")

	// ErrOutsideAvailability возвращается, когда время встречи не покрыто
	// ни одним окном доступности тренера
	ErrOutsideAvailability = errors.New("create_appointment: time is outside trainer availability window")

	// ErrSchedulingConflict возвращается при пересечении с существующей встречей
	ErrSchedulingConflict = errors.New("create_appointment: time slot conflicts with an existing appointment")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

// ConflictError ошибка конфликта расписания с интервалом конфликтующей
// встречи для отображения вызывающей стороне.
// Сопоставляется с ErrSchedulingConflict через errors.Is.
type ConflictError struct {
	Start time.Time
	End   time.Time
}

// Error возвращает текст ошибки с конфликтующим интервалом
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %s - %s",
		ErrSchedulingConflict,
		e.Start.Format(domain.TimeFormat),
		e.End.Format(domain.TimeFormat))
}

// Is позволяет errors.Is(err, ErrSchedulingConflict)
func (e *ConflictError) Is(target error) bool {
	return target == ErrSchedulingConflict
}
