package reschedule_appointment

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда встреча не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrForbidden возвращается, когда обновлять встречу пытается не её тренер
	ErrForbidden = errors.New("reschedule_appointment: only the trainer can update this appointment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	// (из cancelled и no_show переходов нет)
	ErrInvalidTransition = errors.New("reschedule_appointment: invalid status transition")

	// ErrSchedulingConflict возвращается при пересечении нового времени
	// с другой существующей встречей
	ErrSchedulingConflict = errors.New("reschedule_appointment: rescheduled time conflicts with another appointment")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)

// ConflictError ошибка конфликта расписания с интервалом конфликтующей встречи.
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
