package get_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_slots: invalid input data")

	// ErrInvalidDuration возвращается при неположительной длительности слота
	ErrInvalidDuration = errors.New("get_slots: duration must be positive")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_slots: internal error")
)
