package get_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/FIT-ScheduleService/pkg/types"
)

// Request модель запроса на получение слотов тренера
type Request struct {
	TrainerID       uuid.UUID // ID тренера
	Date            time.Time // Дата, на которую запрашиваются слоты (без времени)
	DurationMinutes int       // Длительность слота в минутах
}

// Response модель ответа со списком слотов.
// Пустой список с непустым Message - валидный результат
// ("тренер не работает в этот день"), а не ошибка.
type Response struct {
	TrainerID       uuid.UUID
	Date            time.Time
	DurationMinutes int
	Slots           []Slot
	Message         string // Пояснение при пустом списке слотов
}

// Slot модель одного слота
type Slot struct {
	StartTime types.TimeString // Время начала слота (например, "10:00")
	EndTime   types.TimeString // Время конца слота
	Available bool             // Свободен ли слот
}
