package get_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
	getSlots "github.com/m04kA/FIT-ScheduleService/internal/usecase/get_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	TrainerID       uuid.UUID `json:"trainerId"`
	Date            string    `json:"date"`
	DurationMinutes int       `json:"durationMinutes"`
	Slots           []Slot    `json:"slots"`
	Message         string    `json:"message,omitempty"`
}

// Slot модель временного слота
type Slot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *SlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Available: slot.Available,
		}
	}

	return &SlotsResponse{
		TrainerID:       resp.TrainerID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
		Message:         resp.Message,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(trainerID uuid.UUID, dateStr string, durationMinutes int) (*getSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getSlots.Request{
		TrainerID:       trainerID,
		Date:            date,
		DurationMinutes: durationMinutes,
	}, nil
}
