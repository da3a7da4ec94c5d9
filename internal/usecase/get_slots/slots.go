package get_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
	"github.com/m04kA/FIT-ScheduleService/pkg/interval"
	"github.com/m04kA/FIT-ScheduleService/pkg/types"
)

const minutesInDay = 24 * 60

// discretizeWindows нарезает окна доступности на слоты фиксированной ширины.
// Окна обрабатываются в исходном порядке, результаты конкатенируются без
// пересортировки и без слияния - пересекающиеся окна дают дублирующиеся
// слоты (осознанное ограничение, поведение сохранено из исходной системы).
func discretizeWindows(windows []*domain.AvailabilityWindow, stepMinutes int) ([]interval.Span, error) {
	spans := make([]interval.Span, 0)

	for _, w := range windows {
		start, err := w.StartTime.MinuteOfDay()
		if err != nil {
			return nil, fmt.Errorf("window %s: %w", w.ID, err)
		}
		end, err := w.EndTime.MinuteOfDay()
		if err != nil {
			return nil, fmt.Errorf("window %s: %w", w.ID, err)
		}

		spans = append(spans, interval.Discretize(start, end, stepMinutes)...)
	}

	return spans, nil
}

// busySpans переводит встречи в занятые минутные интервалы дня запроса.
// Встреча, заканчивающаяся на следующий день, не разрезается - её занятость
// обрезается по концу суток, иначе интервал выворачивается (End < Start)
// и не блокирует ни одного слота.
func busySpans(appointments []*domain.Appointment) []interval.Span {
	busy := make([]interval.Span, 0, len(appointments))

	for _, a := range appointments {
		if !a.IsActive() {
			continue
		}
		end := minuteOfDay(a.EndDatetime)
		if !sameDay(a.StartDatetime, a.EndDatetime) {
			end = minutesInDay
		}
		busy = append(busy, interval.Span{
			Start: minuteOfDay(a.StartDatetime),
			End:   end,
		})
	}

	return busy
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// buildSlots размечает доступность слотов и возвращает их в виде "HH:MM".
// Слот помечается занятым целиком при любом пересечении с занятым
// интервалом, даже частичном - точное вычитание не выполняется.
func buildSlots(spans []interval.Span, busy []interval.Span) ([]Slot, error) {
	marked := interval.MarkBusy(spans, busy)

	slots := make([]Slot, len(marked))
	for i, m := range marked {
		start, err := types.NewTimeStringFromMinutes(m.Start)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromMinutes(m.End)
		if err != nil {
			return nil, err
		}
		slots[i] = Slot{
			StartTime: start,
			EndTime:   end,
			Available: m.Available,
		}
	}

	return slots, nil
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// dayRange возвращает полуоткрытый суточный диапазон [начало дня, +24ч)
func dayRange(date time.Time) (time.Time, time.Time) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return dayStart, dayStart.Add(24 * time.Hour)
}
