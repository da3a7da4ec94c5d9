package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/m04kA/FIT-ScheduleService/pkg/types"
)

// AvailabilityWindow represents one recurring weekly block during which
// a trainer accepts bookings
type AvailabilityWindow struct {
	ID          uuid.UUID
	TrainerID   uuid.UUID
	DayOfWeek   int // 0-6, Sunday=0
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
	Location    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidRange returns true if the window's time range is well-formed
func (w *AvailabilityWindow) IsValidRange() bool {
	return w.StartTime.Validate() == nil &&
		w.EndTime.Validate() == nil &&
		w.StartTime.IsBefore(w.EndTime)
}

// Covers returns true if the window fully contains [start, end) and is bookable
func (w *AvailabilityWindow) Covers(start, end types.TimeString) bool {
	return w.IsAvailable && !w.StartTime.IsAfter(start) && !w.EndTime.IsBefore(end)
}

// IsValidDayOfWeek returns true for values 0 (Sunday) through 6 (Saturday)
func IsValidDayOfWeek(day int) bool {
	return day >= 0 && day <= 6
}
