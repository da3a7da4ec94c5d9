package domain

import "github.com/m04kA/FIT-ScheduleService/pkg/types"

// Slot represents one bookable unit of time for a slot query.
// Slots are derived on every request and never persisted.
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Available bool
}
