package domain

// Default values
const (
	DefaultSlotDurationMinutes = 60
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MaxTitleLength         = 255
	MaxLocationLength      = 255
	MaxMeetingLinkLength   = 500
	MaxCancelReasonLength  = 500

	// LateCancellationThresholdHours граница поздней отмены: отмена менее чем
	// за 24 часа до начала встречи помечается флагом lateCancellation
	LateCancellationThresholdHours = 24
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ValidStatuses список допустимых статусов встречи
var ValidStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// ValidTypes список допустимых типов встречи
var ValidTypes = []AppointmentType{
	TypeOneOnOne,
	TypeGroupClass,
	TypeAssessment,
	TypeConsultation,
	TypeOnlineSession,
}
