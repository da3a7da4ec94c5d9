package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointment_CanTransitionTo(t *testing.T) {
	t.Run("active statuses may move anywhere", func(t *testing.T) {
		for _, from := range []AppointmentStatus{StatusScheduled, StatusConfirmed, StatusCompleted} {
			a := &Appointment{Status: from}
			for _, to := range ValidStatuses {
				assert.True(t, a.CanTransitionTo(to), "%s -> %s", from, to)
			}
		}
	})

	t.Run("terminal statuses allow no transitions", func(t *testing.T) {
		for _, from := range []AppointmentStatus{StatusCancelled, StatusNoShow} {
			a := &Appointment{Status: from}
			for _, to := range ValidStatuses {
				assert.False(t, a.CanTransitionTo(to), "%s -> %s", from, to)
			}
		}
	})

	t.Run("unknown target rejected", func(t *testing.T) {
		a := &Appointment{Status: StatusScheduled}
		assert.False(t, a.CanTransitionTo("archived"))
	})
}

func TestAppointment_IsActive(t *testing.T) {
	// Занятость тренера определяет любой не отменённый статус, включая no_show
	assert.True(t, (&Appointment{Status: StatusScheduled}).IsActive())
	assert.True(t, (&Appointment{Status: StatusNoShow}).IsActive())
	assert.False(t, (&Appointment{Status: StatusCancelled}).IsActive())
}

func TestComputeDurationMinutes(t *testing.T) {
	start := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 60, ComputeDurationMinutes(start, start.Add(time.Hour)))
	assert.Equal(t, 90, ComputeDurationMinutes(start, start.Add(90*time.Minute)))
	assert.Equal(t, 45, ComputeDurationMinutes(start, start.Add(45*time.Minute)))
}

func TestAvailabilityWindow_Covers(t *testing.T) {
	window := &AvailabilityWindow{
		StartTime:   "09:00",
		EndTime:     "17:00",
		IsAvailable: true,
	}

	t.Run("inside", func(t *testing.T) {
		assert.True(t, window.Covers("10:00", "11:00"))
	})

	t.Run("exact bounds", func(t *testing.T) {
		assert.True(t, window.Covers("09:00", "17:00"))
	})

	t.Run("starts before window", func(t *testing.T) {
		assert.False(t, window.Covers("08:30", "10:00"))
	})

	t.Run("ends after window", func(t *testing.T) {
		assert.False(t, window.Covers("16:30", "17:30"))
	})

	t.Run("disabled window covers nothing", func(t *testing.T) {
		disabled := &AvailabilityWindow{StartTime: "09:00", EndTime: "17:00", IsAvailable: false}
		assert.False(t, disabled.Covers("10:00", "11:00"))
	})
}

func TestIsValidDayOfWeek(t *testing.T) {
	for day := 0; day <= 6; day++ {
		assert.True(t, IsValidDayOfWeek(day))
	}
	assert.False(t, IsValidDayOfWeek(-1))
	assert.False(t, IsValidDayOfWeek(7))
}
