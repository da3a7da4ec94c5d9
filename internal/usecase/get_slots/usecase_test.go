package get_slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
)

type availabilityRepoStub struct {
	windows []*domain.AvailabilityWindow
	err     error

	gotTrainerID uuid.UUID
	gotDayOfWeek int
}

func (s *availabilityRepoStub) ListAvailableForDay(_ context.Context, trainerID uuid.UUID, dayOfWeek int) ([]*domain.AvailabilityWindow, error) {
	s.gotTrainerID = trainerID
	s.gotDayOfWeek = dayOfWeek
	return s.windows, s.err
}

type appointmentRepoStub struct {
	appointments []*domain.Appointment
	err          error

	gotFilter domain.AppointmentFilter
}

func (s *appointmentRepoStub) ListWithFilter(_ context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	s.gotFilter = filter
	return s.appointments, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func appointment(date time.Time, startHour, startMin, endHour, endMin int, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:            uuid.New(),
		StartDatetime: time.Date(date.Year(), date.Month(), date.Day(), startHour, startMin, 0, 0, time.UTC),
		EndDatetime:   time.Date(date.Year(), date.Month(), date.Day(), endHour, endMin, 0, 0, time.UTC),
		Status:        status,
	}
}

func TestExecute_NoAvailability(t *testing.T) {
	availRepo := &availabilityRepoStub{windows: nil}
	apptRepo := &appointmentRepoStub{}
	uc := NewUseCase(availRepo, apptRepo, nopLogger{})

	// 2025-10-15 - среда
	resp, err := uc.Execute(context.Background(), &Request{
		TrainerID:       uuid.New(),
		Date:            time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, "Trainer is not available on this day", resp.Message)
	assert.Equal(t, 3, availRepo.gotDayOfWeek)
}

func TestExecute_MarksBookedSlots(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	availRepo := &availabilityRepoStub{windows: []*domain.AvailabilityWindow{
		{ID: uuid.New(), StartTime: "09:00", EndTime: "12:00", IsAvailable: true},
	}}
	apptRepo := &appointmentRepoStub{appointments: []*domain.Appointment{
		appointment(date, 10, 0, 11, 0, domain.StatusScheduled),
	}}
	uc := NewUseCase(availRepo, apptRepo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		TrainerID:       uuid.New(),
		Date:            date,
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)

	assert.Equal(t, "09:00", resp.Slots[0].StartTime.String())
	assert.True(t, resp.Slots[0].Available)
	assert.Equal(t, "10:00", resp.Slots[1].StartTime.String())
	assert.False(t, resp.Slots[1].Available)
	assert.Equal(t, "11:00", resp.Slots[2].StartTime.String())
	assert.True(t, resp.Slots[2].Available)
	assert.Empty(t, resp.Message)
}

func TestExecute_PartialOverlapBlocksWholeSlot(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	availRepo := &availabilityRepoStub{windows: []*domain.AvailabilityWindow{
		{ID: uuid.New(), StartTime: "10:00", EndTime: "12:00", IsAvailable: true},
	}}
	// Встреча 10:30-10:45 занимает слот 10:00-11:00 целиком
	apptRepo := &appointmentRepoStub{appointments: []*domain.Appointment{
		appointment(date, 10, 30, 10, 45, domain.StatusConfirmed),
	}}
	uc := NewUseCase(availRepo, apptRepo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		TrainerID:       uuid.New(),
		Date:            date,
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.False(t, resp.Slots[0].Available)
	assert.True(t, resp.Slots[1].Available)
}

func TestExecute_TouchingAppointmentDoesNotBlock(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	availRepo := &availabilityRepoStub{windows: []*domain.AvailabilityWindow{
		{ID: uuid.New(), StartTime: "10:00", EndTime: "11:00", IsAvailable: true},
	}}
	// Встреча заканчивается ровно в 10:00 - слот 10:00-11:00 свободен
	apptRepo := &appointmentRepoStub{appointments: []*domain.Appointment{
		appointment(date, 9, 0, 10, 0, domain.StatusScheduled),
	}}
	uc := NewUseCase(availRepo, apptRepo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		TrainerID:       uuid.New(),
		Date:            date,
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.True(t, resp.Slots[0].Available)
}

func TestExecute_TrailingPartialSlotDropped(t *testing.T) {
	availRepo := &availabilityRepoStub{windows: []*domain.AvailabilityWindow{
		{ID: uuid.New(), StartTime: "09:00", EndTime: "10:30", IsAvailable: true},
	}}
	apptRepo := &appointmentRepoStub{}
	uc := NewUseCase(availRepo, apptRepo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		TrainerID:       uuid.New(),
		Date:            time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	// Хвост 10:00-10:30 короче слота и отбрасывается
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "10:00", resp.Slots[0].EndTime.String())
}

func TestExecute_MidnightSpanningAppointmentBlocksEvening(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	availRepo := &availabilityRepoStub{windows: []*domain.AvailabilityWindow{
		{ID: uuid.New(), StartTime: "21:00", EndTime: "23:59", IsAvailable: true},
	}}
	// Встреча 22:30 - 01:00 следующего дня: занятость обрезается по концу
	// суток и блокирует вечерние слоты
	nextDay := &domain.Appointment{
		ID:            uuid.New(),
		StartDatetime: time.Date(2025, 10, 15, 22, 30, 0, 0, time.UTC),
		EndDatetime:   time.Date(2025, 10, 16, 1, 0, 0, 0, time.UTC),
		Status:        domain.StatusScheduled,
	}
	apptRepo := &appointmentRepoStub{appointments: []*domain.Appointment{nextDay}}
	uc := NewUseCase(availRepo, apptRepo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		TrainerID:       uuid.New(),
		Date:            date,
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.True(t, resp.Slots[0].Available)  // 21:00-22:00
	assert.False(t, resp.Slots[1].Available) // 22:00-23:00 задет хвостом встречи
}

func TestExecute_QueriesHalfOpenDayRange(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	availRepo := &availabilityRepoStub{windows: []*domain.AvailabilityWindow{
		{ID: uuid.New(), StartTime: "09:00", EndTime: "10:00", IsAvailable: true},
	}}
	apptRepo := &appointmentRepoStub{}
	uc := NewUseCase(availRepo, apptRepo, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		TrainerID:       uuid.New(),
		Date:            date,
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	require.NotNil(t, apptRepo.gotFilter.RangeStart)
	require.NotNil(t, apptRepo.gotFilter.RangeEnd)
	assert.Equal(t, date, *apptRepo.gotFilter.RangeStart)
	assert.Equal(t, date.Add(24*time.Hour), *apptRepo.gotFilter.RangeEnd)
	assert.False(t, apptRepo.gotFilter.IncludeCancelled)
}

func TestExecute_InvalidDuration(t *testing.T) {
	uc := NewUseCase(&availabilityRepoStub{}, &appointmentRepoStub{}, nopLogger{})

	for _, duration := range []int{0, -30, 481} {
		_, err := uc.Execute(context.Background(), &Request{
			TrainerID:       uuid.New(),
			Date:            time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
			DurationMinutes: duration,
		})

		assert.ErrorIs(t, err, ErrInvalidDuration, "duration %d", duration)
	}
}

func TestExecute_MissingTrainerID(t *testing.T) {
	uc := NewUseCase(&availabilityRepoStub{}, &appointmentRepoStub{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		Date:            time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
