package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
	apptRepo "github.com/m04kA/FIT-ScheduleService/internal/infra/storage/appointment"
)

type appointmentRepoStub struct {
	overlapping *domain.Appointment
	overlapErr  error
	createErr   error

	created       *domain.Appointment
	gotExcludeID  *uuid.UUID
	overlapCalled bool
}

func (s *appointmentRepoStub) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	created := *appt
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	s.created = &created
	return &created, nil
}

func (s *appointmentRepoStub) FindOverlapping(_ context.Context, _ uuid.UUID, _, _ time.Time, excludeID *uuid.UUID) (*domain.Appointment, error) {
	s.overlapCalled = true
	s.gotExcludeID = excludeID
	if s.overlapErr != nil {
		return nil, s.overlapErr
	}
	return s.overlapping, nil
}

type availabilityRepoStub struct {
	windows []*domain.AvailabilityWindow
	err     error
}

func (s *availabilityRepoStub) ListAvailableForDay(_ context.Context, _ uuid.UUID, _ int) ([]*domain.AvailabilityWindow, error) {
	return s.windows, s.err
}

// txManagerStub выполняет функцию без реальной транзакции
type txManagerStub struct{}

func (txManagerStub) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validRequest(trainerID uuid.UUID) *Request {
	// 2025-10-15 - среда
	return &Request{
		ActingUserID:    trainerID,
		ActingRole:      domain.RoleTrainer,
		TrainerID:       trainerID,
		ClientID:        uuid.New(),
		Title:           "Morning session",
		AppointmentType: domain.TypeOneOnOne,
		StartDatetime:   time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC),
		EndDatetime:     time.Date(2025, 10, 15, 11, 0, 0, 0, time.UTC),
	}
}

func fullDayWindow() []*domain.AvailabilityWindow {
	return []*domain.AvailabilityWindow{
		{ID: uuid.New(), StartTime: "09:00", EndTime: "18:00", IsAvailable: true},
	}
}

func TestExecute_Success(t *testing.T) {
	trainerID := uuid.New()
	repo := &appointmentRepoStub{overlapErr: apptRepo.ErrAppointmentNotFound}
	avail := &availabilityRepoStub{windows: fullDayWindow()}
	uc := NewUseCase(repo, avail, txManagerStub{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest(trainerID))

	require.NoError(t, err)
	assert.Equal(t, "scheduled", resp.Status)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.True(t, repo.overlapCalled)
	assert.Nil(t, repo.gotExcludeID)
}

func TestExecute_Conflict(t *testing.T) {
	trainerID := uuid.New()
	conflictStart := time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC)
	conflictEnd := time.Date(2025, 10, 15, 11, 30, 0, 0, time.UTC)
	repo := &appointmentRepoStub{overlapping: &domain.Appointment{
		ID:            uuid.New(),
		StartDatetime: conflictStart,
		EndDatetime:   conflictEnd,
		Status:        domain.StatusScheduled,
	}}
	avail := &availabilityRepoStub{windows: fullDayWindow()}
	uc := NewUseCase(repo, avail, txManagerStub{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest(trainerID))

	require.ErrorIs(t, err, ErrSchedulingConflict)

	// Ошибка несёт интервал конфликтующей встречи
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, conflictStart, conflict.Start)
	assert.Equal(t, conflictEnd, conflict.End)

	assert.Nil(t, repo.created)
}

func TestExecute_OutsideAvailability(t *testing.T) {
	trainerID := uuid.New()
	repo := &appointmentRepoStub{overlapErr: apptRepo.ErrAppointmentNotFound}
	// Окно заканчивается в 10:30 - встреча 10:00-11:00 не помещается
	avail := &availabilityRepoStub{windows: []*domain.AvailabilityWindow{
		{ID: uuid.New(), StartTime: "09:00", EndTime: "10:30", IsAvailable: true},
	}}
	uc := NewUseCase(repo, avail, txManagerStub{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest(trainerID))

	assert.ErrorIs(t, err, ErrOutsideAvailability)
	assert.Nil(t, repo.created)
}

func TestExecute_NoWindowsAtAll(t *testing.T) {
	trainerID := uuid.New()
	repo := &appointmentRepoStub{overlapErr: apptRepo.ErrAppointmentNotFound}
	avail := &availabilityRepoStub{windows: nil}
	uc := NewUseCase(repo, avail, txManagerStub{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest(trainerID))

	assert.ErrorIs(t, err, ErrOutsideAvailability)
}

func TestExecute_ForeignTrainerForbidden(t *testing.T) {
	repo := &appointmentRepoStub{overlapErr: apptRepo.ErrAppointmentNotFound}
	avail := &availabilityRepoStub{windows: fullDayWindow()}
	uc := NewUseCase(repo, avail, txManagerStub{}, nopLogger{})

	req := validRequest(uuid.New())
	req.ActingUserID = uuid.New() // другой тренер

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExecute_AdminMayCreateForAnyTrainer(t *testing.T) {
	repo := &appointmentRepoStub{overlapErr: apptRepo.ErrAppointmentNotFound}
	avail := &availabilityRepoStub{windows: fullDayWindow()}
	uc := NewUseCase(repo, avail, txManagerStub{}, nopLogger{})

	req := validRequest(uuid.New())
	req.ActingUserID = uuid.New()
	req.ActingRole = domain.RoleAdmin

	_, err := uc.Execute(context.Background(), req)

	assert.NoError(t, err)
}

func TestExecute_ClientForbidden(t *testing.T) {
	uc := NewUseCase(&appointmentRepoStub{}, &availabilityRepoStub{}, txManagerStub{}, nopLogger{})

	req := validRequest(uuid.New())
	req.ActingRole = domain.RoleClient
	req.ActingUserID = req.ClientID

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExecute_DurationDerivedFromRange(t *testing.T) {
	trainerID := uuid.New()
	repo := &appointmentRepoStub{overlapErr: apptRepo.ErrAppointmentNotFound}
	avail := &availabilityRepoStub{windows: fullDayWindow()}
	uc := NewUseCase(repo, avail, txManagerStub{}, nopLogger{})

	req := validRequest(trainerID)
	req.EndDatetime = req.StartDatetime.Add(90 * time.Minute)

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 90, resp.DurationMinutes)
}

func TestExecute_InvalidTimeRange(t *testing.T) {
	uc := NewUseCase(&appointmentRepoStub{}, &availabilityRepoStub{}, txManagerStub{}, nopLogger{})

	req := validRequest(uuid.New())
	req.EndDatetime = req.StartDatetime

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}
