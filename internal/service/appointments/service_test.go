package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FIT-ScheduleService/internal/domain"
	apptRepo "github.com/m04kA/FIT-ScheduleService/internal/infra/storage/appointment"
	"github.com/m04kA/FIT-ScheduleService/internal/service/appointments/models"
	"github.com/m04kA/FIT-ScheduleService/pkg/ptr"
)

// Репозиторий из main.go обязан удовлетворять контракту сервиса
var _ AppointmentRepository = (*apptRepo.Repository)(nil)

type repoStub struct {
	appointment *domain.Appointment
	getErr      error
	list        []*domain.Appointment
	listErr     error

	gotFilter      domain.AppointmentFilter
	gotReason      string
	gotCancelledAt time.Time
	cancelCalled   bool
	statusCalled   bool
}

func (s *repoStub) GetByID(_ context.Context, _ uuid.UUID) (*domain.Appointment, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.appointment, nil
}

func (s *repoStub) ListWithFilter(_ context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	s.gotFilter = filter
	return s.list, s.listErr
}

func (s *repoStub) UpdateStatus(_ context.Context, _ uuid.UUID, status domain.AppointmentStatus) (*domain.Appointment, error) {
	s.statusCalled = true
	updated := *s.appointment
	updated.Status = status
	return &updated, nil
}

func (s *repoStub) Cancel(_ context.Context, _ uuid.UUID, reason string, cancelledAt time.Time) (*domain.Appointment, error) {
	s.cancelCalled = true
	s.gotReason = reason
	s.gotCancelledAt = cancelledAt
	cancelled := *s.appointment
	cancelled.Status = domain.StatusCancelled
	cancelled.CancelReason = &reason
	cancelled.CancelledAt = &cancelledAt
	return &cancelled, nil
}

// fixedClock фиксированное время для детерминированных тестов отмены
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func scheduledAppointment(trainerID, clientID uuid.UUID, start time.Time) *domain.Appointment {
	return &domain.Appointment{
		ID:              uuid.New(),
		TrainerID:       trainerID,
		ClientID:        clientID,
		Title:           "Cardio session",
		AppointmentType: domain.TypeOneOnOne,
		StartDatetime:   start,
		EndDatetime:     start.Add(time.Hour),
		DurationMinutes: 60,
		Status:          domain.StatusScheduled,
	}
}

func TestCancel_LateCancellationFlag(t *testing.T) {
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	trainerID := uuid.New()
	clientID := uuid.New()

	cases := []struct {
		name  string
		start time.Time
		late  bool
	}{
		{"23 hours before start", now.Add(23 * time.Hour), true},
		{"25 hours before start", now.Add(25 * time.Hour), false},
		{"one minute before start", now.Add(time.Minute), true},
		{"appointment already started", now.Add(-time.Hour), false},
		{"exactly 24 hours before", now.Add(24 * time.Hour), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &repoStub{appointment: scheduledAppointment(trainerID, clientID, tc.start)}
			svc := NewService(repo, fixedClock{now: now}, nopLogger{})

			resp, err := svc.Cancel(context.Background(), &models.CancelAppointmentRequest{
				AppointmentID: repo.appointment.ID,
				ActingUserID:  clientID,
				ActingRole:    domain.RoleClient,
			})

			require.NoError(t, err)
			assert.Equal(t, tc.late, resp.LateCancellation)
			assert.Equal(t, now, repo.gotCancelledAt)
		})
	}
}

func TestCancel_DefaultReasonByRole(t *testing.T) {
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	trainerID := uuid.New()
	clientID := uuid.New()

	t.Run("client default", func(t *testing.T) {
		repo := &repoStub{appointment: scheduledAppointment(trainerID, clientID, now.Add(48*time.Hour))}
		svc := NewService(repo, fixedClock{now: now}, nopLogger{})

		_, err := svc.Cancel(context.Background(), &models.CancelAppointmentRequest{
			AppointmentID: repo.appointment.ID,
			ActingUserID:  clientID,
			ActingRole:    domain.RoleClient,
		})

		require.NoError(t, err)
		assert.Equal(t, "Cancelled by client", repo.gotReason)
	})

	t.Run("trainer default", func(t *testing.T) {
		repo := &repoStub{appointment: scheduledAppointment(trainerID, clientID, now.Add(48*time.Hour))}
		svc := NewService(repo, fixedClock{now: now}, nopLogger{})

		_, err := svc.Cancel(context.Background(), &models.CancelAppointmentRequest{
			AppointmentID: repo.appointment.ID,
			ActingUserID:  trainerID,
			ActingRole:    domain.RoleTrainer,
		})

		require.NoError(t, err)
		assert.Equal(t, "Cancelled by trainer", repo.gotReason)
	})

	t.Run("explicit reason wins", func(t *testing.T) {
		repo := &repoStub{appointment: scheduledAppointment(trainerID, clientID, now.Add(48*time.Hour))}
		svc := NewService(repo, fixedClock{now: now}, nopLogger{})

		_, err := svc.Cancel(context.Background(), &models.CancelAppointmentRequest{
			AppointmentID: repo.appointment.ID,
			ActingUserID:  clientID,
			ActingRole:    domain.RoleClient,
			Reason:        ptr.Ptr("Feeling sick"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Feeling sick", repo.gotReason)
	})
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	clientID := uuid.New()
	appt := scheduledAppointment(uuid.New(), clientID, now.Add(48*time.Hour))
	appt.Status = domain.StatusCancelled
	firstCancelledAt := now.Add(-time.Hour)
	appt.CancelledAt = &firstCancelledAt

	repo := &repoStub{appointment: appt}
	svc := NewService(repo, fixedClock{now: now}, nopLogger{})

	_, err := svc.Cancel(context.Background(), &models.CancelAppointmentRequest{
		AppointmentID: appt.ID,
		ActingUserID:  clientID,
		ActingRole:    domain.RoleClient,
	})

	// Повторная отмена - ошибка, первая причина и время не перезаписываются
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.False(t, repo.cancelCalled)
}

func TestCancel_StrangerForbidden(t *testing.T) {
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	repo := &repoStub{appointment: scheduledAppointment(uuid.New(), uuid.New(), now.Add(48*time.Hour))}
	svc := NewService(repo, fixedClock{now: now}, nopLogger{})

	_, err := svc.Cancel(context.Background(), &models.CancelAppointmentRequest{
		AppointmentID: repo.appointment.ID,
		ActingUserID:  uuid.New(), // не участник встречи
		ActingRole:    domain.RoleClient,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, repo.cancelCalled)
}

func TestCancel_NotFound(t *testing.T) {
	repo := &repoStub{getErr: apptRepo.ErrAppointmentNotFound}
	svc := NewService(repo, fixedClock{now: time.Now()}, nopLogger{})

	_, err := svc.Cancel(context.Background(), &models.CancelAppointmentRequest{
		AppointmentID: uuid.New(),
		ActingUserID:  uuid.New(),
		ActingRole:    domain.RoleClient,
	})

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetByID_Access(t *testing.T) {
	now := time.Now()
	trainerID := uuid.New()
	clientID := uuid.New()
	appt := scheduledAppointment(trainerID, clientID, now)

	cases := []struct {
		name    string
		userID  uuid.UUID
		role    domain.Role
		allowed bool
	}{
		{"trainer sees own appointment", trainerID, domain.RoleTrainer, true},
		{"client sees own appointment", clientID, domain.RoleClient, true},
		{"admin sees any appointment", uuid.New(), domain.RoleAdmin, true},
		{"stranger denied", uuid.New(), domain.RoleClient, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &repoStub{appointment: appt}
			svc := NewService(repo, fixedClock{now: now}, nopLogger{})

			_, err := svc.GetByID(context.Background(), &models.GetAppointmentRequest{
				AppointmentID: appt.ID,
				ActingUserID:  tc.userID,
				ActingRole:    tc.role,
			})

			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrAccessDenied)
			}
		})
	}
}

func TestList_ScopesToActor(t *testing.T) {
	now := time.Now()

	t.Run("trainer scoped to own schedule", func(t *testing.T) {
		trainerID := uuid.New()
		repo := &repoStub{}
		svc := NewService(repo, fixedClock{now: now}, nopLogger{})

		_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{
			ActingUserID: trainerID,
			ActingRole:   domain.RoleTrainer,
		})

		require.NoError(t, err)
		require.NotNil(t, repo.gotFilter.TrainerID)
		assert.Equal(t, trainerID, *repo.gotFilter.TrainerID)
	})

	t.Run("client cannot list others", func(t *testing.T) {
		repo := &repoStub{}
		svc := NewService(repo, fixedClock{now: now}, nopLogger{})

		otherClient := uuid.New()
		_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{
			ActingUserID: uuid.New(),
			ActingRole:   domain.RoleClient,
			ClientID:     &otherClient,
		})

		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin unrestricted", func(t *testing.T) {
		repo := &repoStub{}
		svc := NewService(repo, fixedClock{now: now}, nopLogger{})

		trainerID := uuid.New()
		_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{
			ActingUserID: uuid.New(),
			ActingRole:   domain.RoleAdmin,
			TrainerID:    &trainerID,
		})

		require.NoError(t, err)
		require.NotNil(t, repo.gotFilter.TrainerID)
		assert.Equal(t, trainerID, *repo.gotFilter.TrainerID)
	})
}

func TestUpdateStatus_StateMachine(t *testing.T) {
	now := time.Now()
	trainerID := uuid.New()

	t.Run("scheduled to confirmed", func(t *testing.T) {
		repo := &repoStub{appointment: scheduledAppointment(trainerID, uuid.New(), now)}
		svc := NewService(repo, fixedClock{now: now}, nopLogger{})

		resp, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
			AppointmentID: repo.appointment.ID,
			ActingUserID:  trainerID,
			ActingRole:    domain.RoleTrainer,
			Status:        "confirmed",
		})

		require.NoError(t, err)
		assert.Equal(t, "confirmed", resp.Status)
	})

	t.Run("no way out of no_show", func(t *testing.T) {
		appt := scheduledAppointment(trainerID, uuid.New(), now)
		appt.Status = domain.StatusNoShow
		repo := &repoStub{appointment: appt}
		svc := NewService(repo, fixedClock{now: now}, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
			AppointmentID: appt.ID,
			ActingUserID:  trainerID,
			ActingRole:    domain.RoleTrainer,
			Status:        "scheduled",
		})

		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.False(t, repo.statusCalled)
	})

	t.Run("client may not change status", func(t *testing.T) {
		appt := scheduledAppointment(trainerID, uuid.New(), now)
		repo := &repoStub{appointment: appt}
		svc := NewService(repo, fixedClock{now: now}, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
			AppointmentID: appt.ID,
			ActingUserID:  appt.ClientID,
			ActingRole:    domain.RoleClient,
			Status:        "confirmed",
		})

		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		repo := &repoStub{appointment: scheduledAppointment(trainerID, uuid.New(), now)}
		svc := NewService(repo, fixedClock{now: now}, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), &models.UpdateStatusRequest{
			AppointmentID: repo.appointment.ID,
			ActingUserID:  trainerID,
			ActingRole:    domain.RoleTrainer,
			Status:        "archived",
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
