package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

var testNow = time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

type fakeRepo struct {
	byID      map[int64]*domain.Appointment
	cancelled []int64

	getByCustomerResult []*domain.Appointment
	getByBarberResult   []*domain.Appointment
	lastBarberFilter    domain.BarberAppointmentsFilter
}

func newFakeRepo(appointments ...*domain.Appointment) *fakeRepo {
	byID := make(map[int64]*domain.Appointment)
	for _, appt := range appointments {
		byID[appt.ID] = appt
	}
	return &fakeRepo{byID: byID}
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := r.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (r *fakeRepo) GetByCustomerID(_ context.Context, _ int64, _ *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	return r.getByCustomerResult, nil
}

func (r *fakeRepo) GetByBarberWithFilter(_ context.Context, filter domain.BarberAppointmentsFilter) ([]*domain.Appointment, error) {
	r.lastBarberFilter = filter
	return r.getByBarberResult, nil
}

func (r *fakeRepo) Cancel(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	r.cancelled = append(r.cancelled, id)
	return nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeRepo) *Service {
	svc := NewService(repo, nopLogger{})
	svc.timeProvider = &fakeClock{now: testNow}
	return svc
}

// Запись на 14:00 того же дня - начало через два часа после testNow
func futureAppointment(id, customerID int64) *domain.Appointment {
	return &domain.Appointment{
		ID:         id,
		CustomerID: customerID,
		ServiceID:  10,
		BarberID:   1,
		Date:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:  "14:00",
		EndTime:    "14:45",
		Status:     domain.StatusConfirmed,
	}
}

func TestGetByID_Owner(t *testing.T) {
	repo := newFakeRepo(futureAppointment(1, 100))
	svc := newTestService(repo)

	resp, err := svc.GetByID(context.Background(), 1, domain.Actor{UserID: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "14:00", resp.StartTime)
}

func TestGetByID_Admin(t *testing.T) {
	repo := newFakeRepo(futureAppointment(1, 100))
	svc := newTestService(repo)

	_, err := svc.GetByID(context.Background(), 1, domain.Actor{UserID: 999, IsAdmin: true})
	require.NoError(t, err)
}

func TestGetByID_Forbidden(t *testing.T) {
	repo := newFakeRepo(futureAppointment(1, 100))
	svc := newTestService(repo)

	_, err := svc.GetByID(context.Background(), 1, domain.Actor{UserID: 200})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.GetByID(context.Background(), 42, domain.Actor{UserID: 100})
	require.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetCustomerAppointments_Owner(t *testing.T) {
	repo := newFakeRepo()
	repo.getByCustomerResult = []*domain.Appointment{futureAppointment(1, 100)}
	svc := newTestService(repo)

	resp, err := svc.GetCustomerAppointments(context.Background(),
		&models.GetCustomerAppointmentsRequest{CustomerID: 100},
		domain.Actor{UserID: 100})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)
}

func TestGetCustomerAppointments_ForeignCustomer(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.GetCustomerAppointments(context.Background(),
		&models.GetCustomerAppointmentsRequest{CustomerID: 100},
		domain.Actor{UserID: 200})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetCustomerAppointments_InvalidStatus(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.GetCustomerAppointments(context.Background(),
		&models.GetCustomerAppointmentsRequest{CustomerID: 100, Status: ptr.Ptr("unknown")},
		domain.Actor{UserID: 100})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetBarberAppointments_AdminOnly(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.GetBarberAppointments(context.Background(),
		&models.GetBarberAppointmentsRequest{BarberID: 1},
		domain.Actor{UserID: 100})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetBarberAppointments_FilterPassed(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	_, err := svc.GetBarberAppointments(context.Background(),
		&models.GetBarberAppointmentsRequest{
			BarberID:        1,
			Date:            &date,
			Status:          ptr.Ptr("confirmed"),
			IncludeInactive: true,
		},
		domain.Actor{UserID: 999, IsAdmin: true})
	require.NoError(t, err)

	assert.Equal(t, int64(1), repo.lastBarberFilter.BarberID)
	require.NotNil(t, repo.lastBarberFilter.Date)
	assert.True(t, repo.lastBarberFilter.Date.Equal(date))
	require.NotNil(t, repo.lastBarberFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.lastBarberFilter.Status)
	assert.True(t, repo.lastBarberFilter.IncludeInactive)
}

func TestCancel_OwnerFutureAppointment(t *testing.T) {
	repo := newFakeRepo(futureAppointment(1, 100))
	svc := newTestService(repo)

	err := svc.Cancel(context.Background(), 1, domain.Actor{UserID: 100})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.cancelled)
}

func TestCancel_AdminForeignAppointment(t *testing.T) {
	repo := newFakeRepo(futureAppointment(1, 100))
	svc := newTestService(repo)

	err := svc.Cancel(context.Background(), 1, domain.Actor{UserID: 999, IsAdmin: true})
	require.NoError(t, err)
}

func TestCancel_Forbidden(t *testing.T) {
	repo := newFakeRepo(futureAppointment(1, 100))
	svc := newTestService(repo)

	err := svc.Cancel(context.Background(), 1, domain.Actor{UserID: 200})
	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.cancelled)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	appt := futureAppointment(1, 100)
	appt.Status = domain.StatusCancelled
	repo := newFakeRepo(appt)
	svc := newTestService(repo)

	err := svc.Cancel(context.Background(), 1, domain.Actor{UserID: 100})
	require.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancel_CompletedCannotBeCancelled(t *testing.T) {
	appt := futureAppointment(1, 100)
	appt.Status = domain.StatusCompleted
	repo := newFakeRepo(appt)
	svc := newTestService(repo)

	err := svc.Cancel(context.Background(), 1, domain.Actor{UserID: 100})
	require.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_AlreadyStarted(t *testing.T) {
	appt := futureAppointment(1, 100)
	appt.StartTime = "12:00" // ровно сейчас - уже не строго в будущем
	repo := newFakeRepo(appt)
	svc := newTestService(repo)

	err := svc.Cancel(context.Background(), 1, domain.Actor{UserID: 100})
	require.ErrorIs(t, err, ErrAlreadyPast)
	assert.Empty(t, repo.cancelled)
}

func TestCancel_PastDate(t *testing.T) {
	appt := futureAppointment(1, 100)
	appt.Date = time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	repo := newFakeRepo(appt)
	svc := newTestService(repo)

	err := svc.Cancel(context.Background(), 1, domain.Actor{UserID: 100})
	require.ErrorIs(t, err, ErrAlreadyPast)
}

func TestCancel_NotFound(t *testing.T) {
	svc := newTestService(newFakeRepo())

	err := svc.Cancel(context.Background(), 42, domain.Actor{UserID: 100})
	require.ErrorIs(t, err, ErrAppointmentNotFound)
}
