package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fakeRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (r *fakeRepo) GetByBarberWithFilter(_ context.Context, _ domain.BarberAppointmentsFilter) ([]*domain.Appointment, error) {
	return r.appointments, r.err
}

type fakeCatalog struct {
	service    *catalogservice.Service
	serviceErr error
	barber     *catalogservice.Barber
	barberErr  error
}

func (c *fakeCatalog) GetService(_ context.Context, _ int64) (*catalogservice.Service, error) {
	return c.service, c.serviceErr
}

func (c *fakeCatalog) GetBarber(_ context.Context, _ int64) (*catalogservice.Barber, error) {
	return c.barber, c.barberErr
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

func activeService(durationMinutes int) *catalogservice.Service {
	return &catalogservice.Service{
		ID:              10,
		Name:            "Стрижка",
		Price:           1500,
		DurationMinutes: durationMinutes,
		IsActive:        true,
	}
}

func newTestUseCase(repo *fakeRepo, catalog *fakeCatalog, now time.Time) *UseCase {
	uc := NewUseCase(repo, catalog, nopLogger{})
	uc.timeProvider = &fakeClock{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{BarberID: 1, ServiceID: 10, Date: testDate}
}

func TestExecute_FullDayAvailable(t *testing.T) {
	catalog := &fakeCatalog{
		service: activeService(30),
		barber: barberWithSchedule(
			catalogservice.Schedule{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
		),
	}
	uc := newTestUseCase(&fakeRepo{}, catalog, time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 16)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0])
	assert.Equal(t, types.TimeString("16:30"), resp.Slots[15])
}

func TestExecute_BookedSlotsExcluded(t *testing.T) {
	catalog := &fakeCatalog{
		service: activeService(45),
		barber: barberWithSchedule(
			catalogservice.Schedule{DayOfWeek: 2, StartTime: "09:00", EndTime: "12:00"},
		),
	}
	repo := &fakeRepo{
		appointments: []*domain.Appointment{
			{StartTime: "10:00", EndTime: "10:45", Status: domain.StatusConfirmed},
		},
	}
	uc := newTestUseCase(repo, catalog, time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Кандидаты: 09:00, 09:30, 10:00, 10:30, 11:00.
	// 09:30, 10:00 и 10:30 пересекаются с записью 10:00-10:45
	assert.Equal(t, []types.TimeString{"09:00", "11:00"}, resp.Slots)
}

func TestExecute_CancelledAppointmentFreesSlot(t *testing.T) {
	catalog := &fakeCatalog{
		service: activeService(30),
		barber: barberWithSchedule(
			catalogservice.Schedule{DayOfWeek: 2, StartTime: "10:00", EndTime: "11:00"},
		),
	}
	repo := &fakeRepo{
		appointments: []*domain.Appointment{
			{StartTime: "10:00", EndTime: "10:30", Status: domain.StatusCancelled},
		},
	}
	uc := newTestUseCase(repo, catalog, time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"10:00", "10:30"}, resp.Slots)
}

func TestExecute_Deterministic(t *testing.T) {
	catalog := &fakeCatalog{
		service: activeService(30),
		barber: barberWithSchedule(
			catalogservice.Schedule{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
		),
	}
	repo := &fakeRepo{
		appointments: []*domain.Appointment{
			{StartTime: "11:00", EndTime: "11:30", Status: domain.StatusConfirmed},
		},
	}
	uc := newTestUseCase(repo, catalog, time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC))

	first, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	catalog := &fakeCatalog{
		service: activeService(30),
		barber: barberWithSchedule(
			catalogservice.Schedule{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
		),
	}
	uc := newTestUseCase(&fakeRepo{}, catalog, time.Date(2026, 9, 20, 12, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ClosedDayReturnsEmpty(t *testing.T) {
	catalog := &fakeCatalog{
		service: activeService(30),
		barber:  barberWithSchedule(), // расписания нет вовсе
	}
	uc := newTestUseCase(&fakeRepo{}, catalog, time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	catalog := &fakeCatalog{serviceErr: catalogservice.ErrServiceNotFound}
	uc := newTestUseCase(&fakeRepo{}, catalog, time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveService(t *testing.T) {
	svc := activeService(30)
	svc.IsActive = false
	catalog := &fakeCatalog{service: svc}
	uc := newTestUseCase(&fakeRepo{}, catalog, time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrServiceInactive)
}

func TestExecute_InactiveBarber(t *testing.T) {
	barber := barberWithSchedule(
		catalogservice.Schedule{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
	)
	barber.IsActive = false
	catalog := &fakeCatalog{service: activeService(30), barber: barber}
	uc := newTestUseCase(&fakeRepo{}, catalog, time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrBarberInactive)
}

func TestExecute_ConflictingSchedule(t *testing.T) {
	catalog := &fakeCatalog{
		service: activeService(30),
		barber: barberWithSchedule(
			catalogservice.Schedule{DayOfWeek: 2, StartTime: "09:00", EndTime: "13:00"},
			catalogservice.Schedule{DayOfWeek: 2, StartTime: "14:00", EndTime: "18:00"},
		),
	}
	uc := newTestUseCase(&fakeRepo{}, catalog, time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrConflictingSchedule)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, &fakeCatalog{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{BarberID: 0, ServiceID: 10, Date: testDate})
	require.ErrorIs(t, err, ErrInvalidInput)
}
