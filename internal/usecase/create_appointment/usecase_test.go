package create_appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Вторник
var testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

// memoryRepo потокобезопасный репозиторий в памяти
type memoryRepo struct {
	mu           sync.Mutex
	nextID       int64
	appointments []*domain.Appointment
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1}
}

func (r *memoryRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *appt
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.nextID++
	r.appointments = append(r.appointments, &stored)
	return &stored, nil
}

func (r *memoryRepo) GetByBarberWithFilter(_ context.Context, filter domain.BarberAppointmentsFilter) ([]*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*domain.Appointment
	for _, appt := range r.appointments {
		if appt.BarberID != filter.BarberID {
			continue
		}
		if filter.Date != nil && !appt.Date.Equal(*filter.Date) {
			continue
		}
		if !filter.IncludeInactive && appt.Status == domain.StatusCancelled {
			continue
		}
		result = append(result, appt)
	}
	return result, nil
}

func (r *memoryRepo) cancel(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, appt := range r.appointments {
		if appt.ID == id {
			appt.Status = domain.StatusCancelled
		}
	}
}

// serialTxManager сериализует транзакции мьютексом, моделируя
// блокировку FOR UPDATE по паре (барбер, дата)
type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
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

func defaultCatalog() *fakeCatalog {
	return &fakeCatalog{
		service: &catalogservice.Service{
			ID:              10,
			Name:            "Стрижка",
			Price:           1500,
			DurationMinutes: 45,
			IsActive:        true,
		},
		barber: &catalogservice.Barber{
			ID:       1,
			Name:     "Иван",
			IsActive: true,
			Schedules: []catalogservice.Schedule{
				{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
			},
		},
	}
}

func newTestUseCase(repo AppointmentRepository, catalog *fakeCatalog, now time.Time) *UseCase {
	uc := NewUseCase(repo, catalog, &serialTxManager{}, nopLogger{})
	uc.timeProvider = &fakeClock{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		CustomerID: 100,
		ServiceID:  10,
		BarberID:   1,
		Date:       testDate,
		StartTime:  "10:00",
	}
}

var testNow = time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

func TestExecute_Success(t *testing.T) {
	repo := newMemoryRepo()
	uc := newTestUseCase(repo, defaultCatalog(), testNow)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(100), resp.CustomerID)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("10:45"), resp.EndTime)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Equal(t, 1500.0, resp.ServicePrice)
}

func TestExecute_SlotTaken(t *testing.T) {
	repo := newMemoryRepo()
	uc := newTestUseCase(repo, defaultCatalog(), testNow)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Второй запрос на пересекающийся интервал: 10:30 пересекает 10:00-10:45
	req := validRequest()
	req.CustomerID = 200
	req.StartTime = "10:30"
	_, err = uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_TouchingSlotAllowed(t *testing.T) {
	repo := newMemoryRepo()
	uc := newTestUseCase(repo, defaultCatalog(), testNow)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// 09:00 + 45 минут = 09:45 < 10:00, начало следующей в 11:00 тоже свободно
	req := validRequest()
	req.CustomerID = 200
	req.StartTime = "09:00"
	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_CancelledSlotCanBeRebooked(t *testing.T) {
	repo := newMemoryRepo()
	uc := newTestUseCase(repo, defaultCatalog(), testNow)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	repo.cancel(resp.ID)

	req := validRequest()
	req.CustomerID = 200
	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_ConcurrentRequestsOneWins(t *testing.T) {
	repo := newMemoryRepo()
	uc := newTestUseCase(repo, defaultCatalog(), testNow)

	const workers = 8

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(customerID int64) {
			defer wg.Done()
			req := validRequest()
			req.CustomerID = customerID
			_, err := uc.Execute(context.Background(), req)
			results <- err
		}(int64(100 + i))
	}

	wg.Wait()
	close(results)

	var succeeded, conflicted int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, ErrSlotNotAvailable)
			conflicted++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicted)
	assert.Len(t, repo.appointments, 1)
}

func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase(newMemoryRepo(), defaultCatalog(), time.Date(2026, 9, 20, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_SlotInPastToday(t *testing.T) {
	// Сейчас 10:00 в день записи: слот 10:00 уже не строго в будущем
	uc := newTestUseCase(newMemoryRepo(), defaultCatalog(), time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotInPast)
}

func TestExecute_BarberClosed(t *testing.T) {
	catalog := defaultCatalog()
	catalog.barber.Schedules = []catalogservice.Schedule{
		{DayOfWeek: 3, StartTime: "09:00", EndTime: "17:00"},
	}
	uc := newTestUseCase(newMemoryRepo(), catalog, testNow)

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrBarberClosed)
}

func TestExecute_MisalignedStart(t *testing.T) {
	uc := newTestUseCase(newMemoryRepo(), defaultCatalog(), testNow)

	req := validRequest()
	req.StartTime = "10:15"
	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidSlotTime)
}

func TestExecute_SlotOutsideWindow(t *testing.T) {
	uc := newTestUseCase(newMemoryRepo(), defaultCatalog(), testNow)

	// 16:30 + 45 минут = 17:15 > 17:00
	req := validRequest()
	req.StartTime = "16:30"
	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidSlotTime)
}

func TestExecute_LastFittingSlotAllowed(t *testing.T) {
	catalog := defaultCatalog()
	catalog.service.DurationMinutes = 30
	uc := newTestUseCase(newMemoryRepo(), catalog, testNow)

	// 16:30 + 30 минут = ровно 17:00, закрытие включительно
	req := validRequest()
	req.StartTime = "16:30"
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("17:00"), resp.EndTime)
}

func TestExecute_InactiveService(t *testing.T) {
	catalog := defaultCatalog()
	catalog.service.IsActive = false
	uc := newTestUseCase(newMemoryRepo(), catalog, testNow)

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrServiceInactive)
}

func TestExecute_InactiveBarber(t *testing.T) {
	catalog := defaultCatalog()
	catalog.barber.IsActive = false
	uc := newTestUseCase(newMemoryRepo(), catalog, testNow)

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrBarberInactive)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	catalog := defaultCatalog()
	catalog.service = nil
	catalog.serviceErr = catalogservice.ErrServiceNotFound
	uc := newTestUseCase(newMemoryRepo(), catalog, testNow)

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_BarberNotFound(t *testing.T) {
	catalog := defaultCatalog()
	catalog.barber = nil
	catalog.barberErr = catalogservice.ErrBarberNotFound
	uc := newTestUseCase(newMemoryRepo(), catalog, testNow)

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrBarberNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(newMemoryRepo(), defaultCatalog(), testNow)

	req := validRequest()
	req.CustomerID = 0
	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidInput)
}
