package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UseCase use case для получения доступных слотов.
// Чистая функция от своих входов: повторный вызов без изменения записей
// возвращает идентичный результат, скрытого состояния нет.
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalog         CatalogClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalog CatalogClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalog:         catalog,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: barber=%d, service=%d, date=%s",
		req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	if err := validateDuration(service.DurationMinutes); err != nil {
		uc.logger.Warn("GetAvailableSlots: service id=%d has invalid duration: %v", req.ServiceID, err)
		return nil, err
	}

	// 4. Получаем барбера вместе с расписанием
	barber, err := uc.catalog.GetBarber(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrBarberNotFound) {
			uc.logger.Warn("GetAvailableSlots: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}

	if !barber.IsActive {
		uc.logger.Warn("GetAvailableSlots: barber id=%d is inactive", req.BarberID)
		return nil, ErrBarberInactive
	}

	emptyResponse := &Response{
		Date:            req.Date,
		BarberID:        req.BarberID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Slots:           []types.TimeString{},
	}

	// 5. Для прошедшей даты слотов нет - это не ошибка
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return emptyResponse, nil
	}

	// 6. Определяем рабочее окно на указанную дату
	window, open, err := scheduleForDate(barber, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: schedule resolution failed for barber id=%d: %v", req.BarberID, err)
		if errors.Is(err, ErrConflictingSchedule) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to resolve schedule: %v", ErrInternal, err)
	}
	if !open {
		uc.logger.Info("GetAvailableSlots: barber id=%d does not work on %s",
			req.BarberID, req.Date.Format(domain.DateFormat))
		return emptyResponse, nil
	}

	// 7. Генерируем кандидатов времени начала
	candidates := generateTimeSlots(window, service.DurationMinutes, req.Date, now)
	if len(candidates) == 0 {
		return emptyResponse, nil
	}

	// 8. Получаем занимающие интервал записи барбера на эту дату
	appointments, err := uc.appointmentRepo.GetByBarberWithFilter(ctx, domain.BarberAppointmentsFilter{
		BarberID:        req.BarberID,
		Date:            &req.Date,
		IncludeInactive: false, // Отмененные записи слот не занимают
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 9. Отбрасываем занятые слоты; порядок по возрастанию сохраняется генерацией
	slots := make([]types.TimeString, 0, len(candidates))
	for _, slotStart := range candidates {
		slotEnd, err := slotStart.AddMinutes(service.DurationMinutes)
		if err != nil {
			continue
		}
		if !hasOverlappingAppointment(slotStart, slotEnd, appointments) {
			slots = append(slots, slotStart)
		}
	}

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for barber=%d, service=%d, date=%s",
		len(slots), len(candidates), req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		BarberID:        req.BarberID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Slots:           slots,
	}, nil
}
