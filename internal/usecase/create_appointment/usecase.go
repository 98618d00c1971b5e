package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UseCase создание записи к барберу
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalog         CatalogClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр UseCase
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalog CatalogClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalog:         catalog,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute создает запись, атомарно проверяя доступность слота.
// Проверка занятости и вставка выполняются в одной serializable-транзакции
// с блокировкой записей барбера на дату, поэтому из двух конкурентных
// запросов на один слот успешным будет ровно один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("create_appointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// Данные каталога читаем вне транзакции: HTTP-вызовы внутри
	// serializable-транзакции удерживали бы блокировки на время сети
	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			uc.logger.Warn("create_appointment: service %d not found", req.ServiceID)
			return nil, fmt.Errorf("%w: service_id=%d", ErrServiceNotFound, req.ServiceID)
		}
		uc.logger.Error("create_appointment: failed to get service %d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("create_appointment: service %d is inactive", req.ServiceID)
		return nil, fmt.Errorf("%w: service_id=%d", ErrServiceInactive, req.ServiceID)
	}

	if err := validateDuration(service.DurationMinutes); err != nil {
		uc.logger.Error("create_appointment: service %d has invalid duration %d", req.ServiceID, service.DurationMinutes)
		return nil, err
	}

	barber, err := uc.catalog.GetBarber(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrBarberNotFound) {
			uc.logger.Warn("create_appointment: barber %d not found", req.BarberID)
			return nil, fmt.Errorf("%w: barber_id=%d", ErrBarberNotFound, req.BarberID)
		}
		uc.logger.Error("create_appointment: failed to get barber %d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: get barber: %v", ErrInternal, err)
	}

	if !barber.IsActive {
		uc.logger.Warn("create_appointment: barber %d is inactive", req.BarberID)
		return nil, fmt.Errorf("%w: barber_id=%d", ErrBarberInactive, req.BarberID)
	}

	var created *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Все проверки повторяются внутри замыкания: при retry после
		// serialization failure они должны выполниться заново
		if isDateInPast(req.Date, now) {
			return fmt.Errorf("%w: date %s is in the past", ErrInvalidDate, req.Date.Format(domain.DateFormat))
		}

		window, works, schedErr := scheduleForDate(barber, req.Date)
		if schedErr != nil {
			return schedErr
		}
		if !works {
			return fmt.Errorf("%w: barber_id=%d, date=%s", ErrBarberClosed, req.BarberID, req.Date.Format(domain.DateFormat))
		}

		endTime, slotErr := validateSlotTime(window, req.StartTime, service.DurationMinutes)
		if slotErr != nil {
			return slotErr
		}

		if isSameDay(req.Date, now) {
			nowTime := types.NewTimeString(now)
			if !req.StartTime.IsAfter(nowTime) {
				return fmt.Errorf("%w: start %s, now %s", ErrSlotInPast, req.StartTime, nowTime)
			}
		}

		// Чтение с FOR UPDATE: конкурентная транзакция на ту же пару
		// (барбер, дата) будет ждать и увидит нашу вставку
		date := req.Date
		existing, repoErr := uc.appointmentRepo.GetByBarberWithFilter(txCtx, domain.BarberAppointmentsFilter{
			BarberID: req.BarberID,
			Date:     &date,
		})
		if repoErr != nil {
			return fmt.Errorf("%w: get barber appointments: %v", ErrInternal, repoErr)
		}

		if hasOverlappingAppointment(req.StartTime, endTime, existing) {
			return fmt.Errorf("%w: barber_id=%d, date=%s, start=%s", ErrSlotNotAvailable,
				req.BarberID, req.Date.Format(domain.DateFormat), req.StartTime)
		}

		appt := &domain.Appointment{
			CustomerID:   req.CustomerID,
			ServiceID:    req.ServiceID,
			BarberID:     req.BarberID,
			Date:         req.Date,
			StartTime:    req.StartTime,
			EndTime:      endTime,
			Status:       domain.StatusConfirmed,
			ServiceName:  service.Name,
			ServicePrice: service.Price,
		}

		created, repoErr = uc.appointmentRepo.Create(txCtx, appt)
		if repoErr != nil {
			return fmt.Errorf("%w: create appointment: %v", ErrInternal, repoErr)
		}

		return nil
	})
	if err != nil {
		if isBusinessError(err) {
			uc.logger.Warn("create_appointment: rejected: %v", err)
		} else {
			uc.logger.Error("create_appointment: transaction failed: %v", err)
			if !errors.Is(err, ErrInternal) {
				err = fmt.Errorf("%w: %v", ErrInternal, err)
			}
		}
		return nil, err
	}

	uc.logger.Info("create_appointment: appointment %d created for customer %d, barber %d, %s %s",
		created.ID, created.CustomerID, created.BarberID, created.Date.Format(domain.DateFormat), created.StartTime)

	return &Response{
		ID:           created.ID,
		CustomerID:   created.CustomerID,
		ServiceID:    created.ServiceID,
		BarberID:     created.BarberID,
		Date:         created.Date,
		StartTime:    created.StartTime,
		EndTime:      created.EndTime,
		Status:       string(created.Status),
		ServiceName:  created.ServiceName,
		ServicePrice: created.ServicePrice,
		CreatedAt:    created.CreatedAt,
		UpdatedAt:    created.UpdatedAt,
	}, nil
}

// isBusinessError отличает ожидаемые отказы от инфраструктурных ошибок
func isBusinessError(err error) bool {
	for _, target := range []error{
		ErrInvalidDate,
		ErrBarberClosed,
		ErrInvalidSlotTime,
		ErrSlotInPast,
		ErrSlotNotAvailable,
		ErrConflictingSchedule,
		ErrInvalidInput,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
