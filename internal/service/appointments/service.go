package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис для работы с записями к барберам
type Service struct {
	appointmentRepo AppointmentRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Проверяет права доступа - клиент может видеть только свою запись,
// администратор видит любую
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, actor.UserID)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !actor.CanAccess(appt.CustomerID) {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt), nil
}

// GetCustomerAppointments получает историю записей клиента
// Опционально фильтрует по статусу. Клиент видит только свою историю
func (s *Service) GetCustomerAppointments(ctx context.Context, req *models.GetCustomerAppointmentsRequest, actor domain.Actor) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetCustomerAppointments: fetching appointments for customer=%d, status=%v", req.CustomerID, req.Status)

	if !actor.CanAccess(req.CustomerID) {
		s.logger.Warn("GetCustomerAppointments: access denied for user=%d to customer=%d", actor.UserID, req.CustomerID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerAppointments: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appts, err := s.appointmentRepo.GetByCustomerID(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerAppointments: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerAppointments: successfully fetched %d appointments for customer=%d", len(appts), req.CustomerID)
	return models.FromDomainAppointmentList(appts), nil
}

// GetBarberAppointments получает записи барбера с фильтрацией
// Поддерживает фильтрацию по дате, статусу и включению отменённых записей.
// Доступно только администраторам
//
// Примеры использования:
// - Все активные записи: GetBarberAppointments(ctx, &GetBarberAppointmentsRequest{BarberID: 123}, actor)
// - Записи на дату: указать Date
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetBarberAppointments(ctx context.Context, req *models.GetBarberAppointmentsRequest, actor domain.Actor) (*models.AppointmentListResponse, error) {
	logMsg := fmt.Sprintf("GetBarberAppointments: fetching appointments for barber=%d, user=%d", req.BarberID, actor.UserID)
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", req.Date.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if !actor.IsAdmin {
		s.logger.Warn("GetBarberAppointments: access denied for user=%d to barber=%d", actor.UserID, req.BarberID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBarberAppointments: invalid filter for barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appts, err := s.appointmentRepo.GetByBarberWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBarberAppointments: repository error for barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: GetBarberAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBarberAppointments: successfully fetched %d appointments for barber=%d", len(appts), req.BarberID)
	return models.FromDomainAppointmentList(appts), nil
}

// Cancel отменяет запись
// Клиент может отменить только свою запись, администратор - любую.
// Отменить можно только будущую запись в статусе pending или confirmed
func (s *Service) Cancel(ctx context.Context, appointmentID int64, actor domain.Actor) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", appointmentID, actor.UserID)

	appt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !actor.CanAccess(appt.CustomerID) {
		s.logger.Warn("Cancel: access denied for user=%d to appointment id=%d", actor.UserID, appointmentID)
		return ErrAccessDenied
	}

	if appt.IsCancelled() {
		s.logger.Warn("Cancel: appointment id=%d is already cancelled", appointmentID)
		return ErrAlreadyCancelled
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appt.Status)
		return ErrCannotCancel
	}

	// Запись, начало которой уже наступило, отменить нельзя
	if !appt.StartsAfter(s.timeProvider.Now()) {
		s.logger.Warn("Cancel: appointment id=%d has already started, %s %s", appointmentID,
			appt.Date.Format(domain.DateFormat), appt.StartTime)
		return ErrAlreadyPast
	}

	if err := s.appointmentRepo.Cancel(ctx, appointmentID); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", appointmentID)
	return nil
}
