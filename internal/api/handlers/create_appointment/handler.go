package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректные дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgSlotNotAvailable    = "выбранный временной слот недоступен"
	msgBarberNotFound      = "барбер не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgBarberInactive      = "барбер недоступен для записи"
	msgServiceInactive     = "услуга недоступна для записи"
	msgBarberClosed        = "барбер не работает в выбранную дату"
	msgInvalidDate         = "дата записи уже прошла"
	msgInvalidSlotTime     = "некорректное время слота"
	msgSlotInPast          = "выбранный слот уже начался"
	msgConflictingSchedule = "расписание барбера содержит противоречивые данные"
	msgUnauthorized        = "требуется аутентификация"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Error("POST /appointments - No actor in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor.UserID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: customer_id=%d, barber_id=%d", actor.UserID, req.BarberID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrBarberNotFound):
			h.logger.Warn("POST /appointments - Barber not found: barber_id=%d", req.BarberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrBarberInactive):
			h.logger.Warn("POST /appointments - Barber inactive: barber_id=%d", req.BarberID)
			handlers.RespondConflict(w, msgBarberInactive)

		case errors.Is(err, createAppointment.ErrServiceInactive):
			h.logger.Warn("POST /appointments - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondConflict(w, msgServiceInactive)

		case errors.Is(err, createAppointment.ErrBarberClosed):
			h.logger.Warn("POST /appointments - Barber closed: barber_id=%d, date=%s", req.BarberID, req.Date)
			handlers.RespondConflict(w, msgBarberClosed)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Date in past: customer_id=%d, date=%s", actor.UserID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrInvalidSlotTime):
			h.logger.Warn("POST /appointments - Invalid slot time: customer_id=%d, start=%s", actor.UserID, req.StartTime)
			handlers.RespondConflict(w, msgInvalidSlotTime)

		case errors.Is(err, createAppointment.ErrSlotInPast):
			h.logger.Warn("POST /appointments - Slot in past: customer_id=%d, start=%s", actor.UserID, req.StartTime)
			handlers.RespondConflict(w, msgSlotInPast)

		case errors.Is(err, createAppointment.ErrConflictingSchedule):
			h.logger.Error("POST /appointments - Conflicting schedule: barber_id=%d, error=%v", req.BarberID, err)
			handlers.RespondConflict(w, msgConflictingSchedule)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: customer_id=%d, barber_id=%d, error=%v",
				actor.UserID, req.BarberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, customer_id=%d, barber_id=%d",
		result.ID, actor.UserID, req.BarberID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
