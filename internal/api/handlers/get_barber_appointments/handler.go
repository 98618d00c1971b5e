package get_barber_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus   = "некорректный статус записи"
	msgAccessDenied    = "просмотр записей барбера доступен только администратору"
	msgUnauthorized    = "требуется аутентификация"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/appointments
// Query params: date (optional, YYYY-MM-DD), status (optional), includeInactive (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Error("GET /barbers/{id}/appointments - No actor in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	barberIDStr := vars["barberId"]

	barberID, err := strconv.ParseInt(barberIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/appointments - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	query := r.URL.Query()

	var datePtr *time.Time
	if dateStr := query.Get("date"); dateStr != "" {
		date, parseErr := time.Parse(domain.DateFormat, dateStr)
		if parseErr != nil {
			h.logger.Warn("GET /barbers/{id}/appointments - Invalid date %q: %v", dateStr, parseErr)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		datePtr = &date
	}

	var statusPtr *string
	if status := query.Get("status"); status != "" {
		statusPtr = &status
	}

	includeInactive := query.Get("includeInactive") == "true"

	serviceReq := &models.GetBarberAppointmentsRequest{
		BarberID:        barberID,
		Date:            datePtr,
		Status:          statusPtr,
		IncludeInactive: includeInactive,
	}

	result, err := h.service.GetBarberAppointments(r.Context(), serviceReq, actor)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /barbers/{id}/appointments - Access denied: barber_id=%d, user_id=%d",
				barberID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /barbers/{id}/appointments - Invalid filter: barber_id=%d", barberID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /barbers/{id}/appointments - Failed to get appointments: barber_id=%d, error=%v",
				barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /barbers/{id}/appointments - Appointments retrieved successfully: barber_id=%d, count=%d",
		barberID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
