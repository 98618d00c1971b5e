package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	// StatusPending is reserved for external booking flows and is never
	// assigned by this service. Pending appointments still occupy their slot.
	StatusPending AppointmentStatus = "pending"

	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"

	// StatusCompleted is assigned by an external settlement process after
	// the appointment time has passed. Completed appointments keep occupying
	// their historical slot.
	StatusCompleted AppointmentStatus = "completed"
)

// Appointment represents a booked service slot with a barber
type Appointment struct {
	ID         int64
	CustomerID int64
	ServiceID  int64
	BarberID   int64
	Date       time.Time
	StartTime  types.TimeString
	// EndTime фиксируется при создании (start + длительность услуги на тот момент)
	// и больше не пересчитывается, даже если длительность услуги изменилась
	EndTime types.TimeString
	Status  AppointmentStatus

	// Denormalized service data, frozen at creation time
	ServiceName  string
	ServicePrice float64

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesSlot returns true if the appointment blocks its time interval
// for other bookings
func (a *Appointment) OccupiesSlot() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// StartsAfter returns true if the appointment start instant (date + start time)
// is strictly after the given moment
func (a *Appointment) StartsAfter(now time.Time) bool {
	startMinutes, err := a.StartTime.MinutesSinceMidnight()
	if err != nil {
		return false
	}
	start := time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), 0, 0, 0, 0, now.Location()).
		Add(time.Duration(startMinutes) * time.Minute)
	return start.After(now)
}

// BarberAppointmentsFilter фильтр для выборки записей барбера
type BarberAppointmentsFilter struct {
	BarberID        int64              // Обязательный параметр
	Date            *time.Time         // Конкретная дата (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отмененные записи
}
