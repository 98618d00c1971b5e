package domain

// Slot grid granularity
const (
	// SlotStepMinutes фиксированный шаг сетки слотов.
	// Слоты всегда начинаются с шагом 30 минут от начала рабочего окна.
	SlotStepMinutes = 30
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses список статусов, при которых запись занимает свой интервал.
// Используется при подсчете конфликтов и выборке записей на день.
var OccupyingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// InactiveStatuses список статусов, не занимающих интервал
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
}
