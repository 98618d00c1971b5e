package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// workingWindow рабочее окно барбера в конкретную дату
type workingWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// validateRequest проверяет корректность входных данных запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customer_id must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service_id must be positive", ErrInvalidInput)
	}

	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barber_id must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start_time: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDuration проверяет, что длительность услуги в допустимых пределах
func validateDuration(durationMinutes int) error {
	if durationMinutes < domain.MinServiceDurationMinutes || durationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: service duration %d minutes is out of range", ErrInvalidInput, durationMinutes)
	}

	return nil
}

// validateSlotTime проверяет, что запрошенное время лежит на сетке слотов
// рабочего окна и слот целиком помещается в окно.
// Возвращает время окончания слота.
func validateSlotTime(window workingWindow, start types.TimeString, durationMinutes int) (types.TimeString, error) {
	if start.IsBefore(window.Start) {
		return "", fmt.Errorf("%w: start %s is before working window start %s", ErrInvalidSlotTime, start, window.Start)
	}

	startMinutes, err := start.MinutesSinceMidnight()
	if err != nil {
		return "", fmt.Errorf("%w: start_time: %v", ErrInvalidInput, err)
	}

	windowMinutes, err := window.Start.MinutesSinceMidnight()
	if err != nil {
		return "", fmt.Errorf("%w: schedule start_time: %v", ErrConflictingSchedule, err)
	}

	// Сетка слотов строится с шагом 30 минут от начала рабочего окна
	if (startMinutes-windowMinutes)%domain.SlotStepMinutes != 0 {
		return "", fmt.Errorf("%w: start %s is not aligned to the slot grid", ErrInvalidSlotTime, start)
	}

	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return "", fmt.Errorf("%w: slot does not fit into the day: %v", ErrInvalidSlotTime, err)
	}

	if end.IsAfter(window.End) {
		return "", fmt.Errorf("%w: slot end %s is after working window end %s", ErrInvalidSlotTime, end, window.End)
	}

	return end, nil
}

// scheduleForDate возвращает рабочее окно барбера на указанную дату.
// Второй результат false, если барбер в этот день не работает.
func scheduleForDate(barber *catalogservice.Barber, date time.Time) (workingWindow, bool, error) {
	weekday := int(date.Weekday())

	var (
		window workingWindow
		found  bool
	)

	for _, sched := range barber.Schedules {
		if sched.DayOfWeek != weekday {
			continue
		}

		if found {
			return workingWindow{}, false, fmt.Errorf("%w: weekday %d has multiple windows", ErrConflictingSchedule, weekday)
		}

		start, err := types.NewTimeStringFromString(sched.StartTime)
		if err != nil {
			return workingWindow{}, false, fmt.Errorf("%w: invalid start_time %q: %v", ErrConflictingSchedule, sched.StartTime, err)
		}

		end, err := types.NewTimeStringFromString(sched.EndTime)
		if err != nil {
			return workingWindow{}, false, fmt.Errorf("%w: invalid end_time %q: %v", ErrConflictingSchedule, sched.EndTime, err)
		}

		if !start.IsBefore(end) {
			return workingWindow{}, false, fmt.Errorf("%w: start %s is not before end %s", ErrConflictingSchedule, start, end)
		}

		window = workingWindow{Start: start, End: end}
		found = true
	}

	return window, found, nil
}

// hasOverlappingAppointment проверяет пересечение интервала [slotStart, slotEnd)
// с существующими активными записями
func hasOverlappingAppointment(slotStart, slotEnd types.TimeString, appointments []*domain.Appointment) bool {
	for _, appt := range appointments {
		if !appt.OccupiesSlot() {
			continue
		}

		// Полуоткрытые интервалы: записи, соприкасающиеся концами, не пересекаются
		if appt.StartTime.IsBefore(slotEnd) && appt.EndTime.IsAfter(slotStart) {
			return true
		}
	}

	return false
}

// isSameDay сравнивает даты без учета времени
func isSameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// isDateInPast проверяет, что дата строго раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	return dateDay.Before(nowDay)
}
