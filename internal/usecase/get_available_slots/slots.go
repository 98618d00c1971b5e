package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// workingWindow рабочее окно барбера на конкретный день
type workingWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// scheduleForDate возвращает рабочее окно барбера на указанную дату.
// Второй результат false, если барбер в этот день недели не работает.
// Ошибка возвращается, если в каталоге больше одной строки расписания
// на этот день недели - такие данные считаем поврежденными и не пытаемся
// выбрать одну из строк.
func scheduleForDate(barber *catalogservice.Barber, date time.Time) (workingWindow, bool, error) {
	weekday := int(date.Weekday())

	var window workingWindow
	found := false

	for _, row := range barber.Schedules {
		if row.DayOfWeek != weekday {
			continue
		}
		if found {
			return workingWindow{}, false, ErrConflictingSchedule
		}

		start, err := types.NewTimeStringFromString(row.StartTime)
		if err != nil {
			return workingWindow{}, false, err
		}
		end, err := types.NewTimeStringFromString(row.EndTime)
		if err != nil {
			return workingWindow{}, false, err
		}
		if !start.IsBefore(end) {
			return workingWindow{}, false, ErrConflictingSchedule
		}

		window = workingWindow{Start: start, End: end}
		found = true
	}

	return window, found, nil
}

// generateTimeSlots генерирует все кандидаты времени начала внутри рабочего окна.
// Сетка фиксированная: от начала окна с шагом domain.SlotStepMinutes, независимо
// от длительности услуги. Слот допустим, пока он целиком помещается в окно;
// слот, заканчивающийся ровно в закрытие, допустим.
// Для сегодняшней даты отбрасываются слоты, начинающиеся не строго в будущем.
func generateTimeSlots(
	window workingWindow,
	durationMinutes int,
	requestDate time.Time,
	now time.Time,
) []types.TimeString {
	slots := make([]types.TimeString, 0)
	today := isSameDay(requestDate, now)
	nowTime := types.NewTimeString(now)

	current := window.Start
	for {
		slotEnd, err := current.AddMinutes(durationMinutes)
		if err != nil {
			// Конец слота вышел за пределы суток
			break
		}
		if slotEnd.IsAfter(window.End) {
			break
		}

		if !today || current.IsAfter(nowTime) {
			slots = append(slots, current)
		}

		next, err := current.AddMinutes(domain.SlotStepMinutes)
		if err != nil {
			break
		}
		current = next
	}

	return slots
}

// hasOverlappingAppointment проверяет занятость интервала [slotStart, slotEnd).
// Интервалы полуоткрытые: запись, заканчивающаяся ровно в начале слота
// (или начинающаяся ровно в его конце), не считается пересечением.
// Концы существующих записей берутся как сохранены - они были зафиксированы
// при создании и не пересчитываются из текущей длительности услуги.
func hasOverlappingAppointment(slotStart, slotEnd types.TimeString, appointments []*domain.Appointment) bool {
	for _, appt := range appointments {
		// Пропускаем записи, не занимающие интервал
		if !appt.OccupiesSlot() {
			continue
		}

		// Пересечение только при строгих неравенствах с обеих сторон
		if appt.StartTime.IsBefore(slotEnd) && appt.EndTime.IsAfter(slotStart) {
			return true
		}
	}

	return false
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
