package get_available_slots

import (
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

func barberWithSchedule(rows ...catalogservice.Schedule) *catalogservice.Barber {
	return &catalogservice.Barber{
		ID:        1,
		Name:      "Иван",
		IsActive:  true,
		Schedules: rows,
	}
}

func TestScheduleForDate(t *testing.T) {
	barber := barberWithSchedule(
		catalogservice.Schedule{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
		catalogservice.Schedule{DayOfWeek: 3, StartTime: "10:00", EndTime: "18:00"},
	)

	window, open, err := scheduleForDate(barber, testDate)
	require.NoError(t, err)
	require.True(t, open)
	assert.Equal(t, types.TimeString("09:00"), window.Start)
	assert.Equal(t, types.TimeString("17:00"), window.End)
}

func TestScheduleForDate_ClosedDay(t *testing.T) {
	barber := barberWithSchedule(
		catalogservice.Schedule{DayOfWeek: 3, StartTime: "10:00", EndTime: "18:00"},
	)

	_, open, err := scheduleForDate(barber, testDate)
	require.NoError(t, err)
	assert.False(t, open)
}

func TestScheduleForDate_DuplicateWeekday(t *testing.T) {
	barber := barberWithSchedule(
		catalogservice.Schedule{DayOfWeek: 2, StartTime: "09:00", EndTime: "13:00"},
		catalogservice.Schedule{DayOfWeek: 2, StartTime: "14:00", EndTime: "18:00"},
	)

	_, _, err := scheduleForDate(barber, testDate)
	require.ErrorIs(t, err, ErrConflictingSchedule)
}

func TestScheduleForDate_InvertedWindow(t *testing.T) {
	barber := barberWithSchedule(
		catalogservice.Schedule{DayOfWeek: 2, StartTime: "17:00", EndTime: "09:00"},
	)

	_, _, err := scheduleForDate(barber, testDate)
	require.ErrorIs(t, err, ErrConflictingSchedule)
}

func TestGenerateTimeSlots_FullDay(t *testing.T) {
	window := workingWindow{Start: "09:00", End: "17:00"}
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC) // другой день

	slots := generateTimeSlots(window, 30, testDate, now)

	// 09:00 .. 16:30 с шагом 30 минут; слот 16:30 заканчивается ровно в 17:00
	require.Len(t, slots, 16)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("16:30"), slots[15])
}

func TestGenerateTimeSlots_LongService(t *testing.T) {
	window := workingWindow{Start: "09:00", End: "12:00"}
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	slots := generateTimeSlots(window, 45, testDate, now)

	// Последний допустимый старт 11:00 (конец 11:45); старт 11:30 дал бы 12:15
	require.Len(t, slots, 5)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("11:00"), slots[4])
}

func TestGenerateTimeSlots_DurationLongerThanWindow(t *testing.T) {
	window := workingWindow{Start: "09:00", End: "10:00"}
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	slots := generateTimeSlots(window, 90, testDate, now)
	assert.Empty(t, slots)
}

func TestGenerateTimeSlots_TodayFiltersPastStarts(t *testing.T) {
	window := workingWindow{Start: "09:00", End: "12:00"}
	// Сейчас 10:00 того же дня: слоты 09:00, 09:30 и 10:00 уже недоступны
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	slots := generateTimeSlots(window, 30, testDate, now)

	require.Len(t, slots, 3)
	assert.Equal(t, types.TimeString("10:30"), slots[0])
	assert.Equal(t, types.TimeString("11:30"), slots[2])
}

func TestHasOverlappingAppointment(t *testing.T) {
	appointments := []*domain.Appointment{
		{StartTime: "10:00", EndTime: "10:45", Status: domain.StatusConfirmed},
	}

	tests := []struct {
		name  string
		start types.TimeString
		end   types.TimeString
		want  bool
	}{
		{name: "before, touching", start: "09:30", end: "10:00", want: false},
		{name: "overlaps start", start: "09:45", end: "10:15", want: true},
		{name: "inside", start: "10:00", end: "10:30", want: true},
		{name: "overlaps end", start: "10:30", end: "11:00", want: true},
		{name: "after, touching", start: "10:45", end: "11:15", want: false},
		{name: "well after", start: "12:00", end: "12:30", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasOverlappingAppointment(tt.start, tt.end, appointments))
		})
	}
}

func TestHasOverlappingAppointment_CancelledIgnored(t *testing.T) {
	appointments := []*domain.Appointment{
		{StartTime: "10:00", EndTime: "10:45", Status: domain.StatusCancelled},
	}

	assert.False(t, hasOverlappingAppointment("10:00", "10:30", appointments))
}
