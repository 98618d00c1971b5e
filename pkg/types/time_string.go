package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TimeString время в формате "HH:MM" без даты и часового пояса.
// Все времена в системе считаются локальными для единственной
// временной зоны бизнеса, конвертаций не выполняется.
type TimeString string

const minutesPerDay = 24 * 60

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата.
// Принимает "HH:MM" и "HH:MM:SS" (секунды отбрасываются) - Postgres
// возвращает колонки TIME с секундами.
func NewTimeStringFromString(s string) (TimeString, error) {
	if len(s) == 8 {
		s = s[:5]
	}
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет, что строка имеет формат "HH:MM"
func (t TimeString) Validate() error {
	if _, err := t.minutes(); err != nil {
		return err
	}
	return nil
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// AddMinutes прибавляет n минут.
// Возвращает ошибку, если результат выходит за пределы суток -
// интервалы через полночь не поддерживаются.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	m, err := t.minutes()
	if err != nil {
		return "", err
	}
	m += n
	if m < 0 || m >= minutesPerDay {
		return "", fmt.Errorf("time %q + %d minutes is outside of the day", t, n)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// Compare сравнивает два времени: -1 если t раньше other, 0 если равны, 1 если позже
func (t TimeString) Compare(other TimeString) int {
	// Формат "HH:MM" с ведущими нулями сравнивается лексикографически
	switch {
	case t < other:
		return -1
	case t > other:
		return 1
	default:
		return 0
	}
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Compare(other) < 0
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Compare(other) > 0
}

// MinutesSinceMidnight возвращает количество минут от полуночи
func (t TimeString) MinutesSinceMidnight() (int, error) {
	return t.minutes()
}

func (t TimeString) minutes() (int, error) {
	var hh, mm int
	if _, err := fmt.Sscanf(string(t), "%02d:%02d", &hh, &mm); err != nil {
		return 0, fmt.Errorf("invalid time string format %q, expected HH:MM: %w", t, err)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("invalid time string %q, expected HH:MM in 00:00..23:59", t)
	}
	if len(t) != 5 || t[2] != ':' {
		return 0, fmt.Errorf("invalid time string format %q, expected HH:MM", t)
	}
	return hh*60 + mm, nil
}

// MarshalJSON сериализует время как JSON строку
func (t TimeString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

// UnmarshalJSON десериализует время из JSON строки с валидацией
func (t *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}

// Scan реализует sql.Scanner для чтения из колонок TIME
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		ts, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = ts
		return nil
	case []byte:
		ts, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = ts
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}
}

// Value реализует driver.Valuer для записи в колонки TIME
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}
