package catalogservice

// Service модель услуги из каталога
type Service struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	IsActive        bool    `json:"is_active"`
}

// Barber модель барбера из каталога вместе с недельным расписанием
type Barber struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	IsActive  bool       `json:"is_active"`
	Schedules []Schedule `json:"schedules"`
}

// Schedule одна строка недельного расписания барбера.
// DayOfWeek: 0 = воскресенье ... 6 = суббота.
// Времена приходят как "HH:MM" или "HH:MM:SS".
type Schedule struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
