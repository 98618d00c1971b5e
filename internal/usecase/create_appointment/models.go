package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	CustomerID int64            // ID клиента (действующий пользователь)
	ServiceID  int64            // ID услуги
	BarberID   int64            // ID барбера
	Date       time.Time        // Дата записи (без времени)
	StartTime  types.TimeString // Время начала слота (например, "10:00")
}

// Response модель ответа с созданной записью
type Response struct {
	ID         int64            // ID созданной записи
	CustomerID int64            // ID клиента
	ServiceID  int64            // ID услуги
	BarberID   int64            // ID барбера
	Date       time.Time        // Дата записи
	StartTime  types.TimeString // Время начала
	EndTime    types.TimeString // Время окончания (зафиксировано при создании)
	Status     string           // Статус записи

	// Денормализованные данные услуги
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги на момент записи

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
