package create_appointment

import "errors"

var (
	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = errors.New("create_appointment: barber not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrBarberInactive возвращается, когда барбер деактивирован
	ErrBarberInactive = errors.New("create_appointment: barber is inactive")

	// ErrServiceInactive возвращается, когда услуга деактивирована
	ErrServiceInactive = errors.New("create_appointment: service is inactive")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrBarberClosed возвращается, когда барбер не работает в указанную дату
	ErrBarberClosed = errors.New("create_appointment: barber does not work on this date")

	// ErrInvalidSlotTime возвращается, когда время начала не лежит на сетке
	// слотов или слот не помещается в рабочее окно
	ErrInvalidSlotTime = errors.New("create_appointment: invalid slot time")

	// ErrSlotInPast возвращается при попытке занять слот, начало которого
	// уже не строго в будущем
	ErrSlotInPast = errors.New("create_appointment: slot start is not in the future")

	// ErrSlotNotAvailable возвращается, когда интервал уже занят другой записью.
	// Повторная попытка имеет смысл только после перезапроса доступных слотов.
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrConflictingSchedule возвращается при поврежденном расписании в каталоге
	ErrConflictingSchedule = errors.New("create_appointment: conflicting schedule windows for weekday")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
