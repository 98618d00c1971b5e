package get_available_slots

import "errors"

var (
	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = errors.New("get_available_slots: barber not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrBarberInactive возвращается, когда барбер деактивирован
	ErrBarberInactive = errors.New("get_available_slots: barber is inactive")

	// ErrServiceInactive возвращается, когда услуга деактивирована
	ErrServiceInactive = errors.New("get_available_slots: service is inactive")

	// ErrConflictingSchedule возвращается, когда у барбера в каталоге
	// больше одного рабочего окна на один день недели
	ErrConflictingSchedule = errors.New("get_available_slots: conflicting schedule windows for weekday")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
