package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservations.service: reservation not found")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	// (из cancelled переходов нет)
	ErrInvalidTransition = errors.New("reservations.service: invalid status transition")

	// ErrInvalidScope возвращается при неизвестной области очистки
	ErrInvalidScope = errors.New("reservations.service: invalid purge scope")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reservations.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations.service: internal error")
)
