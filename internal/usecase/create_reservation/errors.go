package create_reservation

import "errors"

var (
	// ErrInvalidDate возвращается для прошедшей даты или даты за горизонтом
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrUnknownZone возвращается для несуществующей зоны
	ErrUnknownZone = errors.New("create_reservation: unknown zone")

	// ErrInvalidTimeSlot возвращается, когда время не входит в сетку слотов дня
	ErrInvalidTimeSlot = errors.New("create_reservation: time is not an open slot")

	// ErrUnknownTable возвращается, когда столик не принадлежит зоне
	ErrUnknownTable = errors.New("create_reservation: table does not belong to zone")

	// ErrInvalidPartySize возвращается при недопустимом количестве гостей
	ErrInvalidPartySize = errors.New("create_reservation: invalid party size")

	// ErrInvalidName возвращается при недопустимой длине имени
	ErrInvalidName = errors.New("create_reservation: invalid name")

	// ErrInvalidPhone возвращается, когда контакт не сводится к номеру телефона
	ErrInvalidPhone = errors.New("create_reservation: invalid phone")

	// ErrSlotTaken возвращается при проигрыше гонки за (дата, время, зона, столик)
	ErrSlotTaken = errors.New("create_reservation: slot already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
