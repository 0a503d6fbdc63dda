package create_reservation

import (
	"time"

	"github.com/tablebook/reservation-service/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	RequesterID int64            // ID пользователя
	Username    *string          // Username пользователя (опционально)
	FullName    string           // Имя для брони
	Phone       string           // Контактный телефон (в исходном виде)
	Zone        string           // Идентификатор зоны
	TableNumber int              // Номер столика
	Date        time.Time        // Дата бронирования (без времени)
	StartTime   types.TimeString // Время слота
	PartySize   int              // Количество гостей
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	RequesterID int64
	FullName    string
	Phone       string
	Zone        string
	TableNumber int
	Date        time.Time
	StartTime   types.TimeString
	PartySize   int
	Status      string
	CreatedAt   time.Time
}
