package get_available_tables

import (
	"time"

	"github.com/tablebook/reservation-service/pkg/types"
)

// Request модель запроса свободных столиков
type Request struct {
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время слота (например, "19:30")
	Zone      string           // Идентификатор зоны
}

// Response модель ответа со свободными столиками
// Пустой список означает "предложить нечего", а не ошибку
type Response struct {
	Tables []int // Номера свободных столиков, по возрастанию
}
