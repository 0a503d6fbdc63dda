package create_reservation

import (
	"context"
	"time"

	"github.com/tablebook/reservation-service/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	CreateIfAvailable(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// GuestRepository интерфейс репозитория профилей гостей
type GuestRepository interface {
	Ensure(ctx context.Context, requesterID int64, username *string) error
	UpdateContact(ctx context.Context, requesterID int64, fullName, phone string) error
}

// Notifier интерфейс уведомлений (best-effort, сбой доставки не
// откатывает созданное бронирование)
type Notifier interface {
	ReservationCreated(ctx context.Context, res *domain.Reservation) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
