package reservations

import (
	"context"
	"time"

	"github.com/tablebook/reservation-service/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	CountWithFilter(ctx context.Context, filter domain.ReservationFilter) (int64, error)
	SetStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	CountExpired(ctx context.Context, now time.Time) (int64, error)
	DeleteByStatus(ctx context.Context, status domain.ReservationStatus) (int64, error)
	CountByStatus(ctx context.Context, status domain.ReservationStatus) (int64, error)
}

// Notifier интерфейс уведомлений о смене статуса
// Доставка best-effort: сбой не откатывает переход статуса
type Notifier interface {
	StatusChanged(ctx context.Context, res *domain.Reservation) error
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
