package conversation

import (
	"context"
	"time"

	"github.com/tablebook/reservation-service/internal/domain"
	"github.com/tablebook/reservation-service/internal/service/reservations"
	createReservationUC "github.com/tablebook/reservation-service/internal/usecase/create_reservation"
	getAvailableTablesUC "github.com/tablebook/reservation-service/internal/usecase/get_available_tables"
)

// AvailabilityResolver интерфейс usecase свободных столиков
type AvailabilityResolver interface {
	Execute(ctx context.Context, req *getAvailableTablesUC.Request) (*getAvailableTablesUC.Response, error)
}

// ReservationCreator интерфейс usecase создания бронирования
type ReservationCreator interface {
	Execute(ctx context.Context, req *createReservationUC.Request) (*createReservationUC.Response, error)
}

// GuestRegistry интерфейс регистрации гостей при первом обращении
type GuestRegistry interface {
	Ensure(ctx context.Context, requesterID int64, username *string) error
	GetByRequesterID(ctx context.Context, requesterID int64) (*domain.GuestProfile, error)
}

// RequesterLister интерфейс выборки бронирований пользователя
type RequesterLister interface {
	ListForRequester(ctx context.Context, requesterID int64) (*reservations.RequesterReservations, error)
}

// OperatorService интерфейс операторских действий над бронированиями
type OperatorService interface {
	Confirm(ctx context.Context, id int64) (*domain.Reservation, error)
	Cancel(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, scope reservations.ListScope) ([]*domain.Reservation, error)
	Stats(ctx context.Context) (*reservations.Stats, error)
	PurgePreview(ctx context.Context, scope reservations.PurgeScope) (int64, error)
	Purge(ctx context.Context, scope reservations.PurgeScope) (int64, error)
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
