package list_reservations

import (
	"context"

	"github.com/tablebook/reservation-service/internal/domain"
	"github.com/tablebook/reservation-service/internal/service/reservations"
)

type ReservationsService interface {
	List(ctx context.Context, scope reservations.ListScope) ([]*domain.Reservation, error)
	Stats(ctx context.Context) (*reservations.Stats, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
