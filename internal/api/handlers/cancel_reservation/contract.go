package cancel_reservation

import (
	"context"

	"github.com/tablebook/reservation-service/internal/domain"
)

type ReservationsService interface {
	Cancel(ctx context.Context, id int64) (*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
