package get_requester_reservations

import (
	"context"

	"github.com/tablebook/reservation-service/internal/service/reservations"
)

type ReservationsService interface {
	ListForRequester(ctx context.Context, requesterID int64) (*reservations.RequesterReservations, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
