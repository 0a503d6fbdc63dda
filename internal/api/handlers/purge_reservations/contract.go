package purge_reservations

import (
	"context"

	"github.com/tablebook/reservation-service/internal/service/reservations"
)

type ReservationsService interface {
	PurgePreview(ctx context.Context, scope reservations.PurgeScope) (int64, error)
	Purge(ctx context.Context, scope reservations.PurgeScope) (int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
