package cleaner

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ReservationRepository интерфейс для удаления просроченных бронирований
type ReservationRepository interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Cleaner фоновая очистка бронирований с прошедшей датой/временем.
// Выполняет ту же атомарную операцию хранилища, что и интерактивные
// обработчики, без внешних блокировок — конкурентный доступ разрешает
// само хранилище
type Cleaner struct {
	repo     ReservationRepository
	interval time.Duration
	logger   Logger

	// sweepDeleted счетчик удаленных броней, может быть nil при выключенных метриках
	sweepDeleted prometheus.Counter
}

// New создает новый экземпляр фоновой очистки
func New(repo ReservationRepository, interval time.Duration, logger Logger, sweepDeleted prometheus.Counter) *Cleaner {
	return &Cleaner{
		repo:         repo,
		interval:     interval,
		logger:       logger,
		sweepDeleted: sweepDeleted,
	}
}

// Run запускает цикл очистки до отмены контекста
// Первый проход выполняется сразу, далее по тикеру
func (c *Cleaner) Run(ctx context.Context) error {
	t := time.NewTicker(c.interval)
	defer t.Stop()

	c.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			c.sweep(ctx)
		}
	}
}

func (c *Cleaner) sweep(ctx context.Context) {
	deleted, err := c.repo.DeleteExpired(ctx, time.Now())
	if err != nil {
		c.logger.Error("cleaner: sweep failed: %v", err)
		return
	}

	if deleted > 0 {
		c.logger.Info("cleaner: removed %d expired reservations", deleted)
		if c.sweepDeleted != nil {
			c.sweepDeleted.Add(float64(deleted))
		}
	}
}
