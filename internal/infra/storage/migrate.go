package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Частичный уникальный индекс — основа commit-протокола:
// для кортежа (дата, время, зона, столик) может существовать максимум
// одно бронирование в статусе pending или confirmed. Отмененные брони
// индексом не учитываются и столик не держат
const schemaSQL = `
CREATE TABLE IF NOT EXISTS reservations (
	id BIGSERIAL PRIMARY KEY,
	requester_id BIGINT NOT NULL,
	full_name TEXT NOT NULL,
	phone TEXT NOT NULL,
	zone TEXT NOT NULL,
	table_number INT NOT NULL,
	reservation_date DATE NOT NULL,
	start_time TEXT NOT NULL,
	party_size INT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS uq_reservations_active_slot
	ON reservations (reservation_date, start_time, zone, table_number)
	WHERE status IN ('pending', 'confirmed');

CREATE INDEX IF NOT EXISTS idx_reservations_requester
	ON reservations (requester_id);

CREATE INDEX IF NOT EXISTS idx_reservations_date
	ON reservations (reservation_date, start_time);

CREATE TABLE IF NOT EXISTS guests (
	id BIGSERIAL PRIMARY KEY,
	requester_id BIGINT UNIQUE NOT NULL,
	username TEXT,
	full_name TEXT NOT NULL DEFAULT '',
	phone TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Migrate применяет схему БД при старте сервиса
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("storage: apply schema: %w", err)
	}
	return nil
}
