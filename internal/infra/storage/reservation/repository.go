package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/tablebook/reservation-service/internal/domain"
	"github.com/tablebook/reservation-service/pkg/psqlbuilder"
	"github.com/tablebook/reservation-service/pkg/types"
)

// pgUniqueViolation код ошибки PostgreSQL для нарушения уникальности
const pgUniqueViolation = "23505"

var reservationColumns = []string{
	"id",
	"requester_id",
	"full_name",
	"phone",
	"zone",
	"table_number",
	"reservation_date",
	"start_time",
	"party_size",
	"status",
	"created_at",
}

// Repository репозиторий для работы с бронированиями столиков
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateIfAvailable атомарно создает бронирование, если кортеж
// (дата, время, зона, столик) еще не занят активным бронированием.
//
// Атомарность обеспечивается частичным уникальным индексом
// uq_reservations_active_slot: при гонке двух конкурентных вставок
// ровно одна проходит, вторая получает ErrTableTaken. Отдельная
// предварительная проверка доступности здесь не выполняется намеренно —
// read-then-write для этой операции недопустим
func (r *Repository) CreateIfAvailable(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"requester_id",
			"full_name",
			"phone",
			"zone",
			"table_number",
			"reservation_date",
			"start_time",
			"party_size",
			"status",
		).
		Values(
			res.RequesterID,
			res.FullName,
			res.Phone,
			res.Zone,
			res.TableNumber,
			domain.DateOnly(res.Date),
			res.StartTime,
			res.PartySize,
			res.Status,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateIfAvailable - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrTableTaken
		}
		return nil, fmt.Errorf("%w: CreateIfAvailable - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var res domain.Reservation
	var createdAt sql.NullTime

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&res.RequesterID,
		&res.FullName,
		&res.Phone,
		&res.Zone,
		&res.TableNumber,
		&res.Date,
		&res.StartTime,
		&res.PartySize,
		&res.Status,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	res.CreatedAt = createdAt.Time

	return &res, nil
}

// ListWithFilter получает бронирования с гибкой фильтрацией
// Сортировка: по дате и времени по возрастанию
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		OrderBy("reservation_date ASC, start_time ASC, id ASC")

	selectBuilder = applyFilter(selectBuilder, filter)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// CountWithFilter возвращает количество бронирований по фильтру
func (r *Repository) CountWithFilter(ctx context.Context, filter domain.ReservationFilter) (int64, error) {
	selectBuilder := psqlbuilder.Select("COUNT(*)").From("reservations")
	selectBuilder = applyFilter(selectBuilder, filter)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountWithFilter - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// SetStatus обновляет статус бронирования
// Идемпотентна: установка уже выставленного статуса — no-op, не ошибка
func (r *Repository) SetStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Delete удаляет бронирование (физическое удаление)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// DeleteExpired удаляет все бронирования с прошедшей датой/временем,
// независимо от статуса. Используется фоновой очисткой и оператором
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := psqlbuilder.Delete("reservations").
		Where(expiredPredicate(now)).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// CountExpired возвращает количество бронирований с прошедшей датой/временем
func (r *Repository) CountExpired(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(expiredPredicate(now)).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountExpired - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountExpired - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// DeleteByStatus удаляет все бронирования с указанным статусом
func (r *Repository) DeleteByStatus(ctx context.Context, status domain.ReservationStatus) (int64, error) {
	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"status": status}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByStatus - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByStatus - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByStatus - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// CountByStatus возвращает количество бронирований с указанным статусом
func (r *Repository) CountByStatus(ctx context.Context, status domain.ReservationStatus) (int64, error) {
	return r.CountWithFilter(ctx, domain.ReservationFilter{Status: &status})
}

// expiredPredicate условие "дата/время строго в прошлом":
// дата < сегодня ИЛИ (дата = сегодня И время < текущего)
// start_time хранится как TEXT "HH:MM" и сравнивается лексикографически
func expiredPredicate(now time.Time) squirrel.Sqlizer {
	today := domain.DateOnly(now)
	currentTime := types.NewTimeString(now)

	return squirrel.Or{
		squirrel.Lt{"reservation_date": today},
		squirrel.And{
			squirrel.Eq{"reservation_date": today},
			squirrel.Lt{"start_time": currentTime},
		},
	}
}

// applyFilter применяет доменный фильтр к select builder
func applyFilter(b squirrel.SelectBuilder, filter domain.ReservationFilter) squirrel.SelectBuilder {
	if filter.RequesterID != nil {
		b = b.Where(squirrel.Eq{"requester_id": *filter.RequesterID})
	}
	if filter.Zone != nil {
		b = b.Where(squirrel.Eq{"zone": *filter.Zone})
	}
	if filter.Status != nil {
		b = b.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.StartDate != nil {
		b = b.Where(squirrel.GtOrEq{"reservation_date": domain.DateOnly(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		b = b.Where(squirrel.LtOrEq{"reservation_date": domain.DateOnly(*filter.EndDate)})
	}
	if filter.StartTime != nil {
		b = b.Where(squirrel.Eq{"start_time": *filter.StartTime})
	}
	if filter.ActiveOnly {
		activeStatusStrings := make([]string, len(domain.ActiveStatuses))
		for i, s := range domain.ActiveStatuses {
			activeStatusStrings[i] = string(s)
		}
		b = b.Where(squirrel.Eq{"status": activeStatusStrings})
	}
	return b
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var res domain.Reservation
		var createdAt sql.NullTime

		err := rows.Scan(
			&res.ID,
			&res.RequesterID,
			&res.FullName,
			&res.Phone,
			&res.Zone,
			&res.TableNumber,
			&res.Date,
			&res.StartTime,
			&res.PartySize,
			&res.Status,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		res.CreatedAt = createdAt.Time

		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
